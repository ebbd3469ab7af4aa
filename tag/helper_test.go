package tag

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/tagargs/log"
)

// markerStream is a Capturer over text with {name} markers.
type markerStream struct {
	parts []string
	pos   int
}

func newMarkerStream(src string) *markerStream {
	var parts []string

	for src != "" {
		i := strings.IndexByte(src, '{')
		if i < 0 {
			parts = append(parts, src)

			break
		}

		if i > 0 {
			parts = append(parts, src[:i])
		}

		j := strings.IndexByte(src[i:], '}')
		parts = append(parts, src[i:i+j+1])
		src = src[i+j+1:]
	}

	return &markerStream{parts: parts}
}

var errUnclosed = errors.New("unclosed block")

func (s *markerStream) CaptureUntil(terms []string) (Content, string, error) {
	var sb strings.Builder

	for s.pos < len(s.parts) {
		part := s.parts[s.pos]
		s.pos++

		if strings.HasPrefix(part, "{") {
			name := strings.Trim(part, "{}")
			if slices.Contains(terms, name) {
				return sb.String(), name, nil
			}
		}

		sb.WriteString(part)
	}

	return nil, "", errUnclosed
}

func (s *markerStream) Empty() Content { return "" }

// warnings returns a Policy logging into a buffer.
func warnings(debug bool) (Policy, *bytes.Buffer) {
	var buf bytes.Buffer

	return Policy{
		Debug:  debug,
		Logger: log.Make(&buf, log.WithFormat(log.FormatJSON)),
	}, &buf
}

func mustParse(t *testing.T, o *Options, inv Invocation) (Kwargs, Blocks) {
	t.Helper()

	kwargs, blocks, err := o.Parse(t.Context(), inv)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", inv.Tokens, err)
	}

	return kwargs, blocks
}

func mustResolve(t *testing.T, kwargs Kwargs, vars Vars) map[string]any {
	t.Helper()

	p, _ := warnings(false)

	out, err := p.ResolveAll(t.Context(), kwargs, vars)
	if err != nil {
		t.Fatalf("ResolveAll error: %v", err)
	}

	return out
}
