package tag

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_Blocks(t *testing.T) {
	abcd := []BlockDecl{
		Block("enda", "a"),
		Block("endb", "b"),
		Block("endc", "c"),
		Block("endtest", "d"),
	}

	tests := []struct {
		name   string
		blocks []BlockDecl
		src    string
		want   Blocks
		rest   string
	}{
		{
			name:   "all present",
			blocks: abcd,
			src:    "1{enda}2{endb}3{endc}4{endtest}tail",
			want:   Blocks{"a": "1", "b": "2", "c": "3", "d": "4"},
			rest:   "tail",
		},
		{
			name:   "skipped terminators",
			blocks: abcd,
			src:    "<p>a</p>{enda}<div>b-elements</div>{endtest}",
			want:   Blocks{"a": "<p>a</p>", "b": "<div>b-elements</div>", "c": "", "d": ""},
		},
		{
			name:   "only last terminator",
			blocks: abcd,
			src:    "everything{endtest}",
			want:   Blocks{"a": "everything", "b": "", "c": "", "d": ""},
		},
		{
			name:   "string form",
			blocks: []BlockDecl{BlockNamed("nodelist"), BlockNamed("endfor")},
			src:    "body{nodelist}more{endfor}",
			want:   Blocks{"nodelist": "body", "endfor": "more"},
		},
		{
			name:   "none declared",
			blocks: nil,
			src:    "untouched{end}",
			want:   Blocks{},
			rest:   "untouched{end}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream := newMarkerStream(tt.src)

			_, got := mustParse(t, NewOptions(nil, tt.blocks...), Invocation{Name: "dummy", Stream: stream})

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("blocks mismatch (-want +got):\n%s", diff)
			}

			var rest string
			for _, p := range stream.parts[stream.pos:] {
				rest += p
			}

			if rest != tt.rest {
				t.Errorf("unconsumed = %q, want %q", rest, tt.rest)
			}
		})
	}
}

func TestParse_BlocksErrors(t *testing.T) {
	opts := NewOptions(nil, Block("endif", "body"))

	_, _, err := opts.Parse(t.Context(), Invocation{Name: "if", Stream: newMarkerStream("never closed")})
	if !errors.Is(err, errUnclosed) {
		t.Errorf("unclosed stream error = %v, want errUnclosed", err)
	}

	_, _, err = opts.Parse(t.Context(), Invocation{Name: "if"})
	if !errors.Is(err, ErrTemplateSyntax) {
		t.Errorf("missing stream error = %v, want ErrTemplateSyntax", err)
	}
}

type liarStream struct{}

func (liarStream) CaptureUntil([]string) (Content, string, error) { return "", "bogus", nil }

func (liarStream) Empty() Content { return "" }

func TestParse_BlocksUnexpectedTerminator(t *testing.T) {
	opts := NewOptions(nil, Block("endif", "body"))

	_, _, err := opts.Parse(t.Context(), Invocation{Name: "if", Stream: liarStream{}})
	if !errors.Is(err, ErrTemplateSyntax) {
		t.Errorf("error = %v, want ErrTemplateSyntax", err)
	}
}
