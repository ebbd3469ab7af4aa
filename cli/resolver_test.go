package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolveFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	v, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
	if err != nil {
		t.Fatalf("Resolve(%q) error: %v", name, err)
	}

	return v
}

func TestResolve(t *testing.T) {
	r, err := resolve(strings.NewReader("log_level: debug\nlog-format: json\nlog-pretty: false\ndepth: 3\nratio: 0.5\n"))
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log_level", "debug"},
		{"log-level", "debug"},
		{"log-format", "json"},
		{"log-pretty", false},
		{"depth", "3"},
		{"ratio", "0.5"},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			if got := resolveFlag(t, r, tt.flag); got != tt.want {
				t.Errorf("Resolve(%q) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestResolve_Ignored(t *testing.T) {
	for _, src := range []string{"", "- a\n- b\n", "{{{"} {
		r, err := resolve(strings.NewReader(src))
		if err != nil {
			t.Fatalf("resolve(%q) error: %v", src, err)
		}

		if got := resolveFlag(t, r, "log-level"); got != nil {
			t.Errorf("resolve(%q) resolved log-level = %v", src, got)
		}
	}
}
