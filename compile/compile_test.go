package compile

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/tagargs/log"
	"github.com/ardnew/tagargs/tag"
)

func resolve(t *testing.T, c *Compiler, token string, vars tag.Vars) any {
	t.Helper()

	e, err := c.Compile(token)
	if err != nil {
		t.Fatalf("Compile(%q) error: %v", token, err)
	}

	v, err := e.Resolve(vars)
	if err != nil {
		t.Fatalf("Resolve(%q) error: %v", token, err)
	}

	return v
}

func TestCompiler_Resolve(t *testing.T) {
	vars := tag.Vars{
		"user":  map[string]any{"name": "alice", "admin": true},
		"items": []any{1, 2, 3},
		"empty": "",
	}

	tests := []struct {
		token string
		want  any
	}{
		{"'foo'", "foo"},
		{`"foo"`, "foo"},
		{"42", 42},
		{"True", true},
		{"False", false},
		{"None", nil},
		{"user.name", "alice"},
		{"user.admin && len(items) > 2", true},
		{"missing", nil},
		{"coalesce(empty, missing, 'x')", "x"},
		{"[1, 'a']", []any{1, "a"}},
	}

	c := New()

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, resolve(t, c, tt.token, vars)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompiler_VarsShadowBuiltins(t *testing.T) {
	got := resolve(t, New(), "True", tag.Vars{"True": "shadowed"})
	if got != "shadowed" {
		t.Errorf("True = %v, want shadowed", got)
	}
}

func TestCompiler_Prefix(t *testing.T) {
	got, ok := resolve(t, New(), "prefix(cls, 'card')", tag.Vars{"cls": "btn"}).(string)
	if !ok {
		t.Fatalf("prefix returned %T", got)
	}

	fields := strings.Fields(got)
	if len(fields) != 2 || fields[0] != "card" || fields[1] != "btn" {
		t.Errorf("prefix = %q, want \"card btn\"", got)
	}
}

func TestCompiler_WithBuiltin(t *testing.T) {
	c := New(WithBuiltin("upperFirst", func(s string) string {
		return strings.ToUpper(s[:1]) + s[1:]
	}))

	if got := resolve(t, c, "upperFirst('tag')", nil); got != "Tag" {
		t.Errorf("upperFirst = %v, want Tag", got)
	}
}

func TestCompiler_Errors(t *testing.T) {
	c := New()

	if _, err := c.Compile("1 +"); !errors.Is(err, ErrCompile) {
		t.Errorf("Compile error = %v, want ErrCompile", err)
	}

	e, err := c.Compile("items[5]")
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	if _, err := e.Resolve(tag.Vars{"items": []any{1}}); !errors.Is(err, ErrEvaluate) {
		t.Errorf("Resolve error = %v, want ErrEvaluate", err)
	}
}

func TestCompiler_Cache(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for range 32 {
		wg.Go(func() {
			if _, err := c.Compile("a + 1"); err != nil {
				t.Errorf("Compile error: %v", err)
			}
		})
	}

	wg.Wait()

	if _, err := c.Compile("'other'"); err != nil {
		t.Fatal(err)
	}

	if n := c.Len(); n != 2 {
		t.Errorf("Len() = %d, want 2", n)
	}
}

func TestCompiler_CacheHit(t *testing.T) {
	var buf bytes.Buffer

	c := New(WithLogger(log.Make(&buf,
		log.WithFormat(log.FormatJSON), log.WithLevel(log.LevelTrace))))

	for range 3 {
		if _, err := c.Compile("a + 1"); err != nil {
			t.Fatal(err)
		}
	}

	var hits []bool

	for line := range strings.Lines(buf.String()) {
		var rec struct {
			Hit bool `json:"cache_hit"`
		}

		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}

		hits = append(hits, rec.Hit)
	}

	if diff := cmp.Diff([]bool{false, true, true}, hits); diff != "" {
		t.Errorf("cache_hit mismatch (-want +got):\n%s", diff)
	}

	if n := c.Len(); n != 1 {
		t.Errorf("Len() = %d, want 1", n)
	}
}

func BenchmarkCompiler_CacheHit(b *testing.B) {
	c := New()

	if _, err := c.Compile("a + 1"); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()

	for b.Loop() {
		if _, err := c.Compile("a + 1"); err != nil {
			b.Fatal(err)
		}
	}
}

func TestCompiler_WithTag(t *testing.T) {
	opts := tag.NewOptions([]tag.Argument{
		tag.Positional("title", tag.WithType(tag.String)),
		tag.Keyword("count", tag.WithType(tag.Integer), tag.Optional(), tag.WithDefault("1")),
		tag.Flag("open"),
	})

	kwargs, _, err := opts.Parse(t.Context(), tag.Invocation{
		Name:     "panel",
		Tokens:   []string{"open=user.admin", "page.title", "count=len(items)"},
		Compiler: New(),
	})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	got, err := tag.Policy{}.ResolveAll(t.Context(), kwargs, tag.Vars{
		"page":  map[string]any{"title": "Home"},
		"user":  map[string]any{"admin": false},
		"items": []any{"a", "b"},
	})
	if err != nil {
		t.Fatalf("ResolveAll error: %v", err)
	}

	want := map[string]any{"title": "Home", "count": 2, "open": false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
