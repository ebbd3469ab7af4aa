package tag

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_Flag(t *testing.T) {
	opts := NewOptions([]Argument{Flag("myarg")})

	tests := []struct {
		tokens []string
		want   bool
	}{
		{nil, false},
		{[]string{"myarg"}, true},
		{[]string{"myarg=True"}, true},
		{[]string{"myarg=False"}, false},
		{[]string{"myarg=true"}, true},
		{[]string{"myarg=0"}, false},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.tokens, " "), func(t *testing.T) {
			kwargs, _ := mustParse(t, opts, Invocation{Name: "dummy", Tokens: tt.tokens})

			got := mustResolve(t, kwargs, nil)
			if got["myarg"] != tt.want {
				t.Errorf("myarg = %v, want %v", got["myarg"], tt.want)
			}
		})
	}
}

func TestParse_FlagCoercion(t *testing.T) {
	opts := NewOptions([]Argument{Flag("myarg")})

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"string", "foo", true},
		{"empty string", "", false},
		{"nil", nil, false},
		{"list", []any{"foo"}, true},
		{"empty list", []any{}, false},
		{"map", map[string]any{"bar": 42}, true},
		{"empty map", map[string]any{}, false},
		{"zero", 0, false},
		{"number", 2.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kwargs, _ := mustParse(t, opts, Invocation{Name: "dummy", Tokens: []string{"myarg=v"}})

			got := mustResolve(t, kwargs, Vars{"v": tt.value})
			if got["myarg"] != tt.want {
				t.Errorf("myarg = %v, want %v", got["myarg"], tt.want)
			}
		})
	}
}

// permutations returns every ordering of s.
func permutations(s []string) [][]string {
	if len(s) <= 1 {
		return [][]string{append([]string(nil), s...)}
	}

	var out [][]string

	for i := range s {
		rest := append(append([]string(nil), s[:i]...), s[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]string{s[i]}, p...))
		}
	}

	return out
}

func TestParse_MixedKindsAnyOrder(t *testing.T) {
	opts := NewOptions([]Argument{
		Flag("myarg"),
		Keyword("myarg2"),
		Positional("myarg3"),
	})

	want := map[string]any{"myarg": true, "myarg2": "foo", "myarg3": 42}

	for _, tokens := range permutations([]string{"myarg2='foo'", "myarg", "42"}) {
		t.Run(strings.Join(tokens, " "), func(t *testing.T) {
			kwargs, _ := mustParse(t, opts, Invocation{Name: "dummy", Tokens: tokens})

			if diff := cmp.Diff(want, mustResolve(t, kwargs, nil)); diff != "" {
				t.Errorf("resolved mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_KeywordOrderIndependent(t *testing.T) {
	opts := NewOptions([]Argument{
		Keyword("kwarg1", WithType(Integer)),
		Keyword("kwarg2", WithType(String)),
	})

	a, _ := mustParse(t, opts, Invocation{Tokens: []string{"kwarg1=1", "kwarg2='x'"}})
	b, _ := mustParse(t, opts, Invocation{Tokens: []string{"kwarg2='x'", "kwarg1=1"}})

	if diff := cmp.Diff(mustResolve(t, a, nil), mustResolve(t, b, nil)); diff != "" {
		t.Errorf("order changed result (-a +b):\n%s", diff)
	}
}

func TestParse_KeywordSkipsBareName(t *testing.T) {
	opts := NewOptions([]Argument{Keyword("myarg"), Positional("myarg2")})

	kwargs, _ := mustParse(t, opts, Invocation{
		Name:   "dummy",
		Tokens: []string{"myarg", "myarg='foo'"},
	})

	got := mustResolve(t, kwargs, Vars{"myarg": "bar"})
	want := map[string]any{"myarg": "foo", "myarg2": "bar"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolved mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_FlagThenPositionalOfSameName(t *testing.T) {
	opts := NewOptions([]Argument{Flag("myarg"), Positional("myarg2", Optional())})

	kwargs, _ := mustParse(t, opts, Invocation{Name: "dummy", Tokens: []string{"myarg", "myarg"}})

	got := mustResolve(t, kwargs, Vars{"myarg": "from vars"})
	want := map[string]any{"myarg": true, "myarg2": "from vars"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolved mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_KeywordPrefixIsNotMatch(t *testing.T) {
	opts := NewOptions([]Argument{Keyword("size", Optional()), Keyword("sizes", Optional())})

	kwargs, _ := mustParse(t, opts, Invocation{Tokens: []string{"sizes=2"}})

	if _, ok := kwargs["size"]; ok {
		t.Error("size matched the sizes= token")
	}

	if v := kwargs["sizes"]; v == nil || v.Literal() != "2" {
		t.Errorf("sizes = %v, want literal 2", v)
	}
}

func TestParse_TooManyArguments(t *testing.T) {
	tests := []struct {
		name    string
		args    []Argument
		tokens  []string
		message string
	}{
		{
			name:    "flags",
			args:    []Argument{Flag("myarg"), Flag("myarg2")},
			tokens:  []string{"myarg", "myarg2", "myarg3"},
			message: "'myarg3'",
		},
		{
			name:    "positional",
			args:    []Argument{Positional("one")},
			tokens:  []string{"a", "b", "c"},
			message: "'b', 'c'",
		},
		{
			name:    "misspelled keyword",
			args:    []Argument{Keyword("title", Optional())},
			tokens:  []string{"titl='x'"},
			message: `did you mean "title"?`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := NewOptions(tt.args).Parse(t.Context(), Invocation{Name: "dummy", Tokens: tt.tokens})
			if !errors.Is(err, ErrTooManyArguments) {
				t.Fatalf("error = %v, want ErrTooManyArguments", err)
			}

			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not mention %q", err, tt.message)
			}
		})
	}
}

func TestParse_ArgumentRequired(t *testing.T) {
	tests := []struct {
		name string
		arg  Argument
	}{
		{"keyword", Keyword("myarg")},
		{"positional", Positional("myarg")},
		{"keyword with default", Keyword("myarg", WithDefault("'x'"))},
		{"positional with default", Positional("myarg", WithDefault("'x'"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := NewOptions([]Argument{tt.arg}).Parse(t.Context(), Invocation{Name: "dummy"})
			if !errors.Is(err, ErrArgumentRequired) {
				t.Fatalf("error = %v, want ErrArgumentRequired", err)
			}

			if !strings.Contains(err.Error(), `"myarg"`) {
				t.Errorf("error %q does not name the argument", err)
			}
		})
	}
}

func TestParse_Defaults(t *testing.T) {
	opts := NewOptions([]Argument{
		Keyword("size", Optional(), WithDefault("'md'")),
		Keyword("count", Optional(), WithDefault(3)),
		Keyword("none", Optional()),
		Positional("first", Optional(), WithDefault("'a'")),
		Positional("second", Optional(), WithDefault("")),
		Positional("third", Optional(), WithDefault(0)),
	})

	kwargs, _ := mustParse(t, opts, Invocation{Name: "dummy"})

	want := map[string]any{"size": "md", "count": 3, "first": "a"}
	if diff := cmp.Diff(want, mustResolve(t, kwargs, nil)); diff != "" {
		t.Errorf("resolved mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DefaultIsToken(t *testing.T) {
	opts := NewOptions([]Argument{Keyword("who", Optional(), WithDefault("user"))})

	kwargs, _ := mustParse(t, opts, Invocation{})

	got := mustResolve(t, kwargs, Vars{"user": "alice"})
	if got["who"] != "alice" {
		t.Errorf("who = %v, want alice", got["who"])
	}
}

func TestOptions_Validate(t *testing.T) {
	opts := NewOptions([]Argument{Positional("a"), Keyword("b"), Flag("a")})

	if err := opts.Validate(); !errors.Is(err, ErrDuplicateArgument) {
		t.Errorf("Validate() = %v, want ErrDuplicateArgument", err)
	}

	_, _, err := opts.Parse(t.Context(), Invocation{Tokens: []string{"a", "b=1"}})
	if !errors.Is(err, ErrDuplicateArgument) {
		t.Errorf("Parse() = %v, want ErrDuplicateArgument", err)
	}

	if diff := cmp.Diff([]string{"a", "b", "a"}, opts.ArgumentNames()); diff != "" {
		t.Errorf("ArgumentNames mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Compiler(t *testing.T) {
	var compiled []string

	c := CompilerFunc(func(token string) (Expression, error) {
		if token == "bad(" {
			return nil, errors.New("syntax")
		}

		compiled = append(compiled, token)

		return Literal{Value: "compiled:" + token}, nil
	})

	opts := NewOptions([]Argument{
		Positional("expr"),
		Positional("raw", Raw()),
	})

	kwargs, _ := mustParse(t, opts, Invocation{Tokens: []string{"x.y", "'lit'"}, Compiler: c})

	want := map[string]any{"expr": "compiled:x.y", "raw": "lit"}
	if diff := cmp.Diff(want, mustResolve(t, kwargs, nil)); diff != "" {
		t.Errorf("resolved mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"x.y"}, compiled); diff != "" {
		t.Errorf("compiled tokens mismatch (-want +got):\n%s", diff)
	}

	_, _, err := opts.Parse(t.Context(), Invocation{Tokens: []string{"bad(", "x"}, Compiler: c})
	if !errors.Is(err, ErrCompile) {
		t.Errorf("Parse() = %v, want ErrCompile", err)
	}
}

func TestParse_SharedOptions(t *testing.T) {
	opts := NewOptions([]Argument{Positional("a")}, Block("end", "body"))

	for _, src := range []string{"one{end}", "two{end}"} {
		_, blocks := mustParse(t, opts, Invocation{Tokens: []string{"x"}, Stream: newMarkerStream(src)})

		if want := strings.TrimSuffix(src, "{end}"); blocks["body"] != want {
			t.Errorf("body = %v, want %q", blocks["body"], want)
		}
	}

	if len(opts.Arguments()) != 1 || len(opts.Blocks()) != 1 {
		t.Error("Parse modified the declaration")
	}
}
