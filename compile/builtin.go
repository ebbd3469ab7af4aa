package compile

import (
	"strings"

	"github.com/ardnew/mung"
)

// builtins returns the functions and constants visible to every expression.
// Variables supplied at resolution shadow them.
func builtins() map[string]any {
	return map[string]any{
		"True":     true,
		"False":    false,
		"None":     nil,
		"prefix":   prefix,
		"coalesce": coalesce,
	}
}

// prefix prepends items to the space-separated list subject, dropping
// duplicates. It is meant for HTML class attributes:
//
//	prefix("btn", "card", "btn")  // "card btn"
func prefix(subject string, items ...string) string {
	return mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(" "),
		mung.WithPrefixItems(items...),
		mung.WithFilter(func(s string) bool { return strings.TrimSpace(s) != "" }),
	).String()
}

// coalesce returns the first argument that is not nil or an empty string.
func coalesce(values ...any) any {
	for _, v := range values {
		if s, ok := v.(string); ok && s == "" {
			continue
		}

		if v != nil {
			return v
		}
	}

	return nil
}
