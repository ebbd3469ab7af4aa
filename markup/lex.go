package markup

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"
)

const (
	tagOpen      = "{%"
	tagClose     = "%}"
	commentOpen  = "{#"
	commentClose = "#}"
)

// Kind distinguishes lexed tokens.
type Kind int

const (
	KindText Kind = iota
	KindTag
)

// Position is a 1-based line and column in the template source.
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Token is a run of text or the contents of one {% ... %} tag.
type Token struct {
	Kind Kind
	// Text is the literal text, or the trimmed tag contents.
	Text string
	Position
	// Start and End are the byte offsets of the token in the source,
	// including tag delimiters.
	Start, End int
}

// Lex splits src into text and tag tokens. Comments ({# ... #}) are dropped.
func Lex(src string) ([]Token, error) {
	var (
		toks []Token
		pos  int
	)

	for pos < len(src) {
		open := nextDelim(src[pos:])
		if open < 0 {
			toks = append(toks, textToken(src, pos, len(src)))

			break
		}

		if open > 0 {
			toks = append(toks, textToken(src, pos, pos+open))
		}

		start := pos + open
		closing := tagClose

		if strings.HasPrefix(src[start:], commentOpen) {
			closing = commentClose
		}

		end := strings.Index(src[start+2:], closing)
		if end < 0 {
			p := position(src, start)

			return nil, ErrUnterminatedTag.
				Wrapf("at %s: missing %q", p, closing).
				With(slog.Int("line", p.Line), slog.Int("col", p.Col))
		}

		end += start + 2 + len(closing)

		if closing == tagClose {
			toks = append(toks, Token{
				Kind:     KindTag,
				Text:     strings.TrimSpace(src[start+2 : end-2]),
				Position: position(src, start),
				Start:    start,
				End:      end,
			})
		}

		pos = end
	}

	return toks, nil
}

func nextDelim(s string) int {
	t := strings.Index(s, tagOpen)
	c := strings.Index(s, commentOpen)

	switch {
	case t < 0:
		return c
	case c < 0:
		return t
	default:
		return min(t, c)
	}
}

func textToken(src string, start, end int) Token {
	return Token{
		Kind:     KindText,
		Text:     src[start:end],
		Position: position(src, start),
		Start:    start,
		End:      end,
	}
}

func position(src string, offset int) Position {
	before := src[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset - strings.LastIndexByte(before, '\n')

	return Position{Line: line, Col: col}
}

// SplitContents splits tag contents on whitespace, keeping quoted sections
// together. Quotes are kept in the resulting tokens, so title='a b' is one
// token. A backslash escapes the next character inside quotes.
func SplitContents(s string) []string {
	var (
		out   []string
		cur   strings.Builder
		quote rune
		esc   bool
	)

	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}

	for _, r := range s {
		switch {
		case quote != 0:
			cur.WriteRune(r)

			switch {
			case esc:
				esc = false
			case r == '\\':
				esc = true
			case r == quote:
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
			cur.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
		}
	}

	flush()

	return out
}
