// Package parse implements the quoting rules of the POSIX shell command
// language, as far as the line editor needs them: quoting text for insertion
// into a partially typed word, and removing quotes from a typed word.
package parse

import (
	"errors"
	"strings"
	"unicode"
)

// QuoteStyle is the kind of quotation in effect at some position of a word.
type QuoteStyle int

// Possible values of QuoteStyle.
const (
	// QuoteNone inserts text verbatim.
	QuoteNone QuoteStyle = iota
	// QuoteNormal is the unquoted context, where metacharacters need a
	// backslash.
	QuoteNormal
	// QuoteSingle is the inside of a single-quoted string.
	QuoteSingle
	// QuoteDouble is the inside of a double-quoted string.
	QuoteDouble
)

var quoteStyleNames = [...]string{"none", "normal", "single", "double"}

func (q QuoteStyle) String() string {
	if 0 <= q && int(q) < len(quoteStyleNames) {
		return quoteStyleNames[q]
	}
	return "bad-quote-style"
}

// Characters that are escaped with a backslash in the normal context.
// Whitespace characters are escaped too.
const normalMetachars = "|&;<>()$`\\\"'*?[#~="

// Characters that are escaped with a backslash inside double quotes.
const doubleMetachars = "$`\"\\"

// Quote quotes s so that, inserted at a position where q is in effect, it is
// read back literally. The opening and closing quotes of single and double
// quoted strings are not included; see QuoteAs for that.
func Quote(s string, q QuoteStyle) string {
	var sb strings.Builder
	switch q {
	case QuoteNone:
		return s
	case QuoteNormal:
		for _, r := range s {
			if r == '\n' {
				// A backslash-newline is a line continuation, so a literal
				// newline has to be quoted instead.
				sb.WriteString("'\n'")
				continue
			}
			if strings.ContainsRune(normalMetachars, r) || unicode.IsSpace(r) {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
		}
	case QuoteSingle:
		for _, r := range s {
			if r == '\'' {
				sb.WriteString(`'\''`)
			} else {
				sb.WriteRune(r)
			}
		}
	case QuoteDouble:
		for _, r := range s {
			if strings.ContainsRune(doubleMetachars, r) {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
		}
	default:
		panic("parse: bad quote style " + q.String())
	}
	return sb.String()
}

// QuoteAs returns s as a complete word in quote style q: single and double
// quoted results are wrapped in their quotes.
func QuoteAs(s string, q QuoteStyle) string {
	switch q {
	case QuoteSingle:
		return "'" + Quote(s, q) + "'"
	case QuoteDouble:
		return `"` + Quote(s, q) + `"`
	default:
		return Quote(s, q)
	}
}

// Errors returned by Unquote.
var (
	ErrUnterminatedQuote = errors.New("unterminated quote")
	ErrTrailingBackslash = errors.New("trailing backslash")
)

// Unquote removes quotes and backslash escapes from a complete word. It does
// not perform any expansion.
func Unquote(word string) (string, error) {
	value, open, pendingBackslash := unquote(word)
	if pendingBackslash {
		return value, ErrTrailingBackslash
	}
	if open != QuoteNormal {
		return value, ErrUnterminatedQuote
	}
	return value, nil
}

// UnquotePartial is like Unquote, but accepts a word that is still being
// typed. It returns the value so far and the quote style in effect at the end
// of the word. A trailing backslash is dropped.
func UnquotePartial(word string) (string, QuoteStyle) {
	value, open, _ := unquote(word)
	return value, open
}

func unquote(word string) (string, QuoteStyle, bool) {
	var sb strings.Builder
	state := QuoteNormal
	escaped := false
	for _, r := range word {
		if escaped {
			escaped = false
			switch {
			case r == '\n':
				// Line continuation.
			case state == QuoteDouble && !strings.ContainsRune(doubleMetachars, r):
				sb.WriteByte('\\')
				sb.WriteRune(r)
			default:
				sb.WriteRune(r)
			}
			continue
		}
		switch state {
		case QuoteNormal:
			switch r {
			case '\\':
				escaped = true
			case '\'':
				state = QuoteSingle
			case '"':
				state = QuoteDouble
			default:
				sb.WriteRune(r)
			}
		case QuoteSingle:
			if r == '\'' {
				state = QuoteNormal
			} else {
				sb.WriteRune(r)
			}
		case QuoteDouble:
			switch r {
			case '\\':
				escaped = true
			case '"':
				state = QuoteNormal
			default:
				sb.WriteRune(r)
			}
		}
	}
	return sb.String(), state, escaped
}
