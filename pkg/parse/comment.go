package parse

import (
	"strings"
	"unicode"
)

// StripComments removes comments from src. A comment starts with a # at the
// beginning of a word, outside quotes, and runs up to the end of the line.
// The newline ending a comment is kept.
func StripComments(src string) string {
	var sb strings.Builder
	state := QuoteNormal
	escaped, inComment, wordStart := false, false, true
	for _, r := range src {
		switch {
		case inComment:
			if r != '\n' {
				continue
			}
			inComment = false
		case escaped:
			escaped = false
		case state == QuoteSingle:
			if r == '\'' {
				state = QuoteNormal
			}
		case state == QuoteDouble:
			switch r {
			case '\\':
				escaped = true
			case '"':
				state = QuoteNormal
			}
		case r == '#' && wordStart:
			inComment = true
			continue
		case r == '\\':
			escaped = true
		case r == '\'':
			state = QuoteSingle
		case r == '"':
			state = QuoteDouble
		}
		sb.WriteRune(r)
		wordStart = state == QuoteNormal && !escaped &&
			(unicode.IsSpace(r) || strings.ContainsRune("|&;<>()", r))
	}
	return sb.String()
}
