package complete

import (
	"strings"
	"unicode"

	"src.yle.sh/pkg/cli/linebuf"
	"src.yle.sh/pkg/parse"
)

// Context describes the word being completed.
type Context struct {
	// Index of the first rune of the source word in the buffer.
	SourceWordIndex int
	// Quoting in effect at the cursor. QuoteNormal outside quotes.
	Quote parse.QuoteStyle
	// The source word with quotes removed.
	Word string
	// Rune length of Word. Candidates are assumed to start with Word; only
	// the part after this length is inserted.
	ExpandedLen int
	// Whether the source word ends in a backslash that escapes nothing yet.
	// Inserted text replaces the backslash.
	PendingBackslash bool
	// The words before the source word in the same command, with quotes
	// removed. Empty when the source word is the command name.
	Args []string
}

const (
	// Runes that end a word.
	wordDelimiters = "|&;<>()"
	// Runes that also start a new command.
	commandDelimiters = "|&;()\n"
)

// ContextAt scans the buffer up to the dot and returns the completion context
// there.
func ContextAt(buf *linebuf.Buffer) Context {
	runes := buf.Runes()[:buf.Dot()]

	var args []string
	start, inWord := 0, false
	var quote rune
	escaped := false
	for i, r := range runes {
		switch {
		case escaped:
			escaped = false
		case quote == '\'':
			if r == '\'' {
				quote = 0
			}
		case quote == '"':
			if r == '\\' {
				escaped = true
			} else if r == '"' {
				quote = 0
			}
		case unicode.IsSpace(r) || strings.ContainsRune(wordDelimiters, r):
			if inWord {
				args = append(args, unquoteWord(runes[start:i]))
				inWord = false
			}
			if strings.ContainsRune(commandDelimiters, r) {
				args = nil
			}
		default:
			if !inWord {
				start, inWord = i, true
			}
			switch r {
			case '\\':
				escaped = true
			case '\'', '"':
				quote = r
			}
		}
	}
	if !inWord {
		start = len(runes)
	}

	word, style := parse.UnquotePartial(string(runes[start:]))
	return Context{
		SourceWordIndex:  start,
		Quote:            style,
		Word:             word,
		ExpandedLen:      len([]rune(word)),
		PendingBackslash: escaped,
		Args:             args,
	}
}

func unquoteWord(word []rune) string {
	// Words before the cursor are complete, but may still be malformed. The
	// partial value is good enough for picking a generator.
	s, _ := parse.UnquotePartial(string(word))
	return s
}
