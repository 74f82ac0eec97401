package complete

import (
	"github.com/mattn/go-runewidth"
)

// Kind classifies a completion candidate.
type Kind int

// Possible values of Kind.
const (
	Word Kind = iota
	File
	// Dir candidates are finished with a slash instead of a space.
	Dir
	Command
)

var kindNames = [...]string{"word", "file", "dir", "command"}

func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "bad-kind"
}

// Candidate is a completion candidate.
type Candidate struct {
	// The unquoted word that replaces the source word. It normally starts
	// with the unquoted source word.
	Value string
	// What to show in the candidate list. If empty, Value is shown.
	Raw  string
	Kind Kind
	// Display width of what is shown, in terminal columns.
	Width int
}

// NewCandidate creates a Candidate, computing its display width.
func NewCandidate(kind Kind, value, raw string) Candidate {
	c := Candidate{Value: value, Raw: raw, Kind: kind}
	c.Width = runewidth.StringWidth(c.Display())
	return c
}

// Display returns the text shown for the candidate.
func (c Candidate) Display() string {
	if c.Raw != "" {
		return c.Raw
	}
	return c.Value
}

// Selection identifies the selected candidate, if any.
type Selection struct {
	index int
	ok    bool
}

// NoSelection means that no candidate is selected; the common prefix of the
// candidates is shown instead.
var NoSelection = Selection{}

// Select returns a Selection of the i-th candidate.
func Select(i int) Selection { return Selection{i, true} }

// Get returns the index of the selected candidate and whether there is one.
func (s Selection) Get() (int, bool) { return s.index, s.ok }
