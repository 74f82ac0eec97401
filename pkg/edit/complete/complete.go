// Package complete implements command line completion.
//
// An Engine obtains candidates for the word before the cursor from a
// Generator and edits the buffer to show either the common prefix of the
// candidates or the candidate selected by cycling. Inserted text is quoted so
// that it reads back as the candidate in the quoting context of the cursor.
package complete

import (
	"log"
	"strings"

	"src.yle.sh/pkg/cli/linebuf"
	"src.yle.sh/pkg/logutil"
	"src.yle.sh/pkg/parse"
)

var logger = logutil.GetLogger("[edit/complete] ")

// Config keeps the configuration of an Engine.
type Config struct {
	// Source of candidates. If nil, there are never any candidates.
	Generator Generator
	// Finds the completion context. Defaults to ContextAt.
	Context func(*linebuf.Buffer) Context
	// Receives a description of each completion step. If nil, nothing is
	// traced.
	Trace *log.Logger
	// Called after each change to the buffer. If nil, nothing is called.
	OnChange func()
}

// Engine keeps the state of completion on one buffer.
type Engine struct {
	buf *linebuf.Buffer
	cfg Config

	// nil when completion is not in progress. An empty non-nil slice means
	// that the last completion found nothing.
	cands []Candidate
	// Index of the selected candidate; len(cands) when none is selected.
	selected  int
	prefixLen int
	ctx       Context
	// The span [insertAt, end) holds the text inserted for the current
	// selection.
	insertAt int
	end      int
}

// New creates an Engine operating on buf.
func New(buf *linebuf.Buffer, cfg Config) *Engine {
	if cfg.Generator == nil {
		cfg.Generator = Static(Word)
	}
	if cfg.Context == nil {
		cfg.Context = ContextAt
	}
	if cfg.Trace == nil {
		cfg.Trace = logutil.Discard
	}
	if cfg.OnChange == nil {
		cfg.OnChange = func() {}
	}
	return &Engine{buf: buf, cfg: cfg}
}

// Active returns whether completion is in progress.
func (e *Engine) Active() bool { return e.cands != nil }

// Candidates returns the current candidates.
func (e *Engine) Candidates() []Candidate { return e.cands }

// Selected returns the selected candidate.
func (e *Engine) Selected() Selection {
	if e.cands == nil || e.selected >= len(e.cands) {
		return NoSelection
	}
	return Select(e.selected)
}

// CommonPrefix returns the longest common prefix of the candidates.
func (e *Engine) CommonPrefix() string {
	if len(e.cands) == 0 {
		return ""
	}
	return string([]rune(e.cands[0].Value)[:e.prefixLen])
}

// Context returns the context of the completion in progress.
func (e *Engine) Context() Context { return e.ctx }

// Begin starts a new completion at the cursor, discarding any candidates. It
// returns the number of candidates found.
//
// When no candidate is found, the buffer is left unchanged. A single
// candidate is inserted and finished, and completion ends. With more
// candidates, their common prefix is inserted and none is selected.
func (e *Engine) Begin() int {
	e.cfg.Trace.Print("completion start")
	e.Cleanup()

	e.ctx = e.cfg.Context(e.buf)
	e.insertAt = e.buf.Dot()
	e.end = e.insertAt
	if e.ctx.PendingBackslash {
		// The inserted text carries its own escapes.
		e.insertAt--
	}

	cands, err := e.cfg.Generator.Generate(e.ctx)
	if err != nil {
		e.cfg.Trace.Printf("generator failed: %v", err)
		logger.Printf("generator failed: %v", err)
		cands = nil
	}
	e.cands = append(make([]Candidate, 0, len(cands)), cands...)
	e.cfg.Trace.Printf("got %d candidate(s)", len(e.cands))

	switch len(e.cands) {
	case 0:
		e.selected = 0
	case 1:
		e.selected = 0
		e.setCandidate()
		e.finishWord()
		e.Cleanup()
	default:
		e.prefixLen = CommonPrefixLen(e.cands)
		e.cfg.Trace.Printf("candidate common prefix: %q", e.CommonPrefix())
		e.selected = len(e.cands)
		e.setCandidate()
	}

	e.cfg.Trace.Print("completion end")
	return len(cands)
}

// Cycle moves the selection by offset, wrapping through a state where no
// candidate is selected. If completion is not in progress, it begins a new
// one instead.
func (e *Engine) Cycle(offset int) {
	if e.cands == nil {
		e.Begin()
		return
	} else if len(e.cands) == 0 {
		return
	}
	n := int64(len(e.cands)) + 1
	off := int64(offset) % n
	if off < 0 {
		off += n
	}
	e.selected = int((int64(e.selected) + off) % n)
	e.setCandidate()
}

// ExpandAll replaces the source word with all candidates, each quoted as an
// unquoted word and followed by a space. Completion ends afterwards. It
// returns the number of candidates.
func (e *Engine) ExpandAll() int {
	e.cfg.Trace.Print("completion start")
	e.Cleanup()

	e.ctx = e.cfg.Context(e.buf)
	cands, err := e.cfg.Generator.Generate(e.ctx)
	if err != nil {
		e.cfg.Trace.Printf("generator failed: %v", err)
		logger.Printf("generator failed: %v", err)
		cands = nil
	}
	e.cfg.Trace.Printf("got %d candidate(s)", len(cands))

	if len(cands) > 0 {
		var sb strings.Builder
		for _, c := range cands {
			sb.WriteString(parse.Quote(c.Value, parse.QuoteNormal))
			sb.WriteByte(' ')
		}
		from, dot := e.ctx.SourceWordIndex, e.buf.Dot()
		text := sb.String()
		e.buf.Replace(from, dot-from, text)
		e.buf.SetDot(from + runeLen(text))
		e.cfg.OnChange()
	}

	e.cfg.Trace.Print("completion end")
	return len(cands)
}

// Cleanup discards the candidates. It never changes the buffer, and can be
// called at any time.
func (e *Engine) Cleanup() {
	e.cands = nil
	e.selected = 0
	e.prefixLen = 0
}

// Replaces the previously inserted span with the text for the current
// selection, or the common prefix if there is none.
func (e *Engine) setCandidate() {
	if e.selected >= len(e.cands) {
		tail := runeSlice(e.cands[0].Value, e.ctx.ExpandedLen, e.prefixLen)
		if tail == "" && e.ctx.PendingBackslash {
			e.replaceSpan(`\`)
		} else {
			e.replaceSpan(parse.Quote(tail, e.ctx.Quote))
		}
		return
	}
	cand := e.cands[e.selected]
	text := parse.Quote(runeSlice(cand.Value, e.ctx.ExpandedLen, -1), e.ctx.Quote)
	if cand.Kind == Dir {
		if cand.Value != "" && !strings.HasSuffix(cand.Value, "/") {
			text += "/"
		}
	} else {
		switch e.ctx.Quote {
		case parse.QuoteSingle:
			text += "'"
		case parse.QuoteDouble:
			text += `"`
		}
	}
	e.replaceSpan(text)
}

// Appends a space after a finished word. Directories are not finished, so
// that completion can continue inside them.
func (e *Engine) finishWord() {
	if e.cands[e.selected].Kind == Dir {
		return
	}
	e.buf.Insert(e.end, " ")
	e.end++
	e.buf.SetDot(e.end)
	e.cfg.OnChange()
}

func (e *Engine) replaceSpan(text string) {
	e.buf.Replace(e.insertAt, e.end-e.insertAt, text)
	e.end = e.insertAt + runeLen(text)
	e.buf.SetDot(e.end)
	e.cfg.OnChange()
}

// CommonPrefixLen returns the length in runes of the longest common prefix of
// the values of cands, which must not be empty. Comparison is exact and case
// sensitive.
func CommonPrefixLen(cands []Candidate) int {
	first := []rune(cands[0].Value)
	n := len(first)
	for _, c := range cands[1:] {
		i := 0
		for _, r := range c.Value {
			if i >= n || r != first[i] {
				break
			}
			i++
		}
		n = i
	}
	return n
}

// Returns runes [from, to) of s, clamped to the length of s. A negative to
// means the end of s.
func runeSlice(s string, from, to int) string {
	runes := []rune(s)
	if to < 0 || to > len(runes) {
		to = len(runes)
	}
	if from > to {
		return ""
	}
	return string(runes[from:to])
}

func runeLen(s string) int { return len([]rune(s)) }
