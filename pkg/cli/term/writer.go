package term

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Escape sequences and separators used by Writer.
const (
	clearToEnd   = "\033[J"
	cursorUp     = "\033[A"
	reverse      = "\033[7m"
	resetStyle   = "\033[m"
	candidateSep = "  "
)

// Item is an entry of the candidate row.
type Item struct {
	Text  string
	Width int
}

// Screen is what Writer draws: the prompt followed by the line, and an
// optional row of candidates below it.
type Screen struct {
	Prompt string
	Line   string
	// Rune index of the cursor in Line.
	Dot   int
	Items []Item
	// Index of the highlighted item, or -1.
	Selected int
}

// Writer draws screens on a terminal. It assumes that the prompt and the line
// fit on one terminal row.
type Writer struct {
	w     io.Writer
	width func() int
}

// NewWriter creates a Writer. The width function returns the number of
// columns of the terminal; a non-positive value means no limit.
func NewWriter(w io.Writer, width func() int) *Writer {
	if width == nil {
		width = func() int { return 0 }
	}
	return &Writer{w, width}
}

// Render redraws the screen, starting from the row the cursor is on.
func (w *Writer) Render(s Screen) error {
	var buf bytes.Buffer
	buf.WriteString("\r")
	buf.WriteString(s.Prompt)
	buf.WriteString(s.Line)
	buf.WriteString(clearToEnd)
	if row := w.candidateRow(s); row != "" {
		buf.WriteString("\r\n")
		buf.WriteString(row)
		buf.WriteString(cursorUp)
	}
	buf.WriteString("\r")
	line := []rune(s.Line)
	if s.Dot > len(line) {
		s.Dot = len(line)
	}
	if col := runewidth.StringWidth(s.Prompt + string(line[:s.Dot])); col > 0 {
		fmt.Fprintf(&buf, "\033[%dC", col)
	}
	_, err := w.w.Write(buf.Bytes())
	return err
}

func (w *Writer) candidateRow(s Screen) string {
	if len(s.Items) == 0 {
		return ""
	}
	width := w.width()
	var sb strings.Builder
	used := 0
	for i, item := range s.Items {
		need := item.Width
		if i > 0 {
			need += len(candidateSep)
		}
		if width > 0 && used+need > width {
			break
		}
		if i > 0 {
			sb.WriteString(candidateSep)
		}
		if i == s.Selected {
			sb.WriteString(reverse + item.Text + resetStyle)
		} else {
			sb.WriteString(item.Text)
		}
		used += need
	}
	return sb.String()
}

// Finish clears everything below the line and moves to the start of the next
// row, leaving the line on the screen.
func (w *Writer) Finish() error {
	_, err := io.WriteString(w.w, clearToEnd+"\r\n")
	return err
}

// Alert rings the terminal bell.
func (w *Writer) Alert() error {
	_, err := io.WriteString(w.w, "\a")
	return err
}
