// Package term reads keys from and draws the edited line on a terminal.
package term

import (
	"bufio"
	"io"
	"unicode/utf8"

	"src.yle.sh/pkg/ui"
)

// Reader decodes keys from terminal input.
//
// Each input rune is one key; escape sequences are not assembled, so the
// escape key and the bytes of function key sequences arrive as separate keys.
type Reader struct {
	r *bufio.Reader
}

// NewReader creates a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{bufio.NewReader(r)}
}

// ReadKey reads a single key. It returns the error from the underlying
// reader, such as io.EOF, if no key can be read.
func (rd *Reader) ReadKey() (ui.Key, error) {
	r, _, err := rd.r.ReadRune()
	if err != nil {
		return ui.Key{}, err
	}
	return KeyOf(r), nil
}

// Buffered returns whether there is input that can be read without blocking.
func (rd *Reader) Buffered() bool { return rd.r.Buffered() > 0 }

// KeyOf returns the key represented by a single input rune.
func KeyOf(r rune) ui.Key {
	switch {
	case r == '\t' || r == '\n':
		return ui.K(r)
	case r == 0x7f:
		return ui.K(ui.Backspace)
	case r == 0x0:
		return ui.K('@', ui.Ctrl)
	case r < 0x20:
		// ^A through ^_.
		return ui.K(r+0x40, ui.Ctrl)
	case r == utf8.RuneError:
		return ui.K(utf8.RuneError)
	default:
		return ui.K(r)
	}
}
