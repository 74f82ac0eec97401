// Package linebuf implements the buffer edited by the line editor.
//
// A Buffer is a sequence of runes plus a cursor index, called the dot. The
// mutating methods never move the dot; callers that change the content are
// responsible for setting the dot afterwards.
package linebuf

import "fmt"

// PreconditionViolation is the panic value used when a caller passes an
// index that is out of range. Such indices are always derived from the buffer
// itself, so they indicate a programming error.
type PreconditionViolation struct {
	Op  string
	Msg string
}

func (e PreconditionViolation) Error() string {
	return fmt.Sprintf("linebuf: %s: %s", e.Op, e.Msg)
}

// Buffer is an editable line.
type Buffer struct {
	runes []rune
	dot   int
}

// New returns a Buffer with the given content and the dot at the end.
func New(s string) *Buffer {
	b := &Buffer{runes: []rune(s)}
	b.dot = len(b.runes)
	return b
}

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int { return len(b.runes) }

// Dot returns the cursor index.
func (b *Buffer) Dot() int { return b.dot }

// SetDot sets the cursor index. It panics if i is not in [0, Len()].
func (b *Buffer) SetDot(i int) {
	b.checkIndex("SetDot", i)
	b.dot = i
}

// String returns the content of the buffer.
func (b *Buffer) String() string { return string(b.runes) }

// Runes returns a copy of the content of the buffer.
func (b *Buffer) Runes() []rune { return append([]rune(nil), b.runes...) }

// Slice returns the content between from and to as a string.
func (b *Buffer) Slice(from, to int) string {
	b.checkRange("Slice", from, to-from)
	return string(b.runes[from:to])
}

// Reset replaces the whole content and moves the dot to the end.
func (b *Buffer) Reset(s string) {
	b.runes = []rune(s)
	b.dot = len(b.runes)
}

// Insert inserts text before index i.
func (b *Buffer) Insert(i int, text string) {
	b.checkIndex("Insert", i)
	b.splice(i, 0, []rune(text))
}

// Remove removes n runes starting at index i.
func (b *Buffer) Remove(i, n int) {
	b.checkRange("Remove", i, n)
	b.splice(i, n, nil)
}

// Replace replaces n runes starting at index i with text.
func (b *Buffer) Replace(i, n int, text string) {
	b.checkRange("Replace", i, n)
	b.splice(i, n, []rune(text))
}

func (b *Buffer) splice(i, n int, ins []rune) {
	tail := b.runes[i+n:]
	runes := make([]rune, 0, i+len(ins)+len(tail))
	runes = append(runes, b.runes[:i]...)
	runes = append(runes, ins...)
	runes = append(runes, tail...)
	b.runes = runes
	if b.dot > len(b.runes) {
		// The caller is about to set the dot, but the buffer must stay valid
		// until it does.
		b.dot = len(b.runes)
	}
}

func (b *Buffer) checkIndex(op string, i int) {
	if i < 0 || i > len(b.runes) {
		panic(PreconditionViolation{op,
			fmt.Sprintf("index %d out of range [0, %d]", i, len(b.runes))})
	}
}

func (b *Buffer) checkRange(op string, i, n int) {
	if i < 0 || n < 0 || i+n > len(b.runes) {
		panic(PreconditionViolation{op,
			fmt.Sprintf("range [%d, %d) out of range [0, %d]", i, i+n, len(b.runes))})
	}
}
