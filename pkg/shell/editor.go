package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"src.yle.sh/pkg/store/storedefs"
)

// This type is the interface that the line editor has to satisfy. It is
// implemented by *edit.Editor and the minimal editor below.
type editor interface {
	ReadCode() (string, error)
}

// Reads lines without any editing, for when stdin is not a terminal.
type minEditor struct {
	in     *bufio.Reader
	out    io.Writer
	prompt string
	store  storedefs.Store
}

func newMinEditor(in *os.File, out io.Writer, prompt string, st storedefs.Store) *minEditor {
	return &minEditor{bufio.NewReader(in), out, prompt, st}
}

func (ed *minEditor) ReadCode() (string, error) {
	fmt.Fprint(ed.out, ed.prompt)
	line, err := ed.in.ReadString('\n')
	if err == io.EOF && line != "" {
		// The last line doesn't end in a newline; the next call returns EOF.
		err = nil
	}
	if err != nil {
		return "", err
	}
	line = chopLineEnding(line)
	if ed.store != nil && strings.TrimSpace(line) != "" {
		if _, err := ed.store.AddCmd(line); err != nil {
			logger.Printf("failed to add command to history: %v", err)
		}
	}
	return line, nil
}

func chopLineEnding(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	return strings.TrimSuffix(s, "\n")
}
