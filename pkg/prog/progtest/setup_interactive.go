//go:build unix

package progtest

import (
	"errors"
	"os"
	"time"

	"github.com/creack/pty"

	"src.yle.sh/pkg/sys/eunix"
	"src.yle.sh/pkg/testutil"
)

// Interactive is a pseudo terminal for testing programs that read from a
// terminal.
type Interactive struct {
	// The controlling side, used by the test to type keys and read what is
	// drawn.
	Pty *os.File
	// The terminal side, to be passed to the program.
	TTY *os.File
}

// SetupInteractive opens a pseudo terminal, closed on cleanup.
func SetupInteractive(c testutil.Cleanuper) *Interactive {
	ptmx, tty, err := pty.Open()
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() {
		ptmx.Close()
		tty.Close()
	})
	return &Interactive{ptmx, tty}
}

// WaitForRawMode waits until the program has put the terminal into raw mode.
// Keys typed before that may be discarded.
func (in *Interactive) WaitForRawMode(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		term, err := eunix.TermiosForFd(int(in.TTY.Fd()))
		if err != nil {
			return err
		}
		if term.Raw() {
			return nil
		}
		if time.Now().After(deadline) {
			return errors.New("timed out waiting for raw mode")
		}
		time.Sleep(time.Millisecond)
	}
}

// Type writes s to the terminal as if typed by the user.
func (in *Interactive) Type(s string) {
	if _, err := in.Pty.WriteString(s); err != nil {
		panic(err)
	}
}

// Drain reads what the program has drawn on the terminal in a goroutine, so
// that the program never blocks on a full terminal buffer. It returns a
// channel closed when the pty returns an error, which happens after TTY is
// closed.
func (in *Interactive) Drain() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		buf := make([]byte, 1024)
		for {
			if _, err := in.Pty.Read(buf); err != nil {
				close(done)
				return
			}
		}
	}()
	return done
}
