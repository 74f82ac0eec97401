//go:build unix

// Package eunix provides Unix-specific terminal utilities.
package eunix

import (
	"golang.org/x/sys/unix"
)

// Termios represents terminal attributes.
type Termios unix.Termios

// TermiosForFd returns the terminal attributes of the given file descriptor.
func TermiosForFd(fd int) (*Termios, error) {
	term, err := unix.IoctlGetTermios(fd, getAttrIOCTL)
	return (*Termios)(term), err
}

// ApplyToFd applies term to the given file descriptor, discarding any input
// not read yet.
func (term *Termios) ApplyToFd(fd int) error {
	return unix.IoctlSetTermios(fd, setAttrFlushIOCTL, (*unix.Termios)(term))
}

// Copy returns a copy of term.
func (term *Termios) Copy() *Termios {
	v := *term
	return &v
}

// SetRaw turns off canonical mode, echo, signal keys and input translation,
// so that every byte typed is delivered as is, one at a time.
func (term *Termios) SetRaw() {
	term.Lflag &^= unix.ICANON | unix.ECHO | unix.ISIG | unix.IEXTEN
	term.Iflag &^= unix.ICRNL | unix.INLCR | unix.IGNCR | unix.IXON | unix.ISTRIP
	term.Cc[unix.VMIN] = 1
	term.Cc[unix.VTIME] = 0
}

// Raw reports whether SetRaw has been applied.
func (term *Termios) Raw() bool {
	return term.Lflag&(unix.ICANON|unix.ECHO) == 0
}
