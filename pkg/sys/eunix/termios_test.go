//go:build linux || darwin

package eunix

import (
	"testing"

	"github.com/creack/pty"
)

func TestTermios(t *testing.T) {
	ptm, pts, err := pty.Open()
	if err != nil {
		t.Skip("cannot open pty:", err)
	}
	defer ptm.Close()
	defer pts.Close()

	fd := int(pts.Fd())
	orig, err := TermiosForFd(fd)
	if err != nil {
		t.Fatal(err)
	}
	if orig.Raw() {
		t.Fatalf("fresh pty is already raw")
	}

	raw := orig.Copy()
	raw.SetRaw()
	if orig.Raw() {
		t.Errorf("SetRaw on a copy changed the original")
	}
	if err := raw.ApplyToFd(fd); err != nil {
		t.Fatal(err)
	}
	got, err := TermiosForFd(fd)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Raw() {
		t.Errorf("attributes read back are not raw")
	}

	if err := orig.ApplyToFd(fd); err != nil {
		t.Fatal(err)
	}
	got, _ = TermiosForFd(fd)
	if got.Raw() {
		t.Errorf("attributes not restored")
	}
}
