package sys

import (
	"os"
	"testing"

	"github.com/creack/pty"
)

func TestIsATTY(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()
	if IsATTY(r.Fd()) {
		t.Errorf("IsATTY(pipe) = true")
	}

	ptm, pts, err := pty.Open()
	if err != nil {
		t.Skip("cannot open pty:", err)
	}
	defer ptm.Close()
	defer pts.Close()
	if !IsATTY(pts.Fd()) {
		t.Errorf("IsATTY(pty) = false")
	}
}

func TestWinSize(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()
	if row, col := WinSize(r); row != -1 || col != -1 {
		t.Errorf("WinSize(pipe) = %d, %d, want -1, -1", row, col)
	}

	ptm, pts, err := pty.Open()
	if err != nil {
		t.Skip("cannot open pty:", err)
	}
	defer ptm.Close()
	defer pts.Close()
	if err := pty.Setsize(ptm, &pty.Winsize{Rows: 30, Cols: 100}); err != nil {
		t.Fatal(err)
	}
	if row, col := WinSize(pts); row != 30 || col != 100 {
		t.Errorf("WinSize(pty) = %d, %d, want 30, 100", row, col)
	}
}
