//go:build unix

package term

import (
	"fmt"
	"os"

	"src.yle.sh/pkg/sys"
	"src.yle.sh/pkg/sys/eunix"
)

// Setup puts the terminal referenced by in into raw mode. It returns a
// function that restores the original attributes.
func Setup(in *os.File) (func() error, error) {
	if !sys.IsATTY(in.Fd()) {
		return nil, fmt.Errorf("%s is not a terminal", in.Name())
	}
	fd := int(in.Fd())
	orig, err := eunix.TermiosForFd(fd)
	if err != nil {
		return nil, fmt.Errorf("get terminal attributes: %w", err)
	}
	raw := orig.Copy()
	raw.SetRaw()
	if err := raw.ApplyToFd(fd); err != nil {
		return nil, fmt.Errorf("set terminal attributes: %w", err)
	}
	return func() error { return orig.ApplyToFd(fd) }, nil
}
