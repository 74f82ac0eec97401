//go:build !unix

package term

import (
	"errors"
	"os"
)

// Setup is not supported on this platform; it always returns an error, and
// callers fall back to reading whole lines.
func Setup(in *os.File) (func() error, error) {
	return nil, errors.New("raw terminal mode is not supported")
}
