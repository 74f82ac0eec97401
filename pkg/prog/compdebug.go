package prog

import (
	"fmt"
	"io"
	"os"
)

// OpenCompDebug opens the file named by the -compdebug flag for appending.
// It returns a nil writer and a no-op close function if path is empty.
func OpenCompDebug(path string) (io.Writer, func() error, error) {
	if path == "" {
		return nil, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open completion trace file: %w", err)
	}
	return f, f.Close, nil
}
