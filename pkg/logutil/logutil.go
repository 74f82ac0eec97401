// Package logutil provides logging utilities.
//
// All loggers returned by GetLogger share one output, which discards
// everything until SetOutput or SetOutputFile is called.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	out     = io.Discard
	loggers []*log.Logger
)

// Discard is a Logger that ignores all loggings.
var Discard = log.New(io.Discard, "", 0)

// GetLogger gets a logger with the given prefix, writing to the shared
// output.
func GetLogger(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	logger := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger to
// the new io.Writer. If the old output was a file opened by SetOutputFile, it
// is closed.
func SetOutput(newout io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if f, ok := out.(*os.File); ok && f != os.Stderr && f != os.Stdout {
		f.Close()
	}
	out = newout
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger
// to the named file. If the old output was a file opened by SetOutputFile, it
// is closed. The new file is truncated. If fname is empty, logging output is
// discarded.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	SetOutput(file)
	return nil
}

// Prefixed returns a Logger writing lines with the given prefix and no
// timestamps to w, or Discard if w is nil. It is used for diagnostics that
// are meant to be read by users rather than collected in the log file.
func Prefixed(w io.Writer, prefix string) *log.Logger {
	if w == nil {
		return Discard
	}
	return log.New(w, prefix, 0)
}
