// Package progtest contains utilities for testing [prog.Program]
// implementations.
package progtest

import (
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"src.yle.sh/pkg/must"
	"src.yle.sh/pkg/prog"
)

// Case is a test case for Test. It is built with ThatYle and the methods of
// Case; each method returns a modified copy.
type Case struct {
	args  []string
	stdin string

	want result
}

type result struct {
	exit   int
	stdout output
	stderr output
}

type output struct {
	content string
	partial bool
}

func (o output) String() string {
	if o.partial {
		return fmt.Sprintf("text containing %q", o.content)
	}
	return fmt.Sprintf("%q", o.content)
}

// ThatYle returns a new Case with the specified CLI arguments, not including
// the program name.
//
// The new Case expects the program run to exit with 0, and write nothing to
// stdout or stderr.
//
// When combined with subsequent method calls, a test reads like English. For
// example, a test for the fact that "yle -bad-flag" exits with 2 reads like:
//
//	ThatYle("-bad-flag").ExitsWith(2)
func ThatYle(args ...string) Case {
	return Case{args: append([]string{"yle"}, args...)}
}

// WithStdin returns an altered Case that provides the given input to stdin
// of the program.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise
// don't have any expectations, for example:
//
//	ThatYle("-log", "log").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that expects the program to exit with
// the given code.
func (c Case) ExitsWith(code int) Case {
	c.want.exit = code
	return c
}

// WritesStdout returns an altered Case that expects the program to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that expects the program to
// write output to stdout that contains the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true}
	return c
}

// WritesStderr returns an altered Case that expects the program to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that expects the program to
// write output to stderr that contains the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			r := run(p, c.args, c.stdin)
			if r.exit != c.want.exit {
				t.Errorf("got exit %v, want %v", r.exit, c.want.exit)
			}
			if !matchOutput(r.stdout.content, c.want.stdout) {
				t.Errorf("got stdout %v, want %v", r.stdout, c.want.stdout)
			}
			if !matchOutput(r.stderr.content, c.want.stderr) {
				t.Errorf("got stderr %v, want %v", r.stderr, c.want.stderr)
			}
		})
	}
}

// Run runs a Program with the given arguments and stdin. It returns the exit
// status and the outputs.
func Run(p prog.Program, stdin string, args ...string) (exit int, stdout, stderr string) {
	r := run(p, append([]string{"yle"}, args...), stdin)
	return r.exit, r.stdout.content, r.stderr.content
}

func run(p prog.Program, args []string, stdin string) result {
	r0, w0 := must.Pipe()
	// TODO: This assumes the stdin fits in the pipe buffer. Write it in a
	// goroutine if tests ever need more.
	must.OK1(w0.WriteString(stdin))
	w0.Close()
	defer r0.Close()

	w1, get1 := capturedOutput()
	w2, get2 := capturedOutput()

	exit := prog.Run([3]*os.File{r0, w1, w2}, args, p)
	return result{exit, output{content: get1()}, output{content: get2()}}
}

func matchOutput(got string, want output) bool {
	if want.partial {
		return strings.Contains(got, want.content)
	}
	return got == want.content
}

// Returns a file to write to and a function that closes the file and returns
// what has been written. The output is read in a goroutine, so the writer
// doesn't block when the pipe buffer fills up.
func capturedOutput() (*os.File, func() string) {
	r, w := must.Pipe()
	output := make(chan string, 1)
	go func() {
		b, err := io.ReadAll(r)
		if err != nil {
			panic(err)
		}
		r.Close()
		output <- string(b)
	}()
	return w, func() string {
		// Close the write side so captureOutput goroutine sees EOF and
		// terminates allowing us to capture and cache the output.
		w.Close()
		return <-output
	}
}
