// Package lsp implements a language server offering the completions of the
// line editor to editors of shell scripts.
package lsp

import (
	"context"
	"fmt"
	"os"

	"github.com/sourcegraph/jsonrpc2"

	"src.yle.sh/pkg/edit/complete"
	"src.yle.sh/pkg/logutil"
	"src.yle.sh/pkg/prog"
)

// Program is the LSP subprogram.
type Program struct {
	run       bool
	compDebug *string
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.run, "lsp", false, "run language server instead of the line editor")
	p.compDebug = fs.CompDebug()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if !p.run {
		return prog.ErrNextProgram
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not allowed with -lsp")
	}
	trace, closeTrace, err := prog.OpenCompDebug(*p.compDebug)
	if err != nil {
		fmt.Fprintln(fds[2], "Warning:", err)
	} else {
		defer closeTrace()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := newServer(complete.FileNames, logutil.Prefixed(trace, "[compdebug] "))
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(transport{fds[0], fds[1]}, jsonrpc2.VSCodeObjectCodec{}),
		handler(s))
	<-conn.DisconnectNotify()
	return nil
}

type transport struct{ in, out *os.File }

func (c transport) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c transport) Write(p []byte) (int, error) { return c.out.Write(p) }

func (c transport) Close() error {
	if err := c.in.Close(); err != nil {
		c.out.Close()
		return err
	}
	return c.out.Close()
}
