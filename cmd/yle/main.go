// Yle is a line editor with modal key bindings and shell-style completion.
// It reads lines on a terminal and prints every accepted line, and can also
// serve its completions over the language server protocol.
package main

import (
	"os"

	"src.yle.sh/pkg/buildinfo"
	"src.yle.sh/pkg/lsp"
	"src.yle.sh/pkg/prog"
	"src.yle.sh/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(&buildinfo.Program{}, &lsp.Program{}, &shell.Program{})))
}
