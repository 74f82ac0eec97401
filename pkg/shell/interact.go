package shell

import (
	"errors"
	"fmt"
	"io"
	"os"

	"src.yle.sh/pkg/cli/term"
	"src.yle.sh/pkg/edit"
	"src.yle.sh/pkg/edit/keyconf"
	"src.yle.sh/pkg/store"
	"src.yle.sh/pkg/store/storedefs"
	"src.yle.sh/pkg/sys"
)

const defaultPrompt = "> "

// InteractConfig keeps configuration for the interactive mode.
type InteractConfig struct {
	Prompt string
	// Path of the history database. If empty, history is not kept.
	DB string
	// Path of a keymap file. If empty, only the default key bindings are used.
	Keymap string
	// Receives completion traces. May be nil.
	CompDebug io.Writer
}

// Interact reads lines from fds[0] until end of input, printing every
// accepted line to fds[1]. The editor draws on fds[2], and warnings are also
// written there.
func Interact(fds [3]*os.File, cfg *InteractConfig) error {
	var st storedefs.Store
	if cfg.DB != "" {
		s, err := store.NewStore(cfg.DB)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
			fmt.Fprintln(fds[2], "History will not be saved.")
		} else {
			defer s.Close()
			st = s
		}
	}

	var ed editor
	var reload <-chan struct{}
	var tty *term.TTY
	if sys.IsATTY(fds[0].Fd()) {
		restore, err := term.Setup(fds[0])
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
		} else {
			defer restore()
			tty = term.NewTTY(fds[0], fds[2], func() int {
				_, col := sys.WinSize(fds[2])
				return col
			})
			ed = newLineEditor(tty, fds[2], cfg, st)
			if cfg.Keymap != "" {
				if w, err := keyconf.Watch(cfg.Keymap); err != nil {
					logger.Printf("cannot watch keymap: %v", err)
				} else {
					defer w.Close()
					reload = w.Changed()
				}
			}
		}
	}
	if ed == nil {
		ed = newMinEditor(fds[0], fds[2], cfg.Prompt, st)
	}

	for {
		select {
		case <-reload:
			if _, isMinEditor := ed.(*minEditor); !isMinEditor {
				ed = newLineEditor(tty, fds[2], cfg, st)
			}
		default:
		}

		line, err := ed.ReadCode()
		if err == io.EOF {
			return nil
		} else if errors.Is(err, edit.ErrInterrupted) {
			continue
		} else if err != nil {
			fmt.Fprintln(fds[2], "Editor error:", err)
			if _, isMinEditor := ed.(*minEditor); isMinEditor {
				return err
			}
			fmt.Fprintln(fds[2], "Falling back to basic line editor")
			ed = newMinEditor(fds[0], fds[2], cfg.Prompt, st)
			continue
		}
		fmt.Fprintln(fds[1], line)
	}
}

// Builds the line editor on the terminal. Problems with the keymap file are
// written to stderr, and the default key bindings are used instead. Since
// the keymap file is loaded again each time, it is reloaded by building a
// new editor on the same terminal.
func newLineEditor(tty edit.TTY, stderr io.Writer, cfg *InteractConfig, st storedefs.Store) *edit.Editor {
	edCfg := edit.Config{
		Prompt: cfg.Prompt, Store: st, CompDebug: cfg.CompDebug,
	}
	if cfg.Keymap != "" {
		km, err := keyconf.Load(cfg.Keymap)
		if err != nil {
			fmt.Fprintln(stderr, "Warning: cannot load keymap:", err)
		} else {
			edCfg.Keymap = km
		}
	}

	ed, err := edit.NewEditor(tty, edCfg)
	if err != nil {
		fmt.Fprintln(stderr, "Warning: cannot apply keymap:", err)
		edCfg.Keymap = nil
		// The default key bindings always apply.
		ed, err = edit.NewEditor(tty, edCfg)
		if err != nil {
			panic(err)
		}
	}
	logger.Println("line editor started")
	return ed
}
