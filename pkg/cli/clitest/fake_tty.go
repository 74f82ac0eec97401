// Package clitest provides utilities for testing the line editor.
package clitest

import (
	"io"

	"src.yle.sh/pkg/cli/term"
	"src.yle.sh/pkg/ui"
)

// FakeTTY is a terminal that replays queued keys and records what is drawn.
// It is not safe for concurrent use.
type FakeTTY struct {
	keys []ui.Key
	// Returned after the queued keys run out. Defaults to io.EOF.
	err error

	// Screens passed to Render, in order.
	Screens []term.Screen
	// Number of calls to Alert.
	Alerts int
	// Number of calls to Finish.
	Finishes int
}

// NewFakeTTY creates a FakeTTY with the given keys queued.
func NewFakeTTY(keys ...ui.Key) *FakeTTY {
	return &FakeTTY{keys: keys, err: io.EOF}
}

// Inject queues more keys.
func (t *FakeTTY) Inject(keys ...ui.Key) {
	t.keys = append(t.keys, keys...)
}

// InjectString queues the keys typed by the runes of s, decoded as
// term.Reader does.
func (t *FakeTTY) InjectString(s string) {
	for _, r := range s {
		t.keys = append(t.keys, term.KeyOf(r))
	}
}

// SetReadError sets the error returned when the queued keys run out.
func (t *FakeTTY) SetReadError(err error) { t.err = err }

// ReadKey returns the next queued key.
func (t *FakeTTY) ReadKey() (ui.Key, error) {
	if len(t.keys) == 0 {
		return ui.Key{}, t.err
	}
	k := t.keys[0]
	t.keys = t.keys[1:]
	return k, nil
}

// Render records s.
func (t *FakeTTY) Render(s term.Screen) error {
	t.Screens = append(t.Screens, s)
	return nil
}

// LastScreen returns the screen last drawn.
func (t *FakeTTY) LastScreen() term.Screen {
	if len(t.Screens) == 0 {
		return term.Screen{}
	}
	return t.Screens[len(t.Screens)-1]
}

// Finish counts the call.
func (t *FakeTTY) Finish() error {
	t.Finishes++
	return nil
}

// Alert counts the call.
func (t *FakeTTY) Alert() error {
	t.Alerts++
	return nil
}
