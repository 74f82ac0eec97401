// Package ui contains the key type shared by the terminal reader, the keymap
// and the keymap configuration file.
package ui

import (
	"fmt"
	"sort"
	"strings"
)

// Key represents a single keyboard input. Keys are matched exactly; the
// terminal reader is responsible for normalizing what it reads.
type Key struct {
	Rune rune
	Mod  Mod
}

// K constructs a new Key.
func K(r rune, mods ...Mod) Key {
	var mod Mod
	for _, m := range mods {
		mod |= m
	}
	return Key{r, mod}
}

// Mod represents a modifier key.
type Mod byte

// Values for Mod.
const (
	// Shift is the shift modifier. It is only applied to special keys (e.g.
	// Shift-F1). For instance 'A' and '@' which are typically entered with the
	// shift key pressed, are not considered to be shift-modified.
	Shift Mod = 1 << iota
	// Alt is the alt modifier, traditionally known as the meta modifier.
	Alt
	Ctrl
)

const functionKeyOffset = 0x1000

// Special negative runes to represent function keys, used in the Rune field
// of the Key struct.
const (
	F1 rune = -functionKeyOffset - iota
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12

	Up
	Down
	Right
	Left

	Home
	Insert
	Delete
	End
	PageUp
	PageDown
)

// Function key names that are aliases for their ASCII representation.
const (
	Tab       = '\t'
	Enter     = '\n'
	Backspace = 0x7f
)

var functionKeyNames = [...]string{
	"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12",
	"Up", "Down", "Right", "Left",
	"Home", "Insert", "Delete", "End", "PageUp", "PageDown",
}

var keyNames = map[rune]string{
	Tab: "Tab", Enter: "Enter", Backspace: "Backspace", ' ': "Space",
}

func (k Key) String() string {
	var b strings.Builder
	if k.Mod&Ctrl != 0 {
		b.WriteString("Ctrl-")
	}
	if k.Mod&Alt != 0 {
		b.WriteString("Alt-")
	}
	if k.Mod&Shift != 0 {
		b.WriteString("Shift-")
	}
	if k.Rune >= 0 {
		if name, ok := keyNames[k.Rune]; ok {
			b.WriteString(name)
		} else {
			b.WriteRune(k.Rune)
		}
	} else {
		i := int(-functionKeyOffset - k.Rune)
		if 0 <= i && i < len(functionKeyNames) {
			b.WriteString(functionKeyNames[i])
		} else {
			fmt.Fprintf(&b, "(bad function key %d)", k.Rune)
		}
	}
	return b.String()
}

// modifierByName maps a name to an modifier. It is used for parsing keys where
// the modifier string is first turned to lower case, so that all of C, c,
// CTRL, Ctrl and ctrl can represent the Ctrl modifier.
var modifierByName = map[string]Mod{
	"s": Shift, "shift": Shift,
	"a": Alt, "alt": Alt,
	"m": Alt, "meta": Alt,
	"c": Ctrl, "ctrl": Ctrl,
}

// ParseKey parses a symbolic key. The syntax is:
//
//	Key = { Mod ('+' | '-') } BareKey
//
//	BareKey = FunctionKeyName | SingleRune
func ParseKey(s string) (Key, error) {
	var k Key

	// Parse modifiers.
	for {
		i := strings.IndexAny(s, "+-")
		if i <= 0 {
			break
		}
		modname := s[:i]
		mod, ok := modifierByName[strings.ToLower(modname)]
		if !ok {
			return Key{}, fmt.Errorf("bad modifier: %s", strings.ToLower(modname))
		}
		k.Mod |= mod
		s = s[i+1:]
	}

	if r := []rune(s); len(r) == 1 {
		k.Rune = r[0]
		if k.Mod&Ctrl != 0 {
			// Control modifier is case-insensitive; normalize to upper case.
			k.Rune = toUpper(k.Rune)
			switch k.Rune {
			case 'I':
				// Ctrl-I is the same as Tab.
				return Key{Tab, k.Mod &^ Ctrl}, nil
			case 'J':
				// Ctrl-J is the same as Enter.
				return Key{Enter, k.Mod &^ Ctrl}, nil
			}
		}
		return k, nil
	}

	for r, name := range keyNames {
		if s == name {
			k.Rune = r
			return k, nil
		}
	}

	for i, name := range functionKeyNames {
		if s == name {
			k.Rune = -functionKeyOffset - rune(i)
			return k, nil
		}
	}

	return Key{}, fmt.Errorf("bad key: %s", s)
}

// ParseKeys parses a space-separated sequence of symbolic keys, such as
// "Ctrl-X Ctrl-E".
func ParseKeys(s string) ([]Key, error) {
	fields := strings.Fields(s)
	keys := make([]Key, len(fields))
	for i, field := range fields {
		k, err := ParseKey(field)
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}
	return keys, nil
}

func toUpper(r rune) rune {
	if 'a' <= r && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

// Keys implements sort.Interface.
type Keys []Key

func (ks Keys) Len() int      { return len(ks) }
func (ks Keys) Swap(i, j int) { ks[i], ks[j] = ks[j], ks[i] }
func (ks Keys) Less(i, j int) bool {
	return ks[i].Mod < ks[j].Mod ||
		(ks[i].Mod == ks[j].Mod && ks[i].Rune < ks[j].Rune)
}

// String returns the keys joined by spaces, the same syntax accepted by
// ParseKeys.
func (ks Keys) String() string {
	names := make([]string, len(ks))
	for i, k := range ks {
		names[i] = k.String()
	}
	return strings.Join(names, " ")
}

// Sorted returns a sorted copy of ks.
func (ks Keys) Sorted() Keys {
	sorted := append(Keys(nil), ks...)
	sort.Sort(sorted)
	return sorted
}
