// Package keyconf loads key bindings from YAML files.
//
// A file looks like this:
//
//	start: vi-insert
//	modes:
//	  vi-insert:
//	    default: self-insert
//	    bindings:
//	      "Ctrl-X Ctrl-E": end-of-line
//
// Keys of a sequence are separated by spaces and written as accepted by
// ui.ParseKey. Commands are referred to by name.
package keyconf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"src.yle.sh/pkg/cli/keymap"
	"src.yle.sh/pkg/ui"
)

// Config is the content of a key binding file.
type Config struct {
	// Name of the mode a session starts in. Empty means unchanged.
	Start string `yaml:"start"`
	// Modes by name.
	Modes map[string]Mode `yaml:"modes"`
}

// Mode is the configuration of one mode.
type Mode struct {
	// Name of the default command. Empty means unchanged.
	Default string `yaml:"default"`
	// Command names by key sequence.
	Bindings map[string]string `yaml:"bindings"`
}

// Parse parses a key binding file. Unknown fields are errors.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &cfg, nil
}

// Load reads and parses a key binding file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Apply registers the bindings in cfg into t, resolving command names with
// lookup. It returns the start mode, or keymap.NoMode if cfg does not name
// one.
//
// Every malformed entry is reported as a *keymap.ConfigError; all of them
// are collected into the returned error. Valid entries are applied even when
// others are not.
func (cfg *Config) Apply(t *keymap.Table, lookup func(name string) (keymap.Command, bool)) (keymap.ModeID, error) {
	var errs error
	start := keymap.NoMode
	if cfg.Start != "" {
		if mode, ok := keymap.ParseMode(cfg.Start); ok {
			start = mode
		} else {
			errs = multierror.Append(errs, &keymap.ConfigError{
				Mode: keymap.NoMode, Msg: "undefined start mode " + cfg.Start})
		}
	}

	for _, modeName := range sortedKeys(cfg.Modes) {
		modeCfg := cfg.Modes[modeName]
		mode, ok := keymap.ParseMode(modeName)
		if !ok {
			errs = multierror.Append(errs, &keymap.ConfigError{
				Mode: keymap.NoMode, Msg: "undefined mode " + modeName})
			continue
		}
		if modeCfg.Default != "" {
			if cmd, ok := lookup(modeCfg.Default); !ok {
				errs = multierror.Append(errs, &keymap.ConfigError{
					Mode: mode, Msg: "unknown command " + modeCfg.Default})
			} else if err := t.SetDefault(mode, cmd); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
		for _, seqStr := range sortedKeys(modeCfg.Bindings) {
			name := modeCfg.Bindings[seqStr]
			seq, err := ui.ParseKeys(seqStr)
			if err != nil {
				errs = multierror.Append(errs, &keymap.ConfigError{
					Mode: mode, Msg: fmt.Sprintf("keys %q: %v", seqStr, err)})
				continue
			}
			cmd, ok := lookup(name)
			if !ok {
				errs = multierror.Append(errs, &keymap.ConfigError{
					Mode: mode, Seq: seq, Msg: "unknown command " + name})
				continue
			}
			if err := t.Register(mode, seq, cmd); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
	}
	return start, errs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
