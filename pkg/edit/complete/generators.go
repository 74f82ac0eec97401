package complete

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	"src.yle.sh/pkg/store/storedefs"
)

// Generator produces the candidates for a context. Candidates should start
// with the source word of the context.
type Generator interface {
	Generate(ctx Context) ([]Candidate, error)
}

// GeneratorFunc adapts an ordinary function to a Generator.
type GeneratorFunc func(ctx Context) ([]Candidate, error)

// Generate calls f(ctx).
func (f GeneratorFunc) Generate(ctx Context) ([]Candidate, error) { return f(ctx) }

// Static generates those of the given words that start with the source word.
func Static(kind Kind, words ...string) Generator {
	return GeneratorFunc(func(ctx Context) ([]Candidate, error) {
		var cands []Candidate
		for _, w := range words {
			if strings.HasPrefix(w, ctx.Word) {
				cands = append(cands, NewCandidate(kind, w, ""))
			}
		}
		return cands, nil
	})
}

// FileNames generates the names of files that start with the source word.
// Hidden files are only generated when the base name of the source word
// starts with a dot.
var FileNames Generator = GeneratorFunc(generateFileNames)

func generateFileNames(ctx Context) ([]Candidate, error) {
	dir, fileprefix := filepath.Split(ctx.Word)
	dirToRead := dir
	if dirToRead == "" {
		dirToRead = "."
	}

	files, err := os.ReadDir(dirToRead)
	if err != nil {
		return nil, fmt.Errorf("cannot list directory %s: %w", dirToRead, err)
	}

	var cands []Candidate
	for _, file := range files {
		name := file.Name()
		if !strings.HasPrefix(name, fileprefix) || dotfile(fileprefix) != dotfile(name) {
			continue
		}
		full := dir + name
		kind := File
		if file.IsDir() {
			kind = Dir
		} else if file.Type()&os.ModeSymlink != 0 {
			stat, err := os.Stat(filepath.Join(dirToRead, name))
			if err == nil && stat.IsDir() {
				kind = Dir
			}
		}
		cands = append(cands, NewCandidate(kind, full, name))
	}
	return cands, nil
}

func dotfile(fname string) bool {
	return strings.HasPrefix(fname, ".")
}

// History generates the distinct command names found in the command history
// that start with the source word. It only generates candidates for the
// command name of a command.
func History(s storedefs.Store) Generator {
	return GeneratorFunc(func(ctx Context) ([]Candidate, error) {
		if len(ctx.Args) > 0 {
			return nil, nil
		}
		upto, err := s.NextCmdSeq()
		if err != nil {
			return nil, err
		}
		cmds, err := s.CmdsWithSeq(0, upto)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]bool)
		var names []string
		for _, cmd := range cmds {
			fields := strings.Fields(cmd.Text)
			if len(fields) == 0 {
				continue
			}
			name := fields[0]
			if !seen[name] && strings.HasPrefix(name, ctx.Word) {
				seen[name] = true
				names = append(names, name)
			}
		}
		sort.Strings(names)
		cands := make([]Candidate, len(names))
		for i, name := range names {
			cands[i] = NewCandidate(Command, name, "")
		}
		return cands, nil
	})
}

// ByPosition uses command to complete the command name of a command and
// argument to complete the other words. A nil generator generates nothing.
func ByPosition(command, argument Generator) Generator {
	return GeneratorFunc(func(ctx Context) ([]Candidate, error) {
		g := argument
		if len(ctx.Args) == 0 {
			g = command
		}
		if g == nil {
			return nil, nil
		}
		return g.Generate(ctx)
	})
}

// Merge generates the candidates of all the generators, in order. Candidates
// with the same value are only generated once. A generator that fails is
// skipped; an error is returned only when all of them fail.
func Merge(gens ...Generator) Generator {
	return GeneratorFunc(func(ctx Context) ([]Candidate, error) {
		var (
			cands []Candidate
			errs  error
			seen  = make(map[string]bool)
		)
		failed := 0
		for _, g := range gens {
			more, err := g.Generate(ctx)
			if err != nil {
				logger.Printf("generator failed: %v", err)
				errs = multierror.Append(errs, err)
				failed++
				continue
			}
			for _, c := range more {
				if !seen[c.Value] {
					seen[c.Value] = true
					cands = append(cands, c)
				}
			}
		}
		if failed > 0 && failed == len(gens) {
			return nil, errs
		}
		return cands, nil
	})
}
