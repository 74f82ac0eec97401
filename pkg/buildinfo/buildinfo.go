// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X src.yle.sh/pkg/buildinfo.Var=value" to "go build".
package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"src.yle.sh/pkg/prog"
)

// Version identifies the version of yle. On development commits, it
// identifies the next release.
const Version = "0.1.0"

// VersionSuffix is appended to Version to build the full version string.
var VersionSuffix = "-dev.unknown"

// Reproducible identifies whether the build is reproducible.
var Reproducible = "false"

// Type of the information printed by -buildinfo.
type info struct {
	Version      string `json:"version"`
	GoVersion    string `json:"goversion"`
	Reproducible bool   `json:"reproducible"`
}

func value() info {
	return info{Version + VersionSuffix, runtime.Version(), Reproducible == "true"}
}

// Program is the buildinfo subprogram.
type Program struct {
	version, buildinfo, json bool
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.version, "version", false, "show version and quit")
	fs.BoolVar(&p.buildinfo, "buildinfo", false, "show build info and quit")
	fs.BoolVar(&p.json, "json", false, "show the output of -version or -buildinfo in JSON")
}

func (p *Program) Run(fds [3]*os.File, _ []string) error {
	v := value()
	switch {
	case p.buildinfo:
		if p.json {
			fmt.Fprintln(fds[1], mustToJSON(v))
		} else {
			fmt.Fprintln(fds[1], "Version:", v.Version)
			fmt.Fprintln(fds[1], "Go version:", v.GoVersion)
			fmt.Fprintln(fds[1], "Reproducible build:", v.Reproducible)
		}
	case p.version:
		if p.json {
			fmt.Fprintln(fds[1], mustToJSON(v.Version))
		} else {
			fmt.Fprintln(fds[1], v.Version)
		}
	default:
		return prog.ErrNextProgram
	}
	return nil
}

func mustToJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
