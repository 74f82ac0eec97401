package prog

import "flag"

// FlagSet wraps a [flag.FlagSet] and provides flags shared by several
// subprograms. Each shared flag is registered the first time it is asked for.
type FlagSet struct {
	*flag.FlagSet
	compDebug *string
}

// CompDebug returns the value of the -compdebug flag, the path of a file to
// append completion traces to.
func (fs *FlagSet) CompDebug() *string {
	if fs.compDebug == nil {
		var path string
		fs.StringVar(&path, "compdebug", "",
			"append completion traces to the file")
		fs.compDebug = &path
	}
	return fs.compDebug
}
