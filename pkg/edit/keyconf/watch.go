package keyconf

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"src.yle.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[edit/keyconf] ")

// Watcher reports changes to a key binding file.
type Watcher struct {
	w       *fsnotify.Watcher
	path    string
	changed chan struct{}
	done    chan struct{}
}

// Watch starts watching the key binding file at path. The directory of the
// file is watched rather than the file, so that replacing the file is noticed
// as well as writing to it.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	kw := &Watcher{w, abs, make(chan struct{}, 1), make(chan struct{})}
	go kw.loop()
	return kw, nil
}

// Changed returns a channel that receives a value after the file changes.
// Changes made before the value is received are coalesced.
func (kw *Watcher) Changed() <-chan struct{} { return kw.changed }

// Close stops watching.
func (kw *Watcher) Close() error {
	err := kw.w.Close()
	<-kw.done
	return err
}

func (kw *Watcher) loop() {
	defer close(kw.done)
	for {
		select {
		case ev, ok := <-kw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != kw.path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Printf("%s changed", kw.path)
			select {
			case kw.changed <- struct{}{}:
			default:
			}
		case err, ok := <-kw.w.Errors:
			if !ok {
				return
			}
			logger.Printf("watch: %v", err)
		}
	}
}
