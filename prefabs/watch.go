package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceWindow is how long a file must stay quiet before its change is
// reported.
const DebounceWindow = 100 * time.Millisecond

type ChangeKind int

const (
	ChangeSpec ChangeKind = iota
	ChangeScript
)

func (k ChangeKind) String() string {
	if k == ChangeScript {
		return "script"
	}
	return "spec"
}

// Change is one debounced edit to a prefab or ability script on disk.
type Change struct {
	Path    string
	Name    string
	Kind    ChangeKind
	Removed bool
}

// Watcher reports edits to character templates and scripts so running
// characters can be rebuilt.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

// run coalesces events per file and emits a file's change only once it has
// been quiet for DebounceWindow, so a truncate followed by a write is
// reported once, after the write.
func (w *Watcher) run() {
	defer close(w.done)

	type pendingChange struct {
		change Change
		at     time.Time
	}
	pending := make(map[string]pendingChange)
	timer := time.NewTimer(DebounceWindow)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			change, ok := classify(event)
			if !ok {
				continue
			}
			pending[event.Name] = pendingChange{change: change, at: time.Now()}
			timer.Reset(DebounceWindow)
		case <-timer.C:
			now := time.Now()
			var wait time.Duration
			for path, p := range pending {
				quiet := now.Sub(p.at)
				if quiet < DebounceWindow {
					if left := DebounceWindow - quiet; wait == 0 || left < wait {
						wait = left
					}
					continue
				}
				delete(pending, path)
				select {
				case w.Events <- p.change:
				case <-w.closeCh:
					return
				}
			}
			if wait > 0 {
				timer.Reset(wait)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func classify(event fsnotify.Event) (Change, bool) {
	c := Change{
		Path:    event.Name,
		Name:    filepath.Base(event.Name),
		Removed: event.Op&(fsnotify.Remove|fsnotify.Rename) != 0,
	}
	switch {
	case isSpecFile(event.Name):
		c.Kind = ChangeSpec
	case isScriptFile(event.Name):
		c.Kind = ChangeScript
		c.Name = "scripts/" + c.Name
	default:
		return Change{}, false
	}
	return c, true
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
