package config

import (
	"log"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Delta describes what changed between two successive configs, so the
// main loop can decide which subsystems need to react (spec.md §5: "the
// main thread applies it, which may trigger Atlas.rebuild,
// DamageState.mark_all, layout recomputation").
type Delta struct {
	Config       Config
	FontChanged  bool
	ThemeChanged bool
	KeysChanged  bool
}

// Watcher watches a single config file and debounces reload
// notifications, generalized from elleryfamilia-thicc's whole-tree
// FileWatcher (internal/filemanager/watcher.go) down to a single file.
type Watcher struct {
	watcher    *fsnotify.Watcher
	path       string
	onChange   func(Delta)
	debounceMs int
	stop       chan struct{}
	stopped    bool
	mu         sync.Mutex

	lastConfig Config
}

// NewWatcher creates a Watcher for path. initial is the config already
// in effect, used to compute the first Delta's changed-flags.
func NewWatcher(path string, initial Config, onChange func(Delta)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:    w,
		path:       path,
		onChange:   onChange,
		debounceMs: 150,
		stop:       make(chan struct{}),
		lastConfig: initial,
	}, nil
}

// Start begins watching the config file's directory (fsnotify does not
// reliably keep a watch on editors that replace-on-save rather than
// write-in-place, so — like the teacher's watcher — we watch the parent
// directory and filter events by filename).
func (w *Watcher) Start() error {
	dir := parentDir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		log.Printf("veloterm config watcher: failed to watch %s: %v", dir, err)
	}
	go w.eventLoop()
	return nil
}

// Stop stops watching and releases the fsnotify handle.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	w.mu.Unlock()

	close(w.stop)
	w.watcher.Close()
}

func (w *Watcher) eventLoop() {
	var timer *time.Timer
	var timerMu sync.Mutex

	resetTimer := func() {
		timerMu.Lock()
		defer timerMu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(time.Duration(w.debounceMs)*time.Millisecond, w.reload)
	}

	for {
		select {
		case <-w.stop:
			timerMu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timerMu.Unlock()
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != w.path {
				continue
			}
			resetTimer()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("veloterm config watcher: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	prev := w.lastConfig
	w.mu.Unlock()

	cfg, err := Load(w.path)
	if err != nil {
		// spec.md §7 ConfigParseError: keep the previous config, log a
		// warning including the offending field path (err already
		// carries that context via %w wrapping in Load/Parse).
		log.Printf("veloterm: config reload failed, keeping previous config: %v", err)
		return
	}

	delta := Delta{
		Config:       cfg,
		FontChanged:  cfg.Font != prev.Font,
		ThemeChanged: cfg.Colors != prev.Colors,
		KeysChanged:  !sameBindings(cfg.Keys.Bindings, prev.Keys.Bindings),
	}

	w.mu.Lock()
	w.lastConfig = cfg
	w.mu.Unlock()

	if w.onChange != nil {
		w.onChange(delta)
	}
}

func sameBindings(a, b map[string][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for action, chords := range a {
		other, ok := b[action]
		if !ok || len(chords) != len(other) {
			return false
		}
		for i := range chords {
			if chords[i] != other[i] {
				return false
			}
		}
	}
	return true
}

func parentDir(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
