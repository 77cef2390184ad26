package dashboard

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Pimzino/claude-code-spec-workflow/events"
	"github.com/Pimzino/claude-code-spec-workflow/spec"
)

// debounceDelay coalesces editor write bursts into one event per spec.
const debounceDelay = 150 * time.Millisecond

// Watcher observes a project's spec and steering directories and publishes
// typed events on the bus. Each event triggers a fresh parse of the changed
// spec; the watcher keeps no parsed state of its own.
type Watcher struct {
	projectRoot string
	bus         *events.Bus
	logger      *slog.Logger

	fsw  *fsnotify.Watcher
	done chan struct{}

	mu      sync.Mutex
	pending map[string]*time.Timer // spec name ("" for steering) -> debounce timer
}

// NewWatcher creates a watcher for the given project root.
func NewWatcher(projectRoot string, bus *events.Bus, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		projectRoot: projectRoot,
		bus:         bus,
		logger:      logger,
		fsw:         fsw,
		done:        make(chan struct{}),
		pending:     make(map[string]*time.Timer),
	}
	if err := w.addRoots(); err != nil {
		fsw.Close()
		return nil, err
	}
	go w.loop()
	return w, nil
}

// addRoots registers the specs tree and the steering directory. Missing
// directories are skipped; the project may not be scaffolded yet.
func (w *Watcher) addRoots() error {
	specsDir := spec.SpecsRoot(w.projectRoot)
	if dirExists(specsDir) {
		if err := w.fsw.Add(specsDir); err != nil {
			return fmt.Errorf("watch %s: %w", specsDir, err)
		}
		entries, err := os.ReadDir(specsDir)
		if err != nil {
			return fmt.Errorf("read %s: %w", specsDir, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				if err := w.fsw.Add(filepath.Join(specsDir, e.Name())); err != nil {
					return fmt.Errorf("watch spec dir %s: %w", e.Name(), err)
				}
			}
		}
	}
	steeringDir := spec.SteeringRoot(w.projectRoot)
	if dirExists(steeringDir) {
		if err := w.fsw.Add(steeringDir); err != nil {
			return fmt.Errorf("watch %s: %w", steeringDir, err)
		}
	}
	return nil
}

// Close stops the watcher and its debounce timers.
func (w *Watcher) Close() error {
	close(w.done)
	w.mu.Lock()
	for _, timer := range w.pending {
		timer.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleFSEvent(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", slog.Any("err", err))
		}
	}
}

func (w *Watcher) handleFSEvent(ev fsnotify.Event) {
	// A new spec directory must itself be watched before its documents
	// produce events.
	if ev.Op.Has(fsnotify.Create) && dirExists(ev.Name) &&
		filepath.Dir(ev.Name) == spec.SpecsRoot(w.projectRoot) {
		if err := w.fsw.Add(ev.Name); err != nil {
			w.logger.Error("watch new spec dir", slog.String("dir", ev.Name), slog.Any("err", err))
		}
	}

	name, steering, ok := w.classify(ev.Name)
	if !ok {
		return
	}
	removed := ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename)
	w.debounce(name, steering, removed)
}

// classify maps a changed path to the spec it belongs to, or to the steering
// set. Paths outside both trees are ignored.
func (w *Watcher) classify(path string) (specName string, steering, ok bool) {
	steeringDir := spec.SteeringRoot(w.projectRoot)
	if filepath.Dir(path) == steeringDir {
		return "", true, true
	}
	specsDir := spec.SpecsRoot(w.projectRoot)
	rel, err := filepath.Rel(specsDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false, false
	}
	parts := strings.Split(rel, string(filepath.Separator))
	return parts[0], false, true
}

// debounce schedules one event per spec per delay window.
func (w *Watcher) debounce(specName string, steering, removed bool) {
	key := specName
	if steering {
		key = ""
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, exists := w.pending[key]; exists {
		timer.Stop()
	}
	w.pending[key] = time.AfterFunc(debounceDelay, func() {
		w.mu.Lock()
		delete(w.pending, key)
		w.mu.Unlock()
		select {
		case <-w.done:
			return
		default:
		}
		w.publish(specName, steering, removed)
	})
}

// publish re-parses the changed spec and emits the typed event.
func (w *Watcher) publish(specName string, steering, removed bool) {
	switch {
	case steering:
		w.bus.Publish(events.Event{
			Type:    events.TypeSteeringUpdate,
			Project: w.projectRoot,
		})
	case removed && !dirExists(filepath.Join(spec.SpecsRoot(w.projectRoot), specName)):
		w.bus.Publish(events.Event{
			Type:    events.TypeSpecRemoved,
			Project: w.projectRoot,
			Spec:    specName,
		})
	default:
		ev := events.Event{
			Type:    events.TypeSpecUpdate,
			Project: w.projectRoot,
			Spec:    specName,
		}
		if s, err := spec.Load(w.projectRoot, specName); err == nil {
			ev.Payload = TaskCounts{
				Total:     s.Summary.TotalTasks,
				Completed: s.Summary.CompletedTasks,
			}
		}
		w.bus.Publish(ev)
	}
	w.logger.Debug("change published",
		slog.String("spec", specName),
		slog.Bool("steering", steering),
	)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
