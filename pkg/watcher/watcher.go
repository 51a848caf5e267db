package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/langkey/pkg/logger"
)

// Op is the kind of change reported for a path.
type Op string

const (
	OpCreate Op = "create"
	OpWrite  Op = "write"
	OpRemove Op = "remove"
	OpRename Op = "rename"
)

// Event describes a change to a translation file or directory.
type Event struct {
	Path string
	Op   Op
}

// ChangeFunc receives every relevant change. It runs on the watcher
// goroutine and should return quickly.
type ChangeFunc func(ctx context.Context, ev Event)

// skipDirs are never descended into while looking for language roots.
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"storage":      true,
}

// Watcher reports changes to translation files below a workspace root.
type Watcher struct {
	root      string
	langRoots []string
	onChange  ChangeFunc
	logger    *slog.Logger

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
	closed  bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a watcher for the language roots below root. Roots are
// relative path templates such as "lang" or "resources/lang/{locale}".
func New(root string, langRoots []string, onChange ChangeFunc, opts ...Option) (*Watcher, error) {
	var roots []string
	for _, tmpl := range langRoots {
		if r := LangRoot(tmpl); r != "" {
			roots = append(roots, r)
		}
	}
	if len(roots) == 0 {
		return nil, ErrNoRoots
	}

	w := &Watcher{
		root:      root,
		langRoots: roots,
		onChange:  onChange,
		logger:    logger.NewNope(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start registers watches and begins delivering events in the background.
// It returns once the initial directories are watched. Cancelling ctx or
// calling Close stops delivery.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case w.closed:
		return ErrClosed
	case w.started:
		return ErrAlreadyStarted
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fsw = fsw

	if err := w.addTree(w.root, false); err != nil {
		_ = fsw.Close()
		return err
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	w.started = true

	go w.loop(ctx)

	w.logger.InfoContext(ctx, "watching translation files",
		slog.String("root", w.root),
		slog.Any("lang_roots", w.langRoots),
		slog.Int("dirs", len(fsw.WatchList())),
	)
	return nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	started := w.started
	w.mu.Unlock()

	if !started {
		return nil
	}

	w.cancel()
	err := w.fsw.Close()
	<-w.done
	return err
}

// Shutdown adapts Close to a shutdown hook signature.
func (w *Watcher) Shutdown(context.Context) error {
	return w.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ctx, ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.WarnContext(ctx, "watch error", slog.Any("error", err))
		}
	}
}

// handle filters one fsnotify event and reports it through onChange.
//
// A created directory is watched from then on, but files already written into
// it before the watch was registered produce no event. They cannot be cached
// yet, since nothing has read them, so the first lookup reads them from disk.
func (w *Watcher) handle(ctx context.Context, ev fsnotify.Event) {
	op, ok := convertOp(ev.Op)
	if !ok {
		return
	}

	if op == OpCreate {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name, w.insideLangRoot(ev.Name)); err != nil {
				w.logger.WarnContext(ctx, "failed to watch directory", slog.String("path", ev.Name), slog.Any("error", err))
			}
			return
		}
	}

	if !w.relevant(ev.Name, op) {
		return
	}

	w.logger.DebugContext(ctx, "translation file changed", slog.String("path", ev.Name), slog.String("op", string(op)))
	if w.onChange != nil {
		w.onChange(ctx, Event{Path: ev.Name, Op: op})
	}
}

// relevant keeps *.php files below a language root, plus removals of
// directories below one, which may take many files with them.
func (w *Watcher) relevant(path string, op Op) bool {
	rel := w.rel(path)
	for _, root := range w.langRoots {
		if Match(root, rel) {
			return true
		}
		if (op == OpRemove || op == OpRename) && filepath.Ext(rel) == "" {
			if _, ok := within(root, rel+"/x"); ok {
				return true
			}
		}
	}
	return false
}

// insideLangRoot reports whether dir is a language root or below one.
func (w *Watcher) insideLangRoot(dir string) bool {
	rel := w.rel(dir)
	for _, root := range w.langRoots {
		if _, ok := within(root, rel+"/x"); ok {
			return true
		}
	}
	return false
}

// addTree walks dir and watches every directory that is a language root,
// lies below one, or may still contain one.
func (w *Watcher) addTree(dir string, inside bool) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		name := d.Name()
		if path != w.root && (strings.HasPrefix(name, ".") || skipDirs[name]) {
			return filepath.SkipDir
		}

		// Directories outside any language root are watched too, so that a
		// language root created later is picked up.
		if err := w.fsw.Add(path); err != nil {
			if inside || w.insideLangRoot(path) {
				return err
			}
			w.logger.Debug("skipping directory", slog.String("path", path), slog.Any("error", err))
		}
		return nil
	})
}

func (w *Watcher) rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return path
	}
	return rel
}

func convertOp(op fsnotify.Op) (Op, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	default:
		return "", false
	}
}
