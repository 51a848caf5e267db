package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/langkey/pkg/cache"
	"github.com/dmitrymomot/langkey/pkg/logger"
	"github.com/dmitrymomot/langkey/pkg/phparray"
	"github.com/dmitrymomot/langkey/pkg/transkey"
)

const localePlaceholder = "{locale}"

// Translation is a resolved key: its value and where it is declared.
// Line and Column are 0-based; both are 0 when the declaration was not found.
type Translation struct {
	Key    string `json:"key"`
	Locale string `json:"locale"`
	Value  string `json:"value"`
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// StoreStats are cumulative counters since the store was created.
type StoreStats struct {
	Hits          int64 `json:"hits"`
	Misses        int64 `json:"misses"`
	Reads         int64 `json:"reads"`
	Invalidations int64 `json:"invalidations"`
}

// Store resolves translation keys against the language files of one
// workspace. Parsed files are cached until invalidated.
// A Store is safe for concurrent use.
type Store struct {
	cache         cache.Cache
	logger        *slog.Logger
	root          string
	defaultLocale string
	fallbackPath  string
	langPaths     []string

	group singleflight.Group

	// mu orders cache writes after a miss against invalidations.
	mu         sync.Mutex
	generation uint64

	hits          atomic.Int64
	misses        atomic.Int64
	reads         atomic.Int64
	invalidations atomic.Int64
}

// NewStore creates a store for the workspace rooted at root.
//
//	store := internal.NewStore("/srv/app",
//	    internal.WithDefaultLocale("en"),
//	    internal.WithCache(cache.NewMemory(cache.WithMaxEntries(512))),
//	)
func NewStore(root string, opts ...StoreOption) *Store {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	s := &Store{
		root:          root,
		logger:        logger.NewNope(),
		defaultLocale: DefaultLocale,
		fallbackPath:  DefaultFallbackPath,
		langPaths:     slices.Clone(DefaultLangPaths),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = cache.NewMemory()
	}
	return s
}

// Root returns the absolute workspace root.
func (s *Store) Root() string {
	return s.root
}

// DefaultLocale returns the locale used when a request names none.
func (s *Store) DefaultLocale() string {
	return s.defaultLocale
}

// LangPaths returns the probed directory templates followed by the fallback.
func (s *Store) LangPaths() []string {
	return append(slices.Clone(s.langPaths), s.fallbackPath)
}

// LangDir returns the language directory for locale: the first probed
// template that exists on disk, else the fallback template whether or not it
// exists.
func (s *Store) LangDir(locale string) string {
	for _, tmpl := range s.langPaths {
		dir := s.expand(tmpl, locale)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return s.expand(s.fallbackPath, locale)
}

func (s *Store) expand(tmpl, locale string) string {
	if !strings.Contains(tmpl, localePlaceholder) {
		tmpl = strings.TrimSuffix(tmpl, "/") + "/" + localePlaceholder
	}
	p := filepath.FromSlash(strings.ReplaceAll(tmpl, localePlaceholder, locale))
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.root, p)
}

// Resolve looks key up in one locale. An empty locale means the default one.
// Every failure wraps transkey.ErrNotFound.
func (s *Store) Resolve(ctx context.Context, key, locale string) (Translation, error) {
	if locale == "" {
		locale = s.defaultLocale
	}
	if !validLocale(locale) {
		return Translation{}, fmt.Errorf("%w: invalid locale %q", transkey.ErrNotFound, locale)
	}

	kp, err := transkey.SplitKey(key)
	if err != nil {
		return Translation{}, fmt.Errorf("%w: %w", transkey.ErrNotFound, err)
	}

	file := s.filePath(locale, kp.File)
	entry, err := s.load(ctx, locale, file)
	if err != nil {
		return Translation{}, err
	}

	value, err := transkey.Resolve(entry.Root, kp.Path)
	if err != nil {
		return Translation{}, fmt.Errorf("%w: %s has no %q", err, file, kp.Path)
	}

	t := Translation{
		Key:    kp.String(),
		Locale: locale,
		Value:  value,
		File:   file,
	}
	if pos, err := transkey.Locate(entry.Source, kp.Path); err == nil {
		t.Line, t.Column = pos.Line, pos.Column
	}
	return t, nil
}

// ResolveAll looks key up in every discovered locale and keeps the
// successful results. Locales lacking the file or the key are omitted.
func (s *Store) ResolveAll(ctx context.Context, key string) map[string]Translation {
	out := make(map[string]Translation)
	for _, locale := range s.Locales() {
		if ctx.Err() != nil {
			break
		}
		t, err := s.Resolve(ctx, key, locale)
		if err != nil {
			continue
		}
		out[locale] = t
	}
	return out
}

// Locales lists the subdirectories of the parent of the default locale's
// language directory. It is recomputed on every call and is empty when the
// directory cannot be read.
func (s *Store) Locales() []string {
	parent := filepath.Dir(s.LangDir(s.defaultLocale))
	entries, err := os.ReadDir(parent)
	if err != nil {
		return nil
	}

	locales := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			locales = append(locales, e.Name())
		}
	}
	return locales
}

// Keys returns the dotted leaf keys declared in one file, sorted.
func (s *Store) Keys(ctx context.Context, file, locale string) ([]string, error) {
	if locale == "" {
		locale = s.defaultLocale
	}
	if !validLocale(locale) {
		return nil, fmt.Errorf("%w: invalid locale %q", transkey.ErrNotFound, locale)
	}

	kp, err := transkey.SplitKey(file)
	if err != nil || kp.Path != "" {
		return nil, fmt.Errorf("%w: invalid file name %q", transkey.ErrNotFound, file)
	}

	entry, err := s.load(ctx, locale, s.filePath(locale, kp.File))
	if err != nil {
		return nil, err
	}

	flat := entry.Root.Flatten()
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, kp.File+"."+k)
	}
	slices.Sort(keys)
	return keys, nil
}

// Invalidate drops every cached file. Loads in flight keep their data for
// their own callers but do not write it back.
func (s *Store) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.invalidations.Add(1)

	if err := s.cache.Clear(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear translation cache", slog.String("error", err.Error()))
		return err
	}
	s.logger.DebugContext(ctx, "translation cache cleared")
	return nil
}

// InvalidateFile drops the cached entries of one file in every locale. A
// directory path drops everything below it. Relative paths are taken from
// the workspace root.
func (s *Store) InvalidateFile(ctx context.Context, path string) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}
	path = filepath.Clean(path)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.invalidations.Add(1)

	if err := s.cache.DeleteFile(ctx, path); err != nil {
		s.logger.ErrorContext(ctx, "failed to drop cached translation file",
			slog.String("file", path),
			slog.String("error", err.Error()),
		)
		return err
	}
	s.logger.DebugContext(ctx, "translation file invalidated", slog.String("file", path))
	return nil
}

// Stats returns the cache counters.
func (s *Store) Stats() StoreStats {
	return StoreStats{
		Hits:          s.hits.Load(),
		Misses:        s.misses.Load(),
		Reads:         s.reads.Load(),
		Invalidations: s.invalidations.Load(),
	}
}

// Close releases the cache backend.
func (s *Store) Close() error {
	return s.cache.Close()
}

func (s *Store) filePath(locale, file string) string {
	return filepath.Join(s.LangDir(locale), filepath.FromSlash(file)+".php")
}

// load returns the parsed file, reading and parsing it on a cache miss.
// A cached entry whose modification time or size no longer matches the file
// counts as a miss. Concurrent misses for the same file share one read.
func (s *Store) load(ctx context.Context, locale, file string) (cache.Entry, error) {
	info, err := os.Stat(file)
	if err != nil || !info.Mode().IsRegular() {
		return cache.Entry{}, fmt.Errorf("%w: no file %s", transkey.ErrNotFound, file)
	}

	key := cache.Key{Locale: locale, File: file}

	entry, err := s.cache.Get(ctx, key)
	switch {
	case err == nil && entry.Current(info):
		s.hits.Add(1)
		return entry, nil
	case err == nil:
		s.logger.DebugContext(ctx, "cached translation file is outdated", slog.String("file", file))
	case !errors.Is(err, cache.ErrNotFound):
		s.logger.WarnContext(ctx, "translation cache read failed",
			slog.String("file", file),
			slog.String("error", err.Error()),
		)
	}
	s.misses.Add(1)

	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()

	// Keyed by generation so callers arriving after an invalidation never
	// join a load that started before it.
	flight := key.String() + "#" + strconv.FormatUint(gen, 10)
	v, err, _ := s.group.Do(flight, func() (any, error) {
		// Stat before reading: a write that slips in between leaves an entry
		// whose stamp is already outdated, never one that looks current.
		info, err := os.Stat(file)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		s.reads.Add(1)

		src := string(data)
		e := cache.Entry{
			Root:    phparray.Parse(src),
			Source:  src,
			ModTime: info.ModTime(),
			Size:    info.Size(),
		}
		s.logger.DebugContext(ctx, "translation file parsed",
			slog.String("locale", locale),
			slog.String("file", file),
			slog.Int("keys", e.Root.Len()),
		)

		s.store(ctx, gen, key, e)
		return e, nil
	})
	if err != nil {
		return cache.Entry{}, fmt.Errorf("%w: %w", transkey.ErrNotFound, err)
	}
	return v.(cache.Entry), nil
}

// store writes e unless an invalidation happened since generation gen.
func (s *Store) store(ctx context.Context, gen uint64, key cache.Key, e cache.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		s.logger.DebugContext(ctx, "discarding load overtaken by invalidation", slog.String("file", key.File))
		return
	}
	if err := s.cache.Set(ctx, key, e); err != nil {
		s.logger.WarnContext(ctx, "translation cache write failed",
			slog.String("file", key.File),
			slog.String("error", err.Error()),
		)
	}
}

func validLocale(locale string) bool {
	return locale != "" && locale != "." && locale != ".." && !strings.ContainsAny(locale, `/\`)
}
