package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrymomot/langkey/pkg/phparray"
)

// Key identifies one parsed translation file of one locale.
// File is the absolute path of the file on disk.
type Key struct {
	Locale string
	File   string
}

// String returns the key in "locale:file" form.
func (k Key) String() string {
	return k.Locale + ":" + k.File
}

// within reports whether k points at file or at a file below it.
func (k Key) within(file string) bool {
	if k.File == file {
		return true
	}
	return strings.HasPrefix(k.File, strings.TrimSuffix(file, string(filepath.Separator))+string(filepath.Separator))
}

// Entry is the parsed form of a translation file together with the raw text
// it was parsed from. The raw text is kept for locating keys.
// ModTime and Size describe the file as it was when it was read.
type Entry struct {
	Root    *phparray.Node `json:"root"`
	Source  string         `json:"source"`
	ModTime time.Time      `json:"mod_time"`
	Size    int64          `json:"size"`
}

// Current reports whether e was read from the file that info describes.
// An entry written by a process that lost a race with a change on disk
// fails this check even after it lands in a shared cache.
func (e Entry) Current(info fs.FileInfo) bool {
	return e.Size == info.Size() && e.ModTime.Equal(info.ModTime())
}

// Cache stores parsed translation files.
// Entries never expire on their own: they stay until deleted or cleared.
type Cache interface {
	// Get retrieves an entry.
	// Returns ErrNotFound if the key does not exist.
	Get(ctx context.Context, key Key) (Entry, error)

	// Set stores an entry, replacing any previous one.
	Set(ctx context.Context, key Key, e Entry) error

	// Delete removes one entry.
	Delete(ctx context.Context, key Key) error

	// DeleteFile removes the entries of every locale for the given absolute
	// path. A directory path removes every entry below it.
	DeleteFile(ctx context.Context, file string) error

	// Has checks whether a key exists.
	Has(ctx context.Context, key Key) (bool, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}

func marshalEntry(e Entry) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func unmarshalEntry(data []byte) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, errors.Join(ErrUnmarshal, err)
	}
	if e.Root == nil {
		e.Root = phparray.Mapping(nil)
	}
	return e, nil
}
