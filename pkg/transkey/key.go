package transkey

import (
	"path"
	"strings"
)

// KeyPath is a translation key split into the file it lives in and the
// dotted path inside that file.
//
//	shopify.exceptions.graphql  =>  KeyPath{File: "shopify", Path: "exceptions.graphql"}
type KeyPath struct {
	File string
	Path string
}

// String joins the key back into its dotted form.
func (k KeyPath) String() string {
	if k.Path == "" {
		return k.File
	}
	return k.File + "." + k.Path
}

// Segments returns the in-file path split on dots.
// An empty path has no segments.
func (k KeyPath) Segments() []string {
	return Segments(k.Path)
}

// SplitKey splits key at its first dot.
// The file part may name a file in a subdirectory ("admin/users.title"), but
// it must stay inside the language directory: empty names, absolute paths,
// backslashes and ".." elements are rejected with ErrInvalidKey.
func SplitKey(key string) (KeyPath, error) {
	key = strings.TrimSpace(key)
	file, rest, _ := strings.Cut(key, ".")

	if file == "" || strings.ContainsRune(file, '\\') || strings.HasPrefix(file, "/") {
		return KeyPath{}, ErrInvalidKey
	}
	if path.Clean(file) != file {
		return KeyPath{}, ErrInvalidKey
	}
	for elem := range strings.SplitSeq(file, "/") {
		if elem == ".." {
			return KeyPath{}, ErrInvalidKey
		}
	}

	return KeyPath{File: file, Path: rest}, nil
}

// Segments splits a dotted path. An empty path yields no segments.
func Segments(p string) []string {
	if p == "" {
		return nil
	}
	return strings.Split(p, ".")
}

// lastSegment returns the terminal key name of a dotted path.
func lastSegment(p string) string {
	if i := strings.LastIndexByte(p, '.'); i >= 0 {
		return p[i+1:]
	}
	return p
}
