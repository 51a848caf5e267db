package watcher

import (
	"path/filepath"
	"slices"
	"strings"
)

// LangRoot trims a language path template to the directory that holds the
// locale directories: "resources/lang/{locale}" becomes "resources/lang".
func LangRoot(tmpl string) string {
	if i := strings.Index(tmpl, "{locale}"); i >= 0 {
		tmpl = tmpl[:i]
	}
	return strings.Trim(filepath.ToSlash(tmpl), "/")
}

// Match reports whether path matches the glob **/<langRoot>/**/*.php.
//
//	Match("lang", "app/lang/en/auth.php") // true
//	Match("lang", "app/src/auth.php")     // false
func Match(langRoot, path string) bool {
	if !strings.HasSuffix(path, ".php") {
		return false
	}
	_, ok := within(langRoot, path)
	return ok
}

// within reports whether path lies below a directory named by langRoot and
// returns the segments after it.
func within(langRoot, path string) ([]string, bool) {
	root := split(langRoot)
	segs := split(path)
	if len(root) == 0 || len(segs) <= len(root) {
		return nil, false
	}

	// Last occurrence wins, so lang/x/lang/en/a.php is rooted at the inner lang.
	for i := len(segs) - len(root) - 1; i >= 0; i-- {
		if slices.Equal(segs[i:i+len(root)], root) {
			return segs[i+len(root):], true
		}
	}
	return nil, false
}

func split(p string) []string {
	return strings.FieldsFunc(filepath.ToSlash(p), func(r rune) bool { return r == '/' })
}
