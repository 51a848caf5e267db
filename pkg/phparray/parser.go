package phparray

import (
	"regexp"
	"strings"
)

// quoted matches a string literal in one of the three quote styles.
// Each style owns one capture group so the closing quote always matches the opening one.
const quoted = `(?:'((?:[^'\\]|\\.)*)'|"((?:[^"\\]|\\.)*)"|` +
	"`((?:[^`\\\\]|\\\\.)*)`)"

var (
	openTagRe    = regexp.MustCompile(`\A\s*<\?php\b`)
	closeTagRe   = regexp.MustCompile(`(?m)\?>[ \t]*$`)
	returnRe     = regexp.MustCompile(`(?m)^\s*return\b`)
	terminatorRe = regexp.MustCompile(`;\s*\z`)

	// 'key' => 'value'
	flatPairRe = regexp.MustCompile(`(?s)` + quoted + `\s*=>\s*` + quoted)

	// 'key' => [ ... ]
	// The body ends at the first ']', nested brackets are not counted.
	nestedPairRe = regexp.MustCompile(`(?s)` + quoted + `\s*=>\s*\[(.*?)\]`)
)

// Parse converts the source of a translation file into a mapping node.
// It never fails: unsupported or malformed input yields an empty mapping.
//
// Parse is a pattern matcher, not a PHP parser. Flat string pairs and
// key-to-array pairs are collected in two independent passes over the same
// text; when a key appears in both, the array wins. Array bodies end at the
// first closing bracket, so deeper nesting or a ']' inside a string value
// truncates the body.
func Parse(src string) (root *Node) {
	defer func() {
		if r := recover(); r != nil {
			root = Mapping(nil)
		}
	}()

	text := strip(src)
	root = Mapping(nil)

	for _, m := range flatPairRe.FindAllStringSubmatchIndex(text, -1) {
		key, ok := group(text, m, 1)
		if !ok {
			continue
		}
		value, ok := group(text, m, 4)
		if !ok {
			continue
		}
		root.Set(unescape(key), Leaf(unescape(value)))
	}

	for _, m := range nestedPairRe.FindAllStringSubmatchIndex(text, -1) {
		key, ok := group(text, m, 1)
		if !ok {
			continue
		}
		body := text[m[8]:m[9]]
		root.Set(unescape(key), Parse("["+body+"]"))
	}

	return root
}

// strip removes the PHP scaffolding around the array literal and one layer of
// enclosing brackets.
func strip(src string) string {
	text := openTagRe.ReplaceAllString(src, "")
	text = closeTagRe.ReplaceAllString(text, "")
	if loc := returnRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]] + text[loc[1]:]
	}
	text = terminatorRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	if len(text) >= 2 && text[0] == '[' && text[len(text)-1] == ']' {
		text = text[1 : len(text)-1]
	}
	return text
}

// group returns the content of whichever quote alternative matched, starting at
// capture group first. Unmatched alternatives report -1 offsets.
func group(text string, m []int, first int) (string, bool) {
	for g := first; g < first+3; g++ {
		if start, end := m[2*g], m[2*g+1]; start >= 0 {
			return text[start:end], true
		}
	}
	return "", false
}

// unescape drops each escaping backslash and keeps the character after it.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}
