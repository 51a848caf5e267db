package transkey

import "github.com/dmitrymomot/langkey/pkg/phparray"

// Resolve walks root along the dotted path and returns the leaf it reaches.
// It returns ErrNotFound when the path is empty, a segment is missing, a leaf
// is reached before the path is consumed, or the path ends on a mapping.
// Sub-mappings are never returned as values.
func Resolve(root *phparray.Node, path string) (string, error) {
	segments := Segments(path)
	if len(segments) == 0 {
		return "", ErrNotFound
	}

	cur := root
	for _, seg := range segments {
		next, ok := cur.Child(seg)
		if !ok {
			return "", ErrNotFound
		}
		cur = next
	}

	if !cur.IsLeaf() {
		return "", ErrNotFound
	}
	return cur.Value(), nil
}
