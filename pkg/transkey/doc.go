// Package transkey resolves dotted translation keys against parsed translation trees.
//
// A Laravel key such as "shopify.exceptions.graphql" names a file ("shopify")
// and a path inside it ("exceptions.graphql"). [SplitKey] separates the two,
// [Resolve] walks a [github.com/dmitrymomot/langkey/pkg/phparray.Node] tree to
// the leaf string, and [Locate] guesses where the terminal key is declared in the
// raw file text:
//
//	kp, _ := transkey.SplitKey("auth.failed")
//	root := phparray.Parse(src)
//	value, err := transkey.Resolve(root, kp.Path)
//	pos, _ := transkey.Locate(src, kp.Path)
//
// [ExtractKey] recovers the key from editor text such as __('auth.failed').
//
// All lookups report a single failure, [ErrNotFound]; only [SplitKey] can also
// return [ErrInvalidKey] for keys that would escape the language directory.
package transkey
