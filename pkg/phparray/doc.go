// Package phparray turns Laravel translation files into a tree of strings.
//
// Laravel translation files are a narrow subset of PHP: a single
// `<?php return [...];` statement whose array holds string values or nested
// arrays. [Parse] extracts that structure with two regular-expression passes
// instead of a PHP grammar:
//
//	root := phparray.Parse(`<?php return ['failed' => 'Invalid credentials.'];`)
//	leaf, _ := root.Child("failed")
//	fmt.Println(leaf.Value()) // Invalid credentials.
//
// # Node
//
// A [Node] is either a leaf (see [Leaf]) or a mapping (see [Mapping]). Nodes
// encode to JSON as a string or an object respectively, so trees can be stored
// in byte-oriented caches and restored without losing the distinction.
//
// # Limitations
//
// Parse matches patterns, it does not count brackets. The body of a nested array
// ends at the first ']' after its opening bracket, so arrays nested two levels
// deep or string values containing ']' can be cut short. Pairs found inside a
// nested array are also collected at the outer level by the flat pass. Comments,
// constants, concatenation and function calls are not understood. Parse never
// fails; text it cannot make sense of produces an empty mapping.
package phparray
