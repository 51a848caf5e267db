package phparray_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/langkey/pkg/phparray"
)

func leafValue(t *testing.T, n *phparray.Node, keys ...string) string {
	t.Helper()

	cur := n
	for _, k := range keys {
		next, ok := cur.Child(k)
		require.Truef(t, ok, "missing key %q", k)
		cur = next
	}
	require.True(t, cur.IsLeaf(), "expected a leaf")
	return cur.Value()
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("single line file", func(t *testing.T) {
		t.Parallel()

		root := phparray.Parse(`<?php return ['failed' => 'Invalid credentials.'];`)
		require.Equal(t, "Invalid credentials.", leafValue(t, root, "failed"))
	})

	t.Run("multi line file with closing tag", func(t *testing.T) {
		t.Parallel()

		src := "<?php\n\nreturn [\n    'failed' => 'These credentials do not match our records.',\n    'throttle' => \"Too many login attempts.\",\n];\n?>\n"
		root := phparray.Parse(src)

		require.Equal(t, 2, root.Len())
		require.Equal(t, "These credentials do not match our records.", leafValue(t, root, "failed"))
		require.Equal(t, "Too many login attempts.", leafValue(t, root, "throttle"))
	})

	t.Run("all quote styles", func(t *testing.T) {
		t.Parallel()

		root := phparray.Parse("<?php return ['a' => 'one', \"b\" => \"two\", `c` => `three`, 'd' => \"four\"];")
		require.Equal(t, "one", leafValue(t, root, "a"))
		require.Equal(t, "two", leafValue(t, root, "b"))
		require.Equal(t, "three", leafValue(t, root, "c"))
		require.Equal(t, "four", leafValue(t, root, "d"))
	})

	t.Run("escaped characters are unescaped", func(t *testing.T) {
		t.Parallel()

		root := phparray.Parse(`<?php return ['it\'s' => 'You\'re "in"', "q" => "say \"hi\"", 'path' => 'C:\\dir'];`)
		require.Equal(t, `You're "in"`, leafValue(t, root, "it's"))
		require.Equal(t, `say "hi"`, leafValue(t, root, "q"))
		require.Equal(t, `C:\dir`, leafValue(t, root, "path"))
	})

	t.Run("nested array", func(t *testing.T) {
		t.Parallel()

		root := phparray.Parse(`<?php return ['exceptions' => ['graphql' => 'GraphQL error occurred']];`)

		exceptions, ok := root.Child("exceptions")
		require.True(t, ok)
		require.False(t, exceptions.IsLeaf())
		require.Equal(t, "GraphQL error occurred", leafValue(t, root, "exceptions", "graphql"))
	})

	t.Run("nested array wins over flat pair with the same key", func(t *testing.T) {
		t.Parallel()

		root := phparray.Parse(`<?php return ['x' => 'flat', 'x' => ['y' => 'deep']];`)

		x, ok := root.Child("x")
		require.True(t, ok)
		require.False(t, x.IsLeaf())
		require.Equal(t, "deep", leafValue(t, root, "x", "y"))
	})

	t.Run("last duplicate flat key wins", func(t *testing.T) {
		t.Parallel()

		root := phparray.Parse(`<?php return ['k' => 'first', 'k' => 'second'];`)
		require.Equal(t, "second", leafValue(t, root, "k"))
	})

	t.Run("values may be empty", func(t *testing.T) {
		t.Parallel()

		root := phparray.Parse(`<?php return ['empty' => ''];`)
		require.Equal(t, "", leafValue(t, root, "empty"))
	})

	t.Run("body ends at the first closing bracket", func(t *testing.T) {
		t.Parallel()

		root := phparray.Parse(`<?php return ['a' => ['b' => ['c' => 'deep'], 'd' => 'lost']];`)

		a, ok := root.Child("a")
		require.True(t, ok)
		_, ok = a.Child("d")
		require.False(t, ok, "d sits after the first ']' and is outside the captured body")
	})

	t.Run("garbage yields an empty mapping", func(t *testing.T) {
		t.Parallel()

		for _, src := range []string{"", "<?php", "not php at all", "<?php return 42;", "[[[["} {
			root := phparray.Parse(src)
			require.NotNil(t, root)
			require.False(t, root.IsLeaf())
			require.Equal(t, 0, root.Len(), "source %q", src)
		}
	})

	t.Run("comments around the array are ignored", func(t *testing.T) {
		t.Parallel()

		src := "<?php\n\n/*\n| Authentication Language Lines\n*/\n\nreturn [\n    // the failure message\n    'failed' => 'Nope.',\n];\n"
		root := phparray.Parse(src)
		require.Equal(t, "Nope.", leafValue(t, root, "failed"))
	})
}
