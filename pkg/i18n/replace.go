package i18n

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Replace substitutes :name placeholders in line.
//
// Each replacement is offered in three spellings: :name as given, :Name with
// the first letter of the value upper-cased and :NAME with the value
// upper-cased. Longer placeholder names win over their prefixes, so
// :username is never read as :user followed by "name".
//
//	Replace("Welcome, :Name!", map[string]string{"name": "ada"}) // "Welcome, Ada!"
func Replace(line string, replace map[string]string) string {
	if len(replace) == 0 || !strings.Contains(line, ":") {
		return line
	}

	type pair struct{ old, new string }
	pairs := make([]pair, 0, len(replace)*3)
	for key, value := range replace {
		if key == "" {
			continue
		}
		pairs = append(pairs,
			pair{":" + upperFirst(key), upperFirst(value)},
			pair{":" + strings.ToUpper(key), strings.ToUpper(value)},
			pair{":" + key, value},
		)
	}

	// strings.Replacer prefers earlier arguments at the same position.
	slices.SortStableFunc(pairs, func(a, b pair) int {
		return cmp.Or(cmp.Compare(len(b.old), len(a.old)), cmp.Compare(a.old, b.old))
	})

	args := make([]string, 0, len(pairs)*2)
	seen := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		if seen[p.old] {
			continue
		}
		seen[p.old] = true
		args = append(args, p.old, p.new)
	}
	return strings.NewReplacer(args...).Replace(line)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
