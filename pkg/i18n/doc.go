// Package i18n holds the Laravel message helpers used to preview
// translation values.
//
// Replace fills :placeholder tokens, including the :Name and :NAME case
// variants:
//
//	i18n.Replace("Hello :name", map[string]string{"name": "Ada"}) // "Hello Ada"
//
// Choose implements trans_choice selection. Explicit conditions ({n},
// [a,b], [a,*]) win; otherwise the plural rule of the locale picks the
// segment:
//
//	i18n.Choose("{0} No apples|[1,19] Some apples|[20,*] Many apples", 25, "en") // "Many apples"
//	i18n.Choose("jabłko|jabłka|jabłek", 5, "pl")                                // "jabłek"
//
// MatchLocale negotiates an Accept-Language header against the locale
// directories that exist on disk, using golang.org/x/text/language.
package i18n
