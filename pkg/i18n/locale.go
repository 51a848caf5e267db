package i18n

import "golang.org/x/text/language"

// maxAcceptLanguageLength bounds the header size handed to the parser.
const maxAcceptLanguageLength = 4096

// MatchLocale picks the available locale that best fits an Accept-Language
// header. Locale names may use '_' or '-' separators ("pt_BR").
// It returns fallback when the header is empty, malformed or matches nothing.
//
//	MatchLocale("es-MX,es;q=0.9,en;q=0.5", []string{"en", "es"}, "en") // "es"
func MatchLocale(header string, available []string, fallback string) string {
	if header == "" || len(available) == 0 {
		return fallback
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	desired, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(desired) == 0 {
		return fallback
	}

	// The matcher treats its first tag as the default, so language.Und
	// leads and a No confidence result falls back.
	tags := []language.Tag{language.Und}
	names := []string{fallback}
	for _, name := range available {
		tag, err := language.Parse(name)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		names = append(names, name)
	}
	if len(tags) == 1 {
		return fallback
	}

	_, idx, conf := language.NewMatcher(tags).Match(desired...)
	if conf == language.No || idx <= 0 {
		return fallback
	}
	return names[idx]
}
