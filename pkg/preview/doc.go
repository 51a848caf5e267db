// Package preview renders the hover card shown for a translation key: a
// markdown table with one row per locale, optionally converted to HTML with
// goldmark and sanitized with bluemonday.
//
//	md := preview.Markdown("auth.failed", []preview.Entry{
//		{Locale: "en", Value: "These credentials do not match our records."},
//		{Locale: "es", Value: "Estas credenciales no coinciden."},
//	})
//
//	html, err := preview.NewRenderer().HTML("auth.failed", entries)
package preview
