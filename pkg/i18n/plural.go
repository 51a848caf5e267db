package i18n

import "strings"

// PluralRule maps a count to the index of the plural form to use.
// Forms are the '|' separated segments of a choice line, in order.
type PluralRule func(n int) int

// SingularPluralRule is used by languages without plural forms
// (Japanese, Chinese, Korean, Thai, Vietnamese, Turkish, ...).
var SingularPluralRule PluralRule = func(_ int) int {
	return 0
}

// EnglishPluralRule covers English, Germanic and most Romance languages.
// Forms: one (1), other.
var EnglishPluralRule PluralRule = func(n int) int {
	if n == 1 || n == -1 {
		return 0
	}
	return 1
}

// FrenchPluralRule treats zero as singular.
// Forms: one (0, 1), other.
var FrenchPluralRule PluralRule = func(n int) int {
	if n == 0 || n == 1 || n == -1 {
		return 0
	}
	return 1
}

// EastSlavicPluralRule implements Russian, Ukrainian, Belarusian and the
// Serbo-Croatian family.
// Forms: one (1, 21, 31, ...), few (2-4, 22-24, ...), many.
var EastSlavicPluralRule PluralRule = func(n int) int {
	n = abs(n)
	mod10, mod100 := n%10, n%100

	if mod10 == 1 && mod100 != 11 {
		return 0
	}
	if mod10 >= 2 && mod10 <= 4 && (mod100 < 10 || mod100 >= 20) {
		return 1
	}
	return 2
}

// CzechPluralRule implements Czech and Slovak.
// Forms: one (1), few (2-4), other.
var CzechPluralRule PluralRule = func(n int) int {
	n = abs(n)
	switch {
	case n == 1:
		return 0
	case n >= 2 && n <= 4:
		return 1
	default:
		return 2
	}
}

// PolishPluralRule implements Polish.
// Forms: one (1), few (2-4, 22-24, ...), many.
var PolishPluralRule PluralRule = func(n int) int {
	n = abs(n)
	if n == 1 {
		return 0
	}

	mod10, mod100 := n%10, n%100
	if mod10 >= 2 && mod10 <= 4 && (mod100 < 12 || mod100 > 14) {
		return 1
	}
	return 2
}

// ArabicPluralRule implements Arabic.
// Forms: zero, one, two, few, many, other.
var ArabicPluralRule PluralRule = func(n int) int {
	n = abs(n)
	switch mod100 := n % 100; {
	case n == 0:
		return 0
	case n == 1:
		return 1
	case n == 2:
		return 2
	case mod100 >= 3 && mod100 <= 10:
		return 3
	case mod100 >= 11 && mod100 <= 99:
		return 4
	default:
		return 5
	}
}

// PluralRuleForLocale returns the plural rule of a locale such as "en",
// "pt_BR" or "sr-Latn". Unknown languages get SingularPluralRule.
func PluralRuleForLocale(locale string) PluralRule {
	locale = strings.ToLower(strings.ReplaceAll(locale, "-", "_"))
	if locale == "pt_br" {
		return FrenchPluralRule
	}

	lang, _, _ := strings.Cut(locale, "_")
	switch lang {
	case "en", "de", "nl", "sv", "no", "nb", "nn", "da", "fi", "et", "es", "it",
		"pt", "ca", "el", "bg", "hu", "eu", "gl", "af", "sq", "he", "hi", "bn", "ur", "sw":
		return EnglishPluralRule
	case "fr", "hy", "ln", "ti", "wa":
		return FrenchPluralRule
	case "ru", "uk", "be", "sr", "hr", "bs":
		return EastSlavicPluralRule
	case "cs", "sk":
		return CzechPluralRule
	case "pl":
		return PolishPluralRule
	case "ar":
		return ArabicPluralRule
	default:
		return SingularPluralRule
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
