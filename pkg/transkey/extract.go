package transkey

import "regexp"

// callSiteRe matches the helper calls that reference a translation key:
// __('key'), trans('key'), trans_choice('key', n), @lang('key') and Lang::get('key').
var callSiteRe = regexp.MustCompile(
	`(?:\b__|\btrans_choice|\btrans|@lang|\bLang::(?:get|choice))\(\s*(?:'([^']+)'|"([^"]+)")`,
)

// ExtractKey pulls the translation key out of a call-site fragment such as
// __('auth.failed'). It reports false when the fragment holds no recognised call.
func ExtractKey(fragment string) (string, bool) {
	m := callSiteRe.FindStringSubmatch(fragment)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return m[1], true
	}
	return m[2], true
}
