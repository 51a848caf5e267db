package i18n

import (
	"regexp"
	"strconv"
	"strings"
)

// conditionRe matches a leading {n}, [a,b] or {a,*} style condition.
var conditionRe = regexp.MustCompile(`(?s)\A[\{\[]([^\[\]\{\}]*)[\}\]](.*)\z`)

// Choose selects the segment of a '|' separated line that fits count.
//
// Segments with an explicit condition are tried first, in order:
//
//	{0} none|{1} one|[2,*] many
//
// Without a matching condition the conditions are stripped and the plural
// rule of locale picks the segment; a line with a single segment always
// yields that segment.
func Choose(line string, count int, locale string) (string, error) {
	if line == "" {
		return "", ErrEmptyLine
	}

	segments := strings.Split(line, "|")

	value, ok, err := extract(segments, count)
	if err != nil {
		return "", err
	}
	if ok {
		return strings.TrimSpace(value), nil
	}

	segments = stripConditions(segments)
	idx := PluralRuleForLocale(locale)(count)
	if len(segments) == 1 || idx >= len(segments) {
		return strings.TrimSpace(segments[0]), nil
	}
	return strings.TrimSpace(segments[idx]), nil
}

func extract(segments []string, count int) (string, bool, error) {
	for _, part := range segments {
		value, ok, err := extractFromSegment(strings.TrimSpace(part), count)
		if err != nil || ok {
			return value, ok, err
		}
	}
	return "", false, nil
}

func extractFromSegment(part string, count int) (string, bool, error) {
	m := conditionRe.FindStringSubmatch(part)
	if m == nil {
		return "", false, nil
	}
	condition, value := strings.TrimSpace(m[1]), m[2]

	from, to, isRange := strings.Cut(condition, ",")
	if !isRange {
		n, err := strconv.Atoi(condition)
		if err != nil {
			return "", false, nil
		}
		return value, n == count, nil
	}

	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "*" && to == "*" {
		return value, true, nil
	}

	lo, hi := count, count
	var err error
	if from != "*" {
		if lo, err = strconv.Atoi(from); err != nil {
			return "", false, ErrInvalidChoice
		}
	}
	if to != "*" {
		if hi, err = strconv.Atoi(to); err != nil {
			return "", false, ErrInvalidChoice
		}
	}
	return value, count >= lo && count <= hi, nil
}

func stripConditions(segments []string) []string {
	out := make([]string, len(segments))
	for i, part := range segments {
		part = strings.TrimSpace(part)
		if m := conditionRe.FindStringSubmatch(part); m != nil {
			part = m[2]
		}
		out[i] = part
	}
	return out
}
