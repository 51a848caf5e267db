package internal

import "strconv"

// QueryDefault retrieves a typed query parameter with a default value.
// Returns defaultValue if the parameter is empty or cannot be parsed.
func QueryDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string, defaultValue T) T {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	v, ok := convertParam[T](raw)
	if !ok {
		return defaultValue
	}
	return v
}

// QueryMap collects bracketed query parameters: replace[name]=Ana&replace[count]=3
// yields {"name": "Ana", "count": "3"} for prefix "replace".
func QueryMap(c Context, prefix string) map[string]string {
	out := make(map[string]string)
	for key, values := range c.Request().URL.Query() {
		if len(values) == 0 || len(key) < len(prefix)+3 || key[:len(prefix)+1] != prefix+"[" || key[len(key)-1] != ']' {
			continue
		}
		out[key[len(prefix)+1:len(key)-1]] = values[0]
	}
	return out
}

func convertParam[T ~string | ~int | ~int64 | ~float64 | ~bool](raw string) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case string:
		return any(raw).(T), true
	case int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	case int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	case float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	case bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	}
	return zero, false
}
