package mcptools

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

// argError reports a missing or malformed tool argument.
type argError struct {
	name   string
	reason string
}

func (e *argError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.name, e.reason)
}

// args is the decoded argument object of a tool call.
type args map[string]any

func (a args) has(name string) bool {
	v, ok := a[name]
	return ok && v != nil
}

func (a args) requireString(name string) (string, error) {
	s, ok, err := a.optString(name)
	if err != nil {
		return "", err
	}
	if !ok || s == "" {
		return "", &argError{name, "is required"}
	}
	return s, nil
}

// optString returns the value and whether it was present.
func (a args) optString(name string) (string, bool, error) {
	if !a.has(name) {
		return "", false, nil
	}
	s, ok := a[name].(string)
	if !ok {
		return "", false, &argError{name, "must be a string"}
	}
	return s, true, nil
}

func (a args) stringOr(name, def string) (string, error) {
	s, ok, err := a.optString(name)
	if err != nil || !ok || s == "" {
		return def, err
	}
	return s, nil
}

func (a args) requireInt(name string) (int, error) {
	if !a.has(name) {
		return 0, &argError{name, "is required"}
	}
	return toInt(name, a[name])
}

func (a args) intOr(name string, def int) (int, error) {
	if !a.has(name) {
		return def, nil
	}
	return toInt(name, a[name])
}

func (a args) boolOr(name string, def bool) (bool, error) {
	if !a.has(name) {
		return def, nil
	}
	b, ok := a[name].(bool)
	if !ok {
		return false, &argError{name, "must be a boolean"}
	}
	return b, nil
}

// optBool returns nil when the argument is absent.
func (a args) optBool(name string) (*bool, error) {
	if !a.has(name) {
		return nil, nil
	}
	b, err := a.boolOr(name, false)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ints returns nil when the argument is absent.
func (a args) ints(name string) ([]int, error) {
	if !a.has(name) {
		return nil, nil
	}
	raw, ok := a[name].([]any)
	if !ok {
		return nil, &argError{name, "must be an array of integers"}
	}
	out := make([]int, 0, len(raw))
	for i, v := range raw {
		n, err := toInt(fmt.Sprintf("%s[%d]", name, i), v)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// strs returns nil when the argument is absent.
func (a args) strs(name string) ([]string, error) {
	if !a.has(name) {
		return nil, nil
	}
	raw, ok := a[name].([]any)
	if !ok {
		return nil, &argError{name, "must be an array of strings"}
	}
	out := make([]string, 0, len(raw))
	for i, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, &argError{fmt.Sprintf("%s[%d]", name, i), "must be a string"}
		}
		out = append(out, s)
	}
	return out, nil
}

// object returns nil when the argument is absent.
func (a args) object(name string) (map[string]any, error) {
	if !a.has(name) {
		return nil, nil
	}
	m, ok := a[name].(map[string]any)
	if !ok {
		return nil, &argError{name, "must be an object"}
	}
	return m, nil
}

func (a args) requireTime(name string) (time.Time, error) {
	s, err := a.requireString(name)
	if err != nil {
		return time.Time{}, err
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	// Zone-less inputs such as "2025-01-31 09:00" are taken as UTC.
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, &argError{name, "must be an RFC 3339 timestamp, e.g. 2025-01-31T09:00:00Z"}
	}
	return t, nil
}

func toInt(name string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, &argError{name, "must be an integer"}
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, &argError{name, "must be an integer"}
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, &argError{name, "must be an integer"}
		}
		return i, nil
	default:
		return 0, &argError{name, "must be an integer"}
	}
}
