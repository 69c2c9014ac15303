// Package sanitize turns raw decoded JSON values into validated field values.
//
// Every function accepts whatever encoding/json produced for a field (string,
// float64, json.Number, bool, nil, map[string]any, []any) and reports whether
// the value is usable. None of them panic.
package sanitize

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	MaxUsernameLen    = 30
	MinUsernameLen    = 3
	MaxDisplayNameLen = 50
	MaxTitleLen       = 100
	MaxNotesLen       = 5000

	MinRating = 0
	MaxRating = 100
)

// passwordSymbols is the set of characters that satisfy the symbol rule.
const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

var (
	lowerRe  = regexp.MustCompile(`[a-z]`)
	upperRe  = regexp.MustCompile(`[A-Z]`)
	digitRe  = regexp.MustCompile(`[0-9]`)
	symbolRe = regexp.MustCompile(`[` + regexp.QuoteMeta(passwordSymbols) + `]`)
)

// stringLike returns the textual form of strings and numbers.
func stringLike(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", false
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return stringLike(float64(v))
	case int:
		return strconv.Itoa(v), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return "", false
	}
}

// number coerces numbers and numeric strings to float64.
func number(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, !math.IsNaN(v)
	case float32:
		return float64(v), !math.IsNaN(float64(v))
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, !math.IsNaN(f)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// boundedText trims and truncates; empty results are invalid.
func boundedText(raw any, max int) (string, bool) {
	s, ok := stringLike(raw)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	// trim again in case truncation exposed trailing whitespace
	return strings.TrimSpace(truncate(s, max)), true
}

// Username trims and truncates a username. Usernames shorter than three
// characters or containing whitespace are rejected.
func Username(raw any) (string, bool) {
	s, ok := stringLike(raw)
	if !ok {
		return "", false
	}
	s = truncate(strings.TrimSpace(s), MaxUsernameLen)
	if len([]rune(s)) < MinUsernameLen {
		return "", false
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return "", false
	}
	return s, true
}

// DisplayName collapses internal whitespace runs into single spaces.
func DisplayName(raw any) (string, bool) {
	s, ok := stringLike(raw)
	if !ok {
		return "", false
	}
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "", false
	}
	return strings.TrimSpace(truncate(s, MaxDisplayNameLen)), true
}

// PasswordStrong reports whether raw is a string of at least eight characters
// with a lowercase letter, an uppercase letter, a digit and a symbol.
func PasswordStrong(raw any) bool {
	s, ok := raw.(string)
	if !ok || len([]rune(s)) < 8 {
		return false
	}
	return lowerRe.MatchString(s) &&
		upperRe.MatchString(s) &&
		digitRe.MatchString(s) &&
		symbolRe.MatchString(s)
}

func Title(raw any) (string, bool) {
	return boundedText(raw, MaxTitleLen)
}

func Creator(raw any) (string, bool) {
	return boundedText(raw, MaxTitleLen)
}

func Notes(raw any) (string, bool) {
	return boundedText(raw, MaxNotesLen)
}

// Year accepts integral numbers (or numeric strings) that fit in an int32.
func Year(raw any) (int, bool) {
	f, ok := number(raw)
	if !ok || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// ID accepts positive integral numbers or numeric strings.
func ID(raw any) (int64, bool) {
	f, ok := number(raw)
	if !ok || math.IsInf(f, 0) || f != math.Trunc(f) || f < 1 || f > 1<<53 {
		return 0, false
	}
	return int64(f), true
}
