package sanitize

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Log statuses. Stored lowercase.
const (
	StatusCompleted  = "completed"
	StatusInProgress = "in progress"
	StatusWishlist   = "wishlist"
	StatusNone       = "none"
)

var statuses = map[string]struct{}{
	StatusCompleted:  {},
	StatusInProgress: {},
	StatusWishlist:   {},
	StatusNone:       {},
}

// Status matches raw case-insensitively against the known statuses.
func Status(raw any) (string, bool) {
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if _, ok := statuses[s]; !ok {
		return "", false
	}
	return s, true
}

// RangePolicy decides what happens to ratings outside [MinRating, MaxRating].
type RangePolicy string

const (
	// RangeReject treats out-of-range ratings as invalid.
	RangeReject RangePolicy = "reject"
	// RangeClamp pulls out-of-range ratings to the nearest bound.
	RangeClamp RangePolicy = "clamp"
)

// ParseRangePolicy accepts "reject" or "clamp".
func ParseRangePolicy(s string) (RangePolicy, error) {
	switch p := RangePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case RangeReject, RangeClamp:
		return p, nil
	default:
		return "", fmt.Errorf("unknown rating range policy %q", s)
	}
}

// Rating applies the default policy (RangeReject).
func Rating(raw any) (float64, bool) {
	return RangeReject.Rating(raw)
}

// Rating coerces raw to a number in [MinRating, MaxRating].
func (p RangePolicy) Rating(raw any) (float64, bool) {
	f, ok := number(raw)
	if !ok {
		return 0, false
	}
	if f >= MinRating && f <= MaxRating {
		return f, true
	}
	if p != RangeClamp {
		return 0, false
	}
	return math.Max(MinRating, math.Min(MaxRating, f)), true
}

// Metadata accepts an object, or a string holding a JSON object. A nil
// result with ok=true never happens: absent and invalid both report false.
func Metadata(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		if !validDocument(v, 0) {
			return nil, false
		}
		return v, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, false
		}
		var doc map[string]any
		if err := json.Unmarshal([]byte(s), &doc); err != nil || doc == nil {
			return nil, false
		}
		return doc, true
	default:
		return nil, false
	}
}

const maxMetadataDepth = 16

func validDocument(v any, depth int) bool {
	if depth > maxMetadataDepth {
		return false
	}
	switch t := v.(type) {
	case nil, string, bool, json.Number:
		return true
	case float64:
		return !math.IsNaN(t) && !math.IsInf(t, 0)
	case int, int32, int64:
		return true
	case map[string]any:
		for _, child := range t {
			if !validDocument(child, depth+1) {
				return false
			}
		}
		return true
	case []any:
		for _, child := range t {
			if !validDocument(child, depth+1) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// NormalizeTypeName lowercases and trims s and drops a trailing plural "s"
// ("books" -> "book"). Words ending in "ss" keep their ending. The steps are
// repeated until nothing changes, so NormalizeTypeName(NormalizeTypeName(s))
// always equals NormalizeTypeName(s). A consequence is that lone "s" tokens
// at the end are all consumed: "a s  s" -> "a" and "s s" -> "". Only one
// letter is dropped per word, so "buses" becomes "buse".
func NormalizeTypeName(s string) string {
	s = strings.ToLower(s)
	for {
		next := strings.TrimSpace(s)
		if strings.HasSuffix(next, "s") && !strings.HasSuffix(next, "ss") {
			next = next[:len(next)-1]
		}
		if next == s {
			return s
		}
		s = next
	}
}

// TypeName normalizes a media type name; empty results are invalid.
func TypeName(raw any) (string, bool) {
	s, ok := stringLike(raw)
	if !ok {
		return "", false
	}
	s = NormalizeTypeName(truncate(s, MaxTitleLen))
	if s == "" {
		return "", false
	}
	return s, true
}
