// Package coerce converts untyped spreadsheet cell values into typed Go
// scalars. It is shared by both conversion directions.
//
// Spreadsheet cells arrive either as native Go types (bool, int, float64,
// when the workbook library preserved the cell type) or as raw strings. The
// string-sniffing order matters and must not change:
//
//  1. nil or empty-after-trim  -> nil
//  2. "true"/"false" (any case) -> bool
//  3. optional-sign digit run   -> int64
//  4. exactly one '.' and otherwise numeric -> float64
//  5. anything else             -> trimmed string
//
// Reversing steps 2 and 3 would change behavior for values like "01".
package coerce

import (
	"regexp"
	"strconv"
	"strings"
)

// integerRegex matches an optional sign followed by digits only.
var integerRegex = regexp.MustCompile(`^-?\d+$`)

// Coerce converts a raw cell value to the most specific scalar type.
// Native bool/int/float values bypass string sniffing entirely.
func Coerce(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case bool:
		return v
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		if v == float64(int64(v)) {
			return int64(v)
		}
		return v
	case string:
		return coerceString(v)
	default:
		return value
	}
}

func coerceString(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}

	if integerRegex.MatchString(s) {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		return s
	}

	if strings.Count(s, ".") == 1 {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	return s
}

// Bool parses a permissive boolean. Accepts true/yes/1/on in any case and
// native bool values. Anything unparseable is false.
func Bool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "1", "on":
			return true
		}
		return false
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}

// Int parses an integer cell. Returns -1 when the value is empty or not
// numeric; position fields use -1 to mean "unset".
func Int(value any) int {
	switch v := value.(type) {
	case nil:
		return -1
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return -1
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
		return -1
	default:
		return -1
	}
}

// Number parses a numeric cell. Returns nil when the value is empty or not
// numeric. Whole floats collapse to int64 so "5.0" round-trips as 5.
func Number(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return collapseWhole(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return collapseWhole(f)
		}
		return nil
	default:
		return nil
	}
}

func collapseWhole(f float64) any {
	if f == float64(int64(f)) {
		return int64(f)
	}
	return f
}

// String normalizes a cell to a trimmed string, returning "" for unset
// values. Callers treat "" as absent.
func String(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// SplitList splits a comma-joined cell into its elements, trimming each and
// dropping empty segments. Used for tags, examples, and valid-values columns.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// JoinList is the inverse of SplitList: comma-joins elements for a cell.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

// CleanCell trims surrounding whitespace and unwraps the Excel text-escape
// form ="..." some tools emit to keep leading zeros. Anything else passes
// through untouched; cell content is user data and must round-trip intact.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		return s[2 : len(s)-1]
	}

	return s
}
