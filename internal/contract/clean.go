package contract

// Clean recursively removes structurally-empty values from a document in
// generic map form: nil, empty strings, empty lists, and empty maps are
// dropped after their children have been cleaned. Falsy-but-meaningful
// scalars (0, false, -1) are preserved.
//
// Clean is idempotent and never mutates its input.
func Clean(data map[string]any) map[string]any {
	cleaned := make(map[string]any, len(data))
	for key, value := range data {
		if v, keep := cleanValue(value); keep {
			cleaned[key] = v
		}
	}
	return cleaned
}

// cleanValue cleans a single value and reports whether it survives.
func cleanValue(value any) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case string:
		if v == "" {
			return nil, false
		}
		return v, true
	case map[string]any:
		cleaned := Clean(v)
		if len(cleaned) == 0 {
			return nil, false
		}
		return cleaned, true
	case []any:
		cleaned := make([]any, 0, len(v))
		for _, item := range v {
			if c, keep := cleanValue(item); keep {
				cleaned = append(cleaned, c)
			}
		}
		if len(cleaned) == 0 {
			return nil, false
		}
		return cleaned, true
	default:
		// Numbers and booleans are kept regardless of value.
		return value, true
	}
}
