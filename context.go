package supply

// MatchContext returns the first non-nil candidate that s accepts as owner
// context. Candidates are scanned in order and the first match wins.
func MatchContext(s AnyContextual, contexts []any) (any, bool) {
	for _, candidate := range contexts {
		if candidate == nil {
			continue
		}
		if s.AcceptsContext(candidate) {
			return candidate, true
		}
	}
	return nil, false
}

// MergeContexts returns owner followed by contexts in a new slice.
func MergeContexts(owner any, contexts []any) []any {
	merged := make([]any, 0, len(contexts)+1)
	merged = append(merged, owner)
	return append(merged, contexts...)
}

// FindContext retrieves the first candidate of type C.
func FindContext[C any](contexts []any) (C, bool) {
	for _, candidate := range contexts {
		if candidate == nil {
			continue
		}
		if typed, ok := candidate.(C); ok {
			return typed, true
		}
	}
	var zero C
	return zero, false
}

// FindContextOrDefault retrieves the first candidate of type C or defaultVal.
func FindContextOrDefault[C any](contexts []any, defaultVal C) C {
	if v, ok := FindContext[C](contexts); ok {
		return v
	}
	return defaultVal
}
