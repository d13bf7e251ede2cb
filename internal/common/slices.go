package common

// Last returns the last element of the slice and true, or the zero value and false if empty.
func Last[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[len(s)-1], true
}

// UniqueBy keeps the first element for every key returned by key, preserving order.
func UniqueBy[S ~[]E, E any, K comparable](s S, key func(E) K) S {
	seen := make(map[K]struct{}, len(s))
	out := make(S, 0, len(s))

	for _, e := range s {
		k := key(e)
		if _, ok := seen[k]; ok {
			continue
		}

		seen[k] = struct{}{}
		out = append(out, e)
	}

	return out
}
