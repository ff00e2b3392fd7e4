package domain

// Sub-document collections are ordered newest-first: insertion prepends,
// identity is a generated id independent of position.

type entry interface {
	entryID() string
}

// insertFront prepends an entry, keeping the most recent entry at index 0
func insertFront[T any](entries []T, e T) []T {
	out := make([]T, 0, len(entries)+1)
	out = append(out, e)
	return append(out, entries...)
}

// findByID locates an entry by its stable identifier
func findByID[T entry](entries []T, id string) (T, bool) {
	for _, e := range entries {
		if e.entryID() == id {
			return e, true
		}
	}
	var zero T
	return zero, false
}

// removeByID removes the entry with the given identifier. The second return
// reports whether anything was removed, so callers can surface not-found
// instead of silently keeping the collection unchanged.
func removeByID[T entry](entries []T, id string) ([]T, bool) {
	return removeFirst(entries, func(e T) bool { return e.entryID() == id })
}

// removeFirst removes the first entry matching the predicate
func removeFirst[T any](entries []T, match func(T) bool) ([]T, bool) {
	for i, e := range entries {
		if match(e) {
			out := make([]T, 0, len(entries)-1)
			out = append(out, entries[:i]...)
			return append(out, entries[i+1:]...), true
		}
	}
	return entries, false
}
