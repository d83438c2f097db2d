package wad

// This file implements the name-search and enumeration semantics shared by
// all three container realizations. Each realization holds its own
// []EntryRecord directory and delegates here rather than duplicating the
// scan logic.
//
// All name comparisons are case-sensitive exact match of the query against
// the stored name; neither side is canonicalized at search time. Names
// written through this package are uppercased by validateName, while names
// decoded from disk keep the bytes the archive holds.

func findFirstFrom(entries []EntryRecord, name string, start int) (int, EntryRecord, bool) {
	if start < 0 {
		start = 0
	}
	for i := start; i < len(entries); i++ {
		if entries[i].Name == name {
			return i, entries[i], true
		}
	}
	return 0, EntryRecord{}, false
}

func findNth(entries []EntryRecord, name string, n int) (int, EntryRecord, bool) {
	if n < 0 {
		return 0, EntryRecord{}, false
	}
	seen := 0
	for i, e := range entries {
		if e.Name == name {
			if seen == n {
				return i, e, true
			}
			seen++
		}
	}
	return 0, EntryRecord{}, false
}

func findLast(entries []EntryRecord, name string) (int, EntryRecord, bool) {
	found := false
	var idx int
	var rec EntryRecord
	for i, e := range entries {
		if e.Name == name {
			idx, rec, found = i, e, true
		}
	}
	return idx, rec, found
}

func indicesOf(entries []EntryRecord, name string) []int {
	var out []int
	for i, e := range entries {
		if e.Name == name {
			out = append(out, i)
		}
	}
	return out
}

func lastIndexOf(entries []EntryRecord, name string) int {
	idx, _, ok := findLast(entries, name)
	if !ok {
		return -1
	}
	return idx
}

func mapEntries(entries []EntryRecord, start, maxLen int) ([]EntryRecord, error) {
	if start < 0 {
		return nil, ErrIndexOutOfBounds
	}
	if start >= len(entries) {
		return []EntryRecord{}, nil
	}
	end := start + maxLen
	if maxLen < 0 || end > len(entries) {
		end = len(entries)
	}
	out := make([]EntryRecord, end-start)
	copy(out, entries[start:end])
	return out, nil
}

// between implements Container.Between: entries strictly after the first
// startMarker and before the next endMarker that follows it.
func between(entries []EntryRecord, startMarker, endMarker string) ([]EntryRecord, error) {
	startIdx, _, ok := findFirstFrom(entries, startMarker, 0)
	if !ok {
		return nil, ErrMarkerNotFound
	}
	endIdx, _, ok := findFirstFrom(entries, endMarker, startIdx+1)
	if !ok {
		return nil, ErrMarkerNotFound
	}
	out := make([]EntryRecord, endIdx-startIdx-1)
	copy(out, entries[startIdx+1:endIdx])
	return out, nil
}

// cloneEntries returns a defensive copy of entries, so callers holding the
// returned slice can't mutate the container's live directory.
func cloneEntries(entries []EntryRecord) []EntryRecord {
	out := make([]EntryRecord, len(entries))
	copy(out, entries)
	return out
}
