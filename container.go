package wad

import "io"

// Container is the capability contract satisfied by all three concrete WAD
// realizations: FileContainer, BufferContainer, and DirectoryMap. Operations
// a given realization cannot perform (principally, all mutations on
// DirectoryMap) return ErrUnsupported rather than silently no-opping.
type Container interface {
	// EntryCount returns the number of entries currently in the directory.
	EntryCount() int

	// Get returns the entry at index i. It panics if i is out of bounds,
	// matching the trait's documented "panics on OOB" contract - this is a
	// programmer error, not a caller-recoverable condition.
	Get(i int) EntryRecord

	// Entries returns a copy of the directory in order. Mutating the
	// returned slice does not affect the container.
	Entries() []EntryRecord

	// FindFirst returns the first entry named name, scanning from index 0.
	FindFirst(name string) (index int, entry EntryRecord, ok bool)

	// FindFirstFrom scans for name starting at start (bounds-checked).
	FindFirstFrom(name string, start int) (index int, entry EntryRecord, ok bool)

	// FindNth returns the n-th (zero-indexed) occurrence of name.
	FindNth(name string, n int) (index int, entry EntryRecord, ok bool)

	// FindLast returns the last occurrence of name. WAD load order means
	// the last entry with a given name conventionally wins, so this scans
	// forward from 0 retaining the last match rather than scanning backward.
	FindLast(name string) (index int, entry EntryRecord, ok bool)

	// IndicesOf returns every index at which name occurs, in order.
	IndicesOf(name string) []int

	// LastIndexOf returns the last index at which name occurs, or -1.
	LastIndexOf(name string) int

	// Between returns the entries strictly between the first occurrence of
	// startMarker and the next occurrence of endMarker after it (exclusive
	// of both markers). Returns ErrMarkerNotFound if either is absent or
	// endMarker does not follow startMarker.
	Between(startMarker, endMarker string) ([]EntryRecord, error)

	// MapEntries returns entries[start:min(start+maxLen, EntryCount())].
	// It never fails on overshoot of the upper bound, but fails if
	// start < 0.
	MapEntries(start, maxLen int) ([]EntryRecord, error)

	// ReadPayload reads the full payload bytes for the given entry.
	ReadPayload(e EntryRecord) ([]byte, error)
	// ReadPayloadByIndex reads the payload of the entry at index i.
	ReadPayloadByIndex(i int) ([]byte, error)
	// ReadPayloadByName reads the payload of the first entry named name.
	ReadPayloadByName(name string) ([]byte, error)
	// OpenStream returns a reader that delivers exactly e.Size bytes
	// starting at e.Offset. The reader is independent of the container's
	// further lifetime only to the extent the concrete realization
	// documents; see each type's doc comment.
	OpenStream(e EntryRecord) (io.Reader, error)

	// AddData appends a new entry at the end of the directory.
	AddData(name string, data []byte) (EntryRecord, error)
	// AddDataAt inserts a new entry at index, shifting later entries down.
	AddDataAt(index int, name string, data []byte) (EntryRecord, error)
	// AddMarker appends a zero-size marker entry at the end.
	AddMarker(name string) (EntryRecord, error)
	// AddMarkerAt inserts a zero-size marker entry at index.
	AddMarkerAt(index int, name string) (EntryRecord, error)
	// Rename changes the name of the entry at index.
	Rename(index int, newName string) error
	// Replace overwrites the payload of the entry at index with newData.
	Replace(index int, newData []byte) error
	// Remove detaches the entry at index from the directory only; its
	// payload bytes are orphaned in the content region.
	Remove(index int) (EntryRecord, error)
	// Delete removes the entry at index and reclaims its payload bytes by
	// sliding the trailing content region down.
	Delete(index int) (EntryRecord, error)
	// SetEntries replaces the entire directory with entries, in order.
	SetEntries(entries []EntryRecord) error
	// Splice overwrites entries starting at start, appending past the end
	// of the existing directory as needed.
	Splice(start int, entries []EntryRecord) error

	// Validate re-checks the container's structural invariants and
	// returns every violation found, rather than panicking.
	Validate() []error

	// Close releases any resources held by the container. Idempotent.
	Close() error
}
