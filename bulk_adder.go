package wad

// BulkAdder is a scoped mutator over a FileContainer that batches payload
// appends and performs exactly one directory flush when its scope ends,
// instead of the one-flush-per-append cost of calling AddData directly.
// Payload data streams to disk immediately; only the directory rewrite is
// deferred to a single call at scope end.
//
// A BulkAdder holds its FileContainer under an exclusive guard: the
// container's other mutation methods return ErrUnsupported while a
// BulkAdder scope is open, and a second BulkAdder cannot be created over
// the same container until the first releases. The guard is not nestable.
type BulkAdder struct {
	c        *FileContainer
	released bool
}

// NewBulkAdder starts a bulk-add scope over c. Callers should prefer
// FileContainer.WithBulkAdder, which guarantees the release-path flush
// runs even if the supplied function panics; NewBulkAdder is available for
// callers that need to hold the scope open across more complex control
// flow and will call Close themselves (ideally via defer).
func NewBulkAdder(c *FileContainer) (*BulkAdder, error) {
	if c.bulkOwned {
		return nil, ErrUnsupported
	}
	c.bulkOwned = true
	return &BulkAdder{c: c}, nil
}

// WithBulkAdder runs fn with a fresh BulkAdder over c and guarantees a
// single directory flush on every exit path, including fn panicking or
// returning an error. If the flush itself fails, that failure becomes the
// error surfaced to the caller.
func (c *FileContainer) WithBulkAdder(fn func(*BulkAdder) error) (err error) {
	b, err := NewBulkAdder(c)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			b.Close()
			panic(r)
		}
	}()

	fnErr := fn(b)
	if flushErr := b.Close(); flushErr != nil {
		return flushErr
	}
	return fnErr
}

// AddData appends a new entry at the end of the directory, writing its
// payload immediately but deferring the directory flush.
func (b *BulkAdder) AddData(name string, data []byte) (EntryRecord, error) {
	return b.AddDataAt(len(b.c.entries), name, data)
}

// AddDataAt inserts a new entry at index, writing its payload immediately
// but deferring the directory flush.
func (b *BulkAdder) AddDataAt(index int, name string, data []byte) (EntryRecord, error) {
	if b.released {
		return EntryRecord{}, ErrUnsupported
	}
	if index < 0 || index > len(b.c.entries) {
		return EntryRecord{}, ErrIndexOutOfBounds
	}
	canon, err := validateName(name)
	if err != nil {
		return EntryRecord{}, err
	}
	entry, err := b.c.writePayload(canon, data)
	if err != nil {
		return EntryRecord{}, err
	}
	b.c.insertEntry(index, entry)
	return entry, nil
}

// AddMarker appends a zero-size marker entry at the end of the directory.
func (b *BulkAdder) AddMarker(name string) (EntryRecord, error) {
	return b.AddMarkerAt(len(b.c.entries), name)
}

// AddMarkerAt inserts a zero-size marker entry at index.
func (b *BulkAdder) AddMarkerAt(index int, name string) (EntryRecord, error) {
	if b.released {
		return EntryRecord{}, ErrUnsupported
	}
	if index < 0 || index > len(b.c.entries) {
		return EntryRecord{}, ErrIndexOutOfBounds
	}
	canon, err := validateName(name)
	if err != nil {
		return EntryRecord{}, err
	}
	entry := EntryRecord{Offset: b.c.directoryOffset, Size: 0, Name: canon}
	b.c.insertEntry(index, entry)
	return entry, nil
}

// Close flushes the directory exactly once and releases the container
// guard. It is idempotent: calling it again after a successful release is
// a no-op that returns nil.
func (b *BulkAdder) Close() error {
	if b.released {
		return nil
	}
	b.released = true
	b.c.bulkOwned = false
	return b.c.flushDirectory()
}
