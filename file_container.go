package wad

import (
	"io"
	"log"
	"math"
	"os"
)

// slideBufSize is the size of the fixed copy buffer used to slide the
// content region down during a shift-delete.
const slideBufSize = 64 * 1024

// Option configures OpenFileContainer and CreateEmptyFileContainer.
type Option func(*FileContainer) error

// WithValidation makes the constructor re-check directory invariants right
// after the container is ready, failing the call instead of letting
// corruption surface lazily on first use.
func WithValidation() Option {
	return func(c *FileContainer) error {
		if errs := c.Validate(); len(errs) > 0 {
			return errs[0]
		}
		return nil
	}
}

// WithMagic sets the magic value of a freshly created archive. Has no
// effect on OpenFileContainer, whose magic comes from the file itself.
func WithMagic(m Magic) Option {
	return func(c *FileContainer) error {
		c.magic = m
		return nil
	}
}

// FileContainer is a random-access, file-backed WAD container. It provides
// in-place mutation of the underlying file: new payloads are streamed in
// at the current directory offset (which then grows), deletions reclaim
// space by sliding trailing payload bytes down, and every mutation leaves
// the on-disk header and directory consistent with the in-memory state by
// the time it returns - except when performed through a BulkAdder, which
// defers the directory rewrite to scope exit.
//
// FileContainer is not safe for concurrent use. Two goroutines mutating the
// same instance may corrupt the file; external synchronization (or
// TryLockExclusive, see lock_unix.go) is the caller's responsibility.
type FileContainer struct {
	path            string
	f               *os.File
	magic           Magic
	directoryOffset uint32
	entries         []EntryRecord

	// bulkOwned is set while a BulkAdder holds this container, to prevent
	// a second BulkAdder scope (or a direct mutation) from running
	// concurrently with the deferred flush. The guard is not nestable.
	bulkOwned bool
}

// OpenFileContainer opens an existing WAD file for reading and writing,
// parsing its header and directory eagerly. Payloads are read lazily on
// request.
func OpenFileContainer(path string, opts ...Option) (*FileContainer, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, translateOSErr(err)
	}

	log.Printf("wad: opening %s", path)
	c := &FileContainer{path: path, f: f}
	if err := c.load(); err != nil {
		f.Close()
		return nil, err
	}
	magic := c.magic
	for _, opt := range opts {
		if err := opt(c); err != nil {
			f.Close()
			return nil, err
		}
	}
	// the magic of an existing archive always comes from its header
	c.magic = magic
	return c, nil
}

// CreateEmptyFileContainer creates a new, empty PWAD archive at path,
// overwriting any existing file.
func CreateEmptyFileContainer(path string, opts ...Option) (*FileContainer, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, translateOSErr(err)
	}

	log.Printf("wad: creating empty archive at %s", path)
	c := &FileContainer{
		path:            path,
		f:               f,
		magic:           MagicPWAD,
		directoryOffset: minDirectoryOffset,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			f.Close()
			return nil, err
		}
	}
	if err := c.flushDirectory(); err != nil {
		f.Close()
		return nil, err
	}
	return c, nil
}

func (c *FileContainer) load() error {
	log.Printf("wad: %s: read header %d bytes", c.path, headerSize)
	hdr := make([]byte, headerSize)
	if _, err := c.f.ReadAt(hdr, 0); err != nil {
		return translateOSErr(err)
	}
	var h Header
	if err := h.UnmarshalBinary(hdr); err != nil {
		return err
	}
	if !h.Magic.Valid() {
		return ErrNotAWadFile
	}

	log.Printf("wad: %s: read directory, entry_count=%d directory_offset=%d", c.path, h.EntryCount, h.DirectoryOffset)
	dir := make([]byte, entrySize*int(h.EntryCount))
	if len(dir) > 0 {
		if _, err := c.f.ReadAt(dir, int64(h.DirectoryOffset)); err != nil {
			return translateOSErr(err)
		}
	}

	entries := make([]EntryRecord, 0, h.EntryCount)
	for i := 0; i < int(h.EntryCount); i++ {
		rec, ok, err := unmarshalEntry(dir[i*entrySize : (i+1)*entrySize])
		if err != nil {
			return err
		}
		if !ok {
			// defensive drop of an all-zero trailing record
			continue
		}
		entries = append(entries, rec)
	}

	c.magic = h.Magic
	c.directoryOffset = h.DirectoryOffset
	c.entries = entries
	return nil
}

// Close releases the file handle. Idempotent.
func (c *FileContainer) Close() error {
	if c.f == nil {
		return nil
	}
	err := c.f.Close()
	c.f = nil
	return err
}

func (c *FileContainer) EntryCount() int { return len(c.entries) }

func (c *FileContainer) Get(i int) EntryRecord { return c.entries[i] }

func (c *FileContainer) Entries() []EntryRecord { return cloneEntries(c.entries) }

func (c *FileContainer) FindFirst(name string) (int, EntryRecord, bool) {
	return findFirstFrom(c.entries, name, 0)
}

func (c *FileContainer) FindFirstFrom(name string, start int) (int, EntryRecord, bool) {
	return findFirstFrom(c.entries, name, start)
}

func (c *FileContainer) FindNth(name string, n int) (int, EntryRecord, bool) {
	return findNth(c.entries, name, n)
}

func (c *FileContainer) FindLast(name string) (int, EntryRecord, bool) {
	return findLast(c.entries, name)
}

func (c *FileContainer) IndicesOf(name string) []int { return indicesOf(c.entries, name) }

func (c *FileContainer) LastIndexOf(name string) int { return lastIndexOf(c.entries, name) }

func (c *FileContainer) Between(startMarker, endMarker string) ([]EntryRecord, error) {
	return between(c.entries, startMarker, endMarker)
}

func (c *FileContainer) MapEntries(start, maxLen int) ([]EntryRecord, error) {
	return mapEntries(c.entries, start, maxLen)
}

func (c *FileContainer) Validate() []error {
	return validateInvariants(c.entries, c.directoryOffset)
}

// ReadPayload reads the full payload of e from the file.
func (c *FileContainer) ReadPayload(e EntryRecord) ([]byte, error) {
	fi, err := c.f.Stat()
	if err != nil {
		return nil, translateOSErr(err)
	}
	if uint64(e.Offset)+uint64(e.Size) > uint64(fi.Size()) {
		return nil, ErrEntryOutOfExtent
	}
	buf := make([]byte, e.Size)
	if e.Size == 0 {
		return buf, nil
	}
	if _, err := c.f.ReadAt(buf, int64(e.Offset)); err != nil {
		return nil, translateOSErr(err)
	}
	return buf, nil
}

func (c *FileContainer) ReadPayloadByIndex(i int) ([]byte, error) {
	if i < 0 || i >= len(c.entries) {
		return nil, ErrIndexOutOfBounds
	}
	return c.ReadPayload(c.entries[i])
}

func (c *FileContainer) ReadPayloadByName(name string) ([]byte, error) {
	_, e, ok := findFirstFrom(c.entries, name, 0)
	if !ok {
		return nil, ErrEntryNotFound
	}
	return c.ReadPayload(e)
}

// OpenStream returns a section reader over the file delivering exactly
// e.Size bytes starting at e.Offset. The returned reader is only valid
// while the container remains open and unmutated at e's offset; it pins no
// extra resources and need not be closed.
func (c *FileContainer) OpenStream(e EntryRecord) (io.Reader, error) {
	return io.NewSectionReader(c.f, int64(e.Offset), int64(e.Size)), nil
}

// writePayload writes data at the current directory offset, advances it,
// and returns the new entry without touching the in-memory directory or
// flushing. Shared by AddDataAt and BulkAdder.
func (c *FileContainer) writePayload(name string, data []byte) (EntryRecord, error) {
	newOffset := uint64(c.directoryOffset) + uint64(len(data))
	if newOffset > math.MaxUint32 {
		return EntryRecord{}, ErrOutOfRange
	}
	offset := c.directoryOffset
	if len(data) > 0 {
		if _, err := c.f.WriteAt(data, int64(offset)); err != nil {
			return EntryRecord{}, translateOSErr(err)
		}
	}
	c.directoryOffset = uint32(newOffset)
	return EntryRecord{Offset: offset, Size: uint32(len(data)), Name: name}, nil
}

func (c *FileContainer) insertEntry(index int, e EntryRecord) {
	c.entries = append(c.entries, EntryRecord{})
	copy(c.entries[index+1:], c.entries[index:])
	c.entries[index] = e
}

func (c *FileContainer) requireNotBulked() error {
	if c.bulkOwned {
		return ErrUnsupported
	}
	return nil
}

func (c *FileContainer) AddData(name string, data []byte) (EntryRecord, error) {
	return c.AddDataAt(len(c.entries), name, data)
}

func (c *FileContainer) AddDataAt(index int, name string, data []byte) (EntryRecord, error) {
	if err := c.requireNotBulked(); err != nil {
		return EntryRecord{}, err
	}
	if index < 0 || index > len(c.entries) {
		return EntryRecord{}, ErrIndexOutOfBounds
	}
	canon, err := validateName(name)
	if err != nil {
		return EntryRecord{}, err
	}
	entry, err := c.writePayload(canon, data)
	if err != nil {
		return EntryRecord{}, err
	}
	c.insertEntry(index, entry)
	if err := c.flushDirectory(); err != nil {
		return EntryRecord{}, err
	}
	return entry, nil
}

func (c *FileContainer) AddMarker(name string) (EntryRecord, error) {
	return c.AddMarkerAt(len(c.entries), name)
}

func (c *FileContainer) AddMarkerAt(index int, name string) (EntryRecord, error) {
	if err := c.requireNotBulked(); err != nil {
		return EntryRecord{}, err
	}
	if index < 0 || index > len(c.entries) {
		return EntryRecord{}, ErrIndexOutOfBounds
	}
	canon, err := validateName(name)
	if err != nil {
		return EntryRecord{}, err
	}
	entry := EntryRecord{Offset: c.directoryOffset, Size: 0, Name: canon}
	c.insertEntry(index, entry)
	if err := c.flushDirectory(); err != nil {
		return EntryRecord{}, err
	}
	return entry, nil
}

func (c *FileContainer) Rename(index int, newName string) error {
	// The in-place name write below targets the on-disk directory, which is
	// stale while a BulkAdder scope has the directory flush deferred.
	if err := c.requireNotBulked(); err != nil {
		return err
	}
	if index < 0 || index >= len(c.entries) {
		return ErrIndexOutOfBounds
	}
	canon, err := validateName(newName)
	if err != nil {
		return err
	}
	c.entries[index].Name = canon
	nb := encodeName(canon)
	pos := int64(c.directoryOffset) + int64(entrySize*index) + 8
	if _, err := c.f.WriteAt(nb[:], pos); err != nil {
		return translateOSErr(err)
	}
	return nil
}

func (c *FileContainer) Replace(index int, newData []byte) error {
	if err := c.requireNotBulked(); err != nil {
		return err
	}
	if index < 0 || index >= len(c.entries) {
		return ErrIndexOutOfBounds
	}
	old := c.entries[index]
	if uint32(len(newData)) == old.Size {
		if len(newData) > 0 {
			if _, err := c.f.WriteAt(newData, int64(old.Offset)); err != nil {
				return translateOSErr(err)
			}
		}
		return nil
	}

	name := old.Name
	if _, err := c.Delete(index); err != nil {
		return err
	}
	if _, err := c.AddDataAt(index, name, newData); err != nil {
		return err
	}
	return nil
}

// Remove detaches the entry at index from the directory only; the payload
// bytes remain in the content region, orphaned. Used when the cost of
// reclaiming the hole (a full slide) is unwanted.
func (c *FileContainer) Remove(index int) (EntryRecord, error) {
	if err := c.requireNotBulked(); err != nil {
		return EntryRecord{}, err
	}
	if index < 0 || index >= len(c.entries) {
		return EntryRecord{}, ErrIndexOutOfBounds
	}
	removed := c.entries[index]
	c.entries = append(c.entries[:index], c.entries[index+1:]...)
	if err := c.flushDirectory(); err != nil {
		return EntryRecord{}, err
	}
	return removed, nil
}

// Delete removes the entry at index and reclaims its payload bytes by
// sliding the trailing content region down by Size bytes, then rewriting
// the offsets of every entry that followed it.
func (c *FileContainer) Delete(index int) (EntryRecord, error) {
	if err := c.requireNotBulked(); err != nil {
		return EntryRecord{}, err
	}
	if index < 0 || index >= len(c.entries) {
		return EntryRecord{}, ErrIndexOutOfBounds
	}
	removed := c.entries[index]
	c.entries = append(c.entries[:index], c.entries[index+1:]...)

	if removed.Size > 0 {
		if err := c.slideDown(removed.Offset, removed.Size); err != nil {
			return EntryRecord{}, err
		}
		c.directoryOffset -= removed.Size
		for i := range c.entries {
			if c.entries[i].Offset > removed.Offset {
				c.entries[i].Offset -= removed.Size
			}
		}
	}

	if err := c.flushDirectory(); err != nil {
		return EntryRecord{}, err
	}
	return removed, nil
}

// slideDown copies the content region [holeOffset+holeSize, directoryOffset)
// down by holeSize bytes, using a fixed-size copy buffer. Source position
// advances monotonically ahead of the destination, so forward, in-order
// chunked copies are safe even though source and destination overlap.
func (c *FileContainer) slideDown(holeOffset, holeSize uint32) error {
	buf := make([]byte, slideBufSize)
	src := int64(holeOffset) + int64(holeSize)
	dst := int64(holeOffset)
	end := int64(c.directoryOffset)

	for src < end {
		n := len(buf)
		if remaining := end - src; int64(n) > remaining {
			n = int(remaining)
		}
		if _, err := c.f.ReadAt(buf[:n], src); err != nil {
			return translateOSErr(err)
		}
		if _, err := c.f.WriteAt(buf[:n], dst); err != nil {
			return translateOSErr(err)
		}
		src += int64(n)
		dst += int64(n)
	}
	return nil
}

func (c *FileContainer) SetEntries(entries []EntryRecord) error {
	if err := c.requireNotBulked(); err != nil {
		return err
	}
	canon := make([]EntryRecord, len(entries))
	for i, e := range entries {
		name, err := validateName(e.Name)
		if err != nil {
			return err
		}
		e.Name = name
		canon[i] = e
	}
	c.entries = canon
	return c.flushDirectory()
}

func (c *FileContainer) Splice(start int, entries []EntryRecord) error {
	if err := c.requireNotBulked(); err != nil {
		return err
	}
	if start < 0 {
		return ErrIndexOutOfBounds
	}
	for i, e := range entries {
		name, err := validateName(e.Name)
		if err != nil {
			return err
		}
		e.Name = name
		idx := start + i
		if idx < len(c.entries) {
			c.entries[idx] = e
		} else {
			c.entries = append(c.entries, e)
		}
	}
	return c.flushDirectory()
}

// flushDirectory writes the header and the full directory to disk, then
// truncates the file to remove trailing garbage from a prior, larger
// directory.
func (c *FileContainer) flushDirectory() error {
	total := uint64(c.directoryOffset) + uint64(entrySize)*uint64(len(c.entries))
	if total > math.MaxUint32 {
		return ErrOutOfRange
	}

	h := Header{Magic: c.magic, EntryCount: uint32(len(c.entries)), DirectoryOffset: c.directoryOffset}
	hb, err := h.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := c.f.WriteAt(hb, 0); err != nil {
		return translateOSErr(err)
	}

	dirBuf := make([]byte, 0, entrySize*len(c.entries))
	for _, e := range c.entries {
		eb, err := marshalEntry(e)
		if err != nil {
			return err
		}
		dirBuf = append(dirBuf, eb...)
	}
	if len(dirBuf) > 0 {
		if _, err := c.f.WriteAt(dirBuf, int64(c.directoryOffset)); err != nil {
			return translateOSErr(err)
		}
	}

	finalSize := int64(c.directoryOffset) + int64(len(dirBuf))
	if err := c.f.Truncate(finalSize); err != nil {
		return translateOSErr(err)
	}
	return nil
}

var _ Container = (*FileContainer)(nil)
