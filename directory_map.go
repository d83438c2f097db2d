package wad

import (
	"io"
	"log"
)

// DirectoryMap is a read-only container built from a stream: it parses and
// caches the directory but never retains the stream, so payload reads are
// left to the caller (who is expected to reopen their own source using the
// returned entries' Offset/Size). All mutations return ErrUnsupported.
//
// Built from sequential, forward-only consumption of a metadata stream into
// an in-memory structure, with payload access deferred to a separate,
// independently-opened reader.
type DirectoryMap struct {
	magic           Magic
	directoryOffset uint32
	entries         []EntryRecord
}

// DirectoryMapOption configures NewDirectoryMap.
type DirectoryMapOption func(*dmapConfig) error

type dmapConfig struct {
	maxEntries uint32
}

// WithMaxEntries rejects streams whose header claims more than n entries,
// before the directory bytes are allocated and read. Useful when r comes
// from an untrusted source and a corrupt entry_count could otherwise drive
// a very large allocation.
func WithMaxEntries(n uint32) DirectoryMapOption {
	return func(c *dmapConfig) error {
		c.maxEntries = n
		return nil
	}
}

// NewDirectoryMap builds a DirectoryMap from r. If r also implements
// io.Seeker, the content region is skipped with Seek; otherwise it is read
// and discarded with io.CopyN, since only sequential reads are required of
// the source.
func NewDirectoryMap(r io.Reader, opts ...DirectoryMapOption) (*DirectoryMap, error) {
	var cfg dmapConfig
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	log.Printf("wad: directory map: read header %d bytes", headerSize)
	hdr := make([]byte, headerSize)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, translateOSErr(err)
	}
	var h Header
	if err := h.UnmarshalBinary(hdr); err != nil {
		return nil, err
	}
	if !h.Magic.Valid() {
		return nil, ErrNotAWadFile
	}

	if cfg.maxEntries != 0 && h.EntryCount > cfg.maxEntries {
		return nil, ErrOutOfRange
	}

	toSkip := int64(h.DirectoryOffset) - headerSize
	if toSkip < 0 {
		return nil, ErrOutOfRange
	}
	if seeker, ok := r.(io.Seeker); ok {
		if _, err := seeker.Seek(int64(h.DirectoryOffset), io.SeekStart); err != nil {
			return nil, translateOSErr(err)
		}
	} else if toSkip > 0 {
		if _, err := io.CopyN(io.Discard, r, toSkip); err != nil {
			return nil, translateOSErr(err)
		}
	}

	log.Printf("wad: directory map: read directory, entry_count=%d directory_offset=%d", h.EntryCount, h.DirectoryOffset)
	dir := make([]byte, entrySize*int(h.EntryCount))
	if len(dir) > 0 {
		if _, err := io.ReadFull(r, dir); err != nil {
			return nil, translateOSErr(err)
		}
	}

	entries := make([]EntryRecord, 0, h.EntryCount)
	for i := 0; i < int(h.EntryCount); i++ {
		rec, ok, err := unmarshalEntry(dir[i*entrySize : (i+1)*entrySize])
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		entries = append(entries, rec)
	}

	return &DirectoryMap{magic: h.Magic, directoryOffset: h.DirectoryOffset, entries: entries}, nil
}

func (m *DirectoryMap) Close() error { return nil }

func (m *DirectoryMap) EntryCount() int { return len(m.entries) }

func (m *DirectoryMap) Get(i int) EntryRecord { return m.entries[i] }

func (m *DirectoryMap) Entries() []EntryRecord { return cloneEntries(m.entries) }

func (m *DirectoryMap) FindFirst(name string) (int, EntryRecord, bool) {
	return findFirstFrom(m.entries, name, 0)
}

func (m *DirectoryMap) FindFirstFrom(name string, start int) (int, EntryRecord, bool) {
	return findFirstFrom(m.entries, name, start)
}

func (m *DirectoryMap) FindNth(name string, n int) (int, EntryRecord, bool) {
	return findNth(m.entries, name, n)
}

func (m *DirectoryMap) FindLast(name string) (int, EntryRecord, bool) {
	return findLast(m.entries, name)
}

func (m *DirectoryMap) IndicesOf(name string) []int { return indicesOf(m.entries, name) }

func (m *DirectoryMap) LastIndexOf(name string) int { return lastIndexOf(m.entries, name) }

func (m *DirectoryMap) Between(startMarker, endMarker string) ([]EntryRecord, error) {
	return between(m.entries, startMarker, endMarker)
}

func (m *DirectoryMap) MapEntries(start, maxLen int) ([]EntryRecord, error) {
	return mapEntries(m.entries, start, maxLen)
}

func (m *DirectoryMap) Validate() []error {
	return validateInvariants(m.entries, m.directoryOffset)
}

// ReadPayload always fails: DirectoryMap does not retain its source
// stream. Callers should reopen their own source using e.Offset/e.Size.
func (m *DirectoryMap) ReadPayload(e EntryRecord) ([]byte, error) { return nil, ErrUnsupported }

func (m *DirectoryMap) ReadPayloadByIndex(i int) ([]byte, error) { return nil, ErrUnsupported }

func (m *DirectoryMap) ReadPayloadByName(name string) ([]byte, error) { return nil, ErrUnsupported }

func (m *DirectoryMap) OpenStream(e EntryRecord) (io.Reader, error) { return nil, ErrUnsupported }

func (m *DirectoryMap) AddData(name string, data []byte) (EntryRecord, error) {
	return EntryRecord{}, ErrUnsupported
}

func (m *DirectoryMap) AddDataAt(index int, name string, data []byte) (EntryRecord, error) {
	return EntryRecord{}, ErrUnsupported
}

func (m *DirectoryMap) AddMarker(name string) (EntryRecord, error) {
	return EntryRecord{}, ErrUnsupported
}

func (m *DirectoryMap) AddMarkerAt(index int, name string) (EntryRecord, error) {
	return EntryRecord{}, ErrUnsupported
}

func (m *DirectoryMap) Rename(index int, newName string) error { return ErrUnsupported }

func (m *DirectoryMap) Replace(index int, newData []byte) error { return ErrUnsupported }

func (m *DirectoryMap) Remove(index int) (EntryRecord, error) { return EntryRecord{}, ErrUnsupported }

func (m *DirectoryMap) Delete(index int) (EntryRecord, error) { return EntryRecord{}, ErrUnsupported }

func (m *DirectoryMap) SetEntries(entries []EntryRecord) error { return ErrUnsupported }

func (m *DirectoryMap) Splice(start int, entries []EntryRecord) error { return ErrUnsupported }

var _ Container = (*DirectoryMap)(nil)
