package wad

import (
	"bytes"
	"io"
	"math"
	"os"
)

// BufferContainer holds an entire WAD archive in memory for fast mutation,
// exposing the same contract as FileContainer but doing no I/O until the
// caller flushes it out.
//
// The on-disk layout produced by Flush* is byte-identical in shape to
// FileContainer's, so flushing is a single concatenation, not a
// reconstruction.
type BufferContainer struct {
	magic   Magic
	content []byte // bytes that would occupy [12, directoryOffset) on disk
	entries []EntryRecord
}

// NewBufferContainer returns an empty, in-memory PWAD archive.
func NewBufferContainer() *BufferContainer {
	return &BufferContainer{magic: MagicPWAD}
}

// LoadBufferContainer parses a complete WAD image already held in memory.
func LoadBufferContainer(data []byte) (*BufferContainer, error) {
	if len(data) < headerSize {
		return nil, ErrNotAWadFile
	}
	var h Header
	if err := h.UnmarshalBinary(data[:headerSize]); err != nil {
		return nil, err
	}
	if !h.Magic.Valid() {
		return nil, ErrNotAWadFile
	}

	dirStart := int64(h.DirectoryOffset)
	dirLen := int64(entrySize) * int64(h.EntryCount)
	if dirStart < minDirectoryOffset || dirStart+dirLen > int64(len(data)) {
		return nil, ErrEntryOutOfExtent
	}

	entries := make([]EntryRecord, 0, h.EntryCount)
	for i := int64(0); i < int64(h.EntryCount); i++ {
		raw := data[dirStart+i*entrySize : dirStart+(i+1)*entrySize]
		rec, ok, err := unmarshalEntry(raw)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		entries = append(entries, rec)
	}

	content := make([]byte, dirStart-minDirectoryOffset)
	copy(content, data[minDirectoryOffset:dirStart])

	return &BufferContainer{magic: h.Magic, content: content, entries: entries}, nil
}

func (c *BufferContainer) directoryOffset() uint32 {
	return uint32(minDirectoryOffset + len(c.content))
}

func (c *BufferContainer) Close() error { return nil }

func (c *BufferContainer) EntryCount() int { return len(c.entries) }

func (c *BufferContainer) Get(i int) EntryRecord { return c.entries[i] }

func (c *BufferContainer) Entries() []EntryRecord { return cloneEntries(c.entries) }

func (c *BufferContainer) FindFirst(name string) (int, EntryRecord, bool) {
	return findFirstFrom(c.entries, name, 0)
}

func (c *BufferContainer) FindFirstFrom(name string, start int) (int, EntryRecord, bool) {
	return findFirstFrom(c.entries, name, start)
}

func (c *BufferContainer) FindNth(name string, n int) (int, EntryRecord, bool) {
	return findNth(c.entries, name, n)
}

func (c *BufferContainer) FindLast(name string) (int, EntryRecord, bool) {
	return findLast(c.entries, name)
}

func (c *BufferContainer) IndicesOf(name string) []int { return indicesOf(c.entries, name) }

func (c *BufferContainer) LastIndexOf(name string) int { return lastIndexOf(c.entries, name) }

func (c *BufferContainer) Between(startMarker, endMarker string) ([]EntryRecord, error) {
	return between(c.entries, startMarker, endMarker)
}

func (c *BufferContainer) MapEntries(start, maxLen int) ([]EntryRecord, error) {
	return mapEntries(c.entries, start, maxLen)
}

func (c *BufferContainer) Validate() []error {
	return validateInvariants(c.entries, c.directoryOffset())
}

func (c *BufferContainer) ReadPayload(e EntryRecord) ([]byte, error) {
	start := int64(e.Offset) - minDirectoryOffset
	end := start + int64(e.Size)
	if start < 0 || end > int64(len(c.content)) {
		return nil, ErrEntryOutOfExtent
	}
	out := make([]byte, e.Size)
	copy(out, c.content[start:end])
	return out, nil
}

func (c *BufferContainer) ReadPayloadByIndex(i int) ([]byte, error) {
	if i < 0 || i >= len(c.entries) {
		return nil, ErrIndexOutOfBounds
	}
	return c.ReadPayload(c.entries[i])
}

func (c *BufferContainer) ReadPayloadByName(name string) ([]byte, error) {
	_, e, ok := findFirstFrom(c.entries, name, 0)
	if !ok {
		return nil, ErrEntryNotFound
	}
	return c.ReadPayload(e)
}

// OpenStream returns a reader over the entry's bytes. The reader holds a
// snapshot slice of the content at call time and is unaffected by later
// mutations of the container (unlike FileContainer's streams, which are
// positioned views into shared storage).
func (c *BufferContainer) OpenStream(e EntryRecord) (io.Reader, error) {
	data, err := c.ReadPayload(e)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

func (c *BufferContainer) writePayload(name string, data []byte) (EntryRecord, error) {
	newOffset := uint64(c.directoryOffset()) + uint64(len(data))
	if newOffset > math.MaxUint32 {
		return EntryRecord{}, ErrOutOfRange
	}
	offset := c.directoryOffset()
	c.content = append(c.content, data...)
	return EntryRecord{Offset: offset, Size: uint32(len(data)), Name: name}, nil
}

func (c *BufferContainer) insertEntry(index int, e EntryRecord) {
	c.entries = append(c.entries, EntryRecord{})
	copy(c.entries[index+1:], c.entries[index:])
	c.entries[index] = e
}

func (c *BufferContainer) AddData(name string, data []byte) (EntryRecord, error) {
	return c.AddDataAt(len(c.entries), name, data)
}

func (c *BufferContainer) AddDataAt(index int, name string, data []byte) (EntryRecord, error) {
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
	return entry, nil
}

func (c *BufferContainer) AddMarker(name string) (EntryRecord, error) {
	return c.AddMarkerAt(len(c.entries), name)
}

func (c *BufferContainer) AddMarkerAt(index int, name string) (EntryRecord, error) {
	if index < 0 || index > len(c.entries) {
		return EntryRecord{}, ErrIndexOutOfBounds
	}
	canon, err := validateName(name)
	if err != nil {
		return EntryRecord{}, err
	}
	entry := EntryRecord{Offset: c.directoryOffset(), Size: 0, Name: canon}
	c.insertEntry(index, entry)
	return entry, nil
}

func (c *BufferContainer) Rename(index int, newName string) error {
	if index < 0 || index >= len(c.entries) {
		return ErrIndexOutOfBounds
	}
	canon, err := validateName(newName)
	if err != nil {
		return err
	}
	c.entries[index].Name = canon
	return nil
}

func (c *BufferContainer) Replace(index int, newData []byte) error {
	if index < 0 || index >= len(c.entries) {
		return ErrIndexOutOfBounds
	}
	old := c.entries[index]
	if uint32(len(newData)) == old.Size {
		start := int64(old.Offset) - minDirectoryOffset
		copy(c.content[start:start+int64(len(newData))], newData)
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

func (c *BufferContainer) Remove(index int) (EntryRecord, error) {
	if index < 0 || index >= len(c.entries) {
		return EntryRecord{}, ErrIndexOutOfBounds
	}
	removed := c.entries[index]
	c.entries = append(c.entries[:index], c.entries[index+1:]...)
	return removed, nil
}

func (c *BufferContainer) Delete(index int) (EntryRecord, error) {
	if index < 0 || index >= len(c.entries) {
		return EntryRecord{}, ErrIndexOutOfBounds
	}
	removed := c.entries[index]
	c.entries = append(c.entries[:index], c.entries[index+1:]...)

	if removed.Size > 0 {
		start := int64(removed.Offset) - minDirectoryOffset
		end := start + int64(removed.Size)
		c.content = append(c.content[:start], c.content[end:]...)
		for i := range c.entries {
			if c.entries[i].Offset > removed.Offset {
				c.entries[i].Offset -= removed.Size
			}
		}
	}

	return removed, nil
}

func (c *BufferContainer) SetEntries(entries []EntryRecord) error {
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
	return nil
}

func (c *BufferContainer) Splice(start int, entries []EntryRecord) error {
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
	return nil
}

// Bytes encodes the full archive (header + content + directory) and
// returns it as a single byte slice.
func (c *BufferContainer) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo streams the full archive to w: header, content region, directory.
func (c *BufferContainer) WriteTo(w io.Writer) error {
	total := uint64(c.directoryOffset()) + uint64(entrySize)*uint64(len(c.entries))
	if total > math.MaxUint32 {
		return ErrOutOfRange
	}

	h := Header{Magic: c.magic, EntryCount: uint32(len(c.entries)), DirectoryOffset: c.directoryOffset()}
	hb, err := h.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := w.Write(hb); err != nil {
		return err
	}
	if _, err := w.Write(c.content); err != nil {
		return err
	}
	for _, e := range c.entries {
		eb, err := marshalEntry(e)
		if err != nil {
			return err
		}
		if _, err := w.Write(eb); err != nil {
			return err
		}
	}
	return nil
}

// FlushToFile writes the full archive to path, creating or truncating it.
func (c *BufferContainer) FlushToFile(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return translateOSErr(err)
	}
	defer f.Close()
	return c.WriteTo(f)
}

var _ Container = (*BufferContainer)(nil)
