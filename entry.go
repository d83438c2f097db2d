package wad

import "encoding/binary"

// entrySize is the fixed on-disk size of one directory record.
const entrySize = 16

// EntryRecord is an immutable directory entry: the byte offset and size of
// a payload within the content region, plus its logical (decoded) name.
// EntryRecords are value types; callers may hold copies across mutations,
// but such copies may go stale (their Offset/index may no longer reflect
// the container's current state).
type EntryRecord struct {
	Offset uint32
	Size   uint32
	Name   string
}

// IsMarker reports whether this entry is a zero-size marker, used to bracket
// runs of related lumps (F_START/F_END, P1_START/P1_END, map-name markers).
func (e EntryRecord) IsMarker() bool {
	return e.Size == 0
}

// nameBytes returns the validated, encoded 8-byte on-disk name form.
func (e EntryRecord) nameBytes() ([nameSize]byte, error) {
	canon, err := validateName(e.Name)
	if err != nil {
		return [nameSize]byte{}, err
	}
	return encodeName(canon), nil
}

// marshalEntry encodes one 16-byte directory record.
func marshalEntry(e EntryRecord) ([]byte, error) {
	nb, err := e.nameBytes()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, entrySize)
	binary.LittleEndian.PutUint32(buf[0:4], e.Offset)
	binary.LittleEndian.PutUint32(buf[4:8], e.Size)
	copy(buf[8:16], nb[:])
	return buf, nil
}

// unmarshalEntry decodes one 16-byte directory record. ok is false when the
// record has zero size and an all-zero name (whatever its offset), which
// load-time filtering silently drops.
func unmarshalEntry(data []byte) (rec EntryRecord, ok bool, err error) {
	if len(data) < entrySize {
		return EntryRecord{}, false, ErrEntryOutOfExtent
	}
	offset := binary.LittleEndian.Uint32(data[0:4])
	size := binary.LittleEndian.Uint32(data[4:8])
	var raw [nameSize]byte
	copy(raw[:], data[8:16])

	if size == 0 && isAllZero(raw) {
		return EntryRecord{}, false, nil
	}

	return EntryRecord{
		Offset: offset,
		Size:   size,
		Name:   decodeName(raw),
	}, true, nil
}
