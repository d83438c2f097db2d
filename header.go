package wad

import (
	"encoding/binary"
	"fmt"
)

// headerSize is the fixed on-disk size of the WAD header.
const headerSize = 12

// minDirectoryOffset is the smallest legal directory_offset: the header
// itself occupies bytes [0,12).
const minDirectoryOffset = headerSize

// Magic identifies whether a WAD is an IWAD (full game data) or a PWAD
// (patch applied on top of an IWAD). The two variants are distinguished
// only by these four bytes; nothing else in the format depends on it.
type Magic [4]byte

// Recognized magic values.
var (
	MagicIWAD = Magic{'I', 'W', 'A', 'D'}
	MagicPWAD = Magic{'P', 'W', 'A', 'D'}
)

func (m Magic) String() string {
	switch m {
	case MagicIWAD:
		return "IWAD"
	case MagicPWAD:
		return "PWAD"
	default:
		return fmt.Sprintf("Magic(%q)", [4]byte(m))
	}
}

// Valid reports whether m is one of the two recognized magic values.
func (m Magic) Valid() bool {
	return m == MagicIWAD || m == MagicPWAD
}

// Header is the 12-byte value at the start of every WAD file:
// [magic:4][entry_count:4 LE][directory_offset:4 LE].
type Header struct {
	Magic           Magic
	EntryCount      uint32
	DirectoryOffset uint32
}

// emptyHeader returns the header for a freshly created, empty PWAD archive.
func emptyHeader() Header {
	return Header{Magic: MagicPWAD, EntryCount: 0, DirectoryOffset: minDirectoryOffset}
}

// MarshalBinary encodes the header to its 12-byte on-disk form.
func (h Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, headerSize)
	copy(buf[0:4], h.Magic[:])
	binary.LittleEndian.PutUint32(buf[4:8], h.EntryCount)
	binary.LittleEndian.PutUint32(buf[8:12], h.DirectoryOffset)
	return buf, nil
}

// UnmarshalBinary decodes a 12-byte header. It does not validate the magic;
// callers should check Magic.Valid() and translate a failure to
// ErrNotAWadFile.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize {
		return fmt.Errorf("wad: short header, got %d bytes want %d", len(data), headerSize)
	}
	copy(h.Magic[:], data[0:4])
	h.EntryCount = binary.LittleEndian.Uint32(data[4:8])
	h.DirectoryOffset = binary.LittleEndian.Uint32(data[8:12])
	return nil
}
