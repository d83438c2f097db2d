package wad

import "errors"

// Package-specific error variables that can be used with errors.Is() for error handling.
var (
	// ErrNotAWadFile is returned when the first four bytes of a file are
	// neither "IWAD" nor "PWAD".
	ErrNotAWadFile = errors.New("wad: not a wad file, magic bytes not recognized")

	// ErrFileNotFound is returned when a path does not resolve. Wraps the
	// underlying os.ErrNotExist where applicable.
	ErrFileNotFound = errors.New("wad: file not found")

	// ErrPermissionDenied is returned when the OS denies read or write access.
	ErrPermissionDenied = errors.New("wad: permission denied")

	// ErrOutOfRange is returned when a numeric field falls outside the
	// permitted range, e.g. a directory offset that would overflow uint32.
	ErrOutOfRange = errors.New("wad: value out of range")

	// ErrIndexOutOfBounds is returned when a caller-supplied index is
	// negative or >= entry count for an operation that forbids append
	// semantics.
	ErrIndexOutOfBounds = errors.New("wad: index out of bounds")

	// ErrInvalidName is returned when a lump name is empty, longer than 8
	// characters, or contains a byte outside the allowed set.
	ErrInvalidName = errors.New("wad: invalid entry name")

	// ErrUnsupported is returned by containers that do not implement a
	// given mutation, such as DirectoryMap.
	ErrUnsupported = errors.New("wad: operation not supported by this container")

	// ErrEntryOutOfExtent is returned when an entry's offset+size exceeds
	// the actual size of the underlying file, detected on read.
	ErrEntryOutOfExtent = errors.New("wad: entry payload extends past end of file")

	// ErrMarkerNotFound is returned by Between when either marker name is
	// absent, or the end marker does not follow the start marker.
	ErrMarkerNotFound = errors.New("wad: marker range not found")

	// ErrEntryNotFound is returned by name-keyed payload reads when no
	// entry with the requested name exists.
	ErrEntryNotFound = errors.New("wad: no entry with that name")
)
