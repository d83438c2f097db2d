package wad

import (
	"fmt"
	"strings"
)

// nameSize is the fixed width, in bytes, of an entry name on disk.
const nameSize = 8

// allowedNameBytes is the set of bytes permitted in a logical entry name,
// per the on-disk name rules: A-Z, 0-9, _, \, [, ], -.
var allowedNameBytes = [256]bool{}

func init() {
	for c := 'A'; c <= 'Z'; c++ {
		allowedNameBytes[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		allowedNameBytes[c] = true
	}
	for _, c := range []byte{'_', '\\', '[', ']', '-'} {
		allowedNameBytes[c] = true
	}
}

// validateName checks a logical name for the strict write-time rules: 1-8
// characters, each byte in the allowed set after uppercasing lowercase
// letters. It returns the canonicalized (uppercased) name on success.
func validateName(name string) (string, error) {
	if len(name) == 0 || len(name) > nameSize {
		return "", fmt.Errorf("%w: %q has length %d, want 1-%d", ErrInvalidName, name, len(name), nameSize)
	}

	upper := strings.ToUpper(name)
	var bad []byte
	for i := 0; i < len(upper); i++ {
		c := upper[i]
		if !allowedNameBytes[c] {
			bad = append(bad, c)
		}
	}
	if len(bad) > 0 {
		return "", fmt.Errorf("%w: %q contains disallowed byte(s) %q", ErrInvalidName, name, bad)
	}
	return upper, nil
}

// encodeName converts a validated logical name into its 8-byte, null-padded
// on-disk form. Callers must validate first; encodeName does not re-validate.
func encodeName(name string) [nameSize]byte {
	var out [nameSize]byte
	copy(out[:], name)
	return out
}

// decodeName performs the lenient read-time decode: bytes are taken
// verbatim up to the first 0x00 (or the end of the field), with no
// character-class enforcement. This tolerates archives produced by tools
// that don't strictly follow the write-time rules.
func decodeName(raw [nameSize]byte) string {
	n := nameSize
	for i, c := range raw {
		if c == 0 {
			n = i
			break
		}
	}
	return string(raw[:n])
}

// isAllZero reports whether every byte of raw is 0x00.
func isAllZero(raw [nameSize]byte) bool {
	for _, c := range raw {
		if c != 0 {
			return false
		}
	}
	return true
}
