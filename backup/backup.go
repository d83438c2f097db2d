// Package backup provides an opt-in, compressed whole-archive snapshot
// helper for callers that want a rollback point before a risky mutation
// (shift-delete, bulk replace) against a wad.FileContainer. It is never
// invoked by the core container engine itself, which only promises
// best-effort crash safety; this package is a caller-invoked convenience,
// not a guarantee.
//
// A default codec is always available, and additional codecs register
// themselves from build-tag-guarded files.
package backup

import (
	"fmt"
	"io"
	"os"
)

// Codec compresses and decompresses a whole-archive snapshot.
type Codec interface {
	Name() string
	Compress(dst io.Writer, src io.Reader) error
	Decompress(dst io.Writer, src io.Reader) error
}

var registry = map[string]Codec{}

// Register adds a codec to the registry, keyed by its Name(). Intended to
// be called from init() in build-tag-guarded files.
func Register(c Codec) {
	registry[c.Name()] = c
}

// Lookup returns the registered codec with the given name, or nil.
func Lookup(name string) Codec {
	return registry[name]
}

func init() {
	Register(gzipCodec{})
}

// Snapshot compresses the file at srcPath into dstPath using the named
// codec (use "gzip" unless a different codec was registered, e.g. via the
// xz build tag).
func Snapshot(codec, srcPath, dstPath string) error {
	c := Lookup(codec)
	if c == nil {
		return fmt.Errorf("backup: unknown codec %q", codec)
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(dstPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer dst.Close()

	return c.Compress(dst, src)
}

// Restore decompresses the snapshot at srcPath into dstPath using the
// named codec, overwriting dstPath.
func Restore(codec, srcPath, dstPath string) error {
	c := Lookup(codec)
	if c == nil {
		return fmt.Errorf("backup: unknown codec %q", codec)
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(dstPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer dst.Close()

	return c.Decompress(dst, src)
}
