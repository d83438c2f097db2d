package backup

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestGzipSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "archive.wad")
	snapPath := filepath.Join(dir, "archive.wad.gz")
	restoredPath := filepath.Join(dir, "restored.wad")

	content := bytes.Repeat([]byte("PWAD payload bytes for a compressible snapshot\n"), 64)
	if err := os.WriteFile(srcPath, content, 0644); err != nil {
		t.Fatalf("WriteFile failed: %s", err)
	}

	if err := Snapshot("gzip", srcPath, snapPath); err != nil {
		t.Fatalf("Snapshot failed: %s", err)
	}

	snap, err := os.ReadFile(snapPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %s", err)
	}
	if len(snap) == 0 {
		t.Fatal("expected non-empty snapshot")
	}
	if bytes.Equal(snap, content) {
		t.Error("expected the snapshot to actually be compressed, not a byte-identical copy")
	}

	if err := Restore("gzip", snapPath, restoredPath); err != nil {
		t.Fatalf("Restore failed: %s", err)
	}

	restored, err := os.ReadFile(restoredPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %s", err)
	}
	if !bytes.Equal(restored, content) {
		t.Error("restored content does not match original")
	}
}

func TestSnapshotUnknownCodec(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "archive.wad")
	if err := os.WriteFile(srcPath, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %s", err)
	}

	err := Snapshot("does-not-exist", srcPath, filepath.Join(dir, "out"))
	if err == nil {
		t.Fatal("expected error for an unregistered codec name")
	}
}

func TestLookupReturnsNilForUnregistered(t *testing.T) {
	if Lookup("nope") != nil {
		t.Error("expected nil for an unregistered codec name")
	}
	if Lookup("gzip") == nil {
		t.Error("expected the default gzip codec to be registered")
	}
}
