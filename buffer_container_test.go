package wad

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestBufferContainerAddAndReadBack(t *testing.T) {
	c := NewBufferContainer()

	if _, err := c.AddData("LUMP01", []byte{0xAA, 0xBB, 0xCC}); err != nil {
		t.Fatalf("AddData failed: %s", err)
	}
	if c.EntryCount() != 1 {
		t.Fatalf("expected 1 entry, got %d", c.EntryCount())
	}

	data, err := c.ReadPayloadByIndex(0)
	if err != nil {
		t.Fatalf("ReadPayloadByIndex failed: %s", err)
	}
	if !bytes.Equal(data, []byte{0xAA, 0xBB, 0xCC}) {
		t.Errorf("unexpected payload: %v", data)
	}
}

func TestBufferContainerBytesMatchesFileContainerLayout(t *testing.T) {
	c := NewBufferContainer()
	if _, err := c.AddData("LUMP01", []byte{0xAA, 0xBB, 0xCC}); err != nil {
		t.Fatalf("AddData failed: %s", err)
	}

	raw, err := c.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %s", err)
	}

	want := []byte{'P', 'W', 'A', 'D', 1, 0, 0, 0, 15, 0, 0, 0, 0xAA, 0xBB, 0xCC}
	wantDirEntry := []byte{12, 0, 0, 0, 3, 0, 0, 0, 'L', 'U', 'M', 'P', '0', '1', 0, 0}
	want = append(want, wantDirEntry...)
	if !bytes.Equal(raw, want) {
		t.Fatalf("unexpected bytes:\n got  %v\n want %v", raw, want)
	}
}

func TestBufferContainerFlushToFileThenReopen(t *testing.T) {
	c := NewBufferContainer()
	if _, err := c.AddData("DATA", []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("AddData failed: %s", err)
	}

	path := filepath.Join(t.TempDir(), "out.wad")
	if err := c.FlushToFile(path); err != nil {
		t.Fatalf("FlushToFile failed: %s", err)
	}

	fc, err := OpenFileContainer(path)
	if err != nil {
		t.Fatalf("OpenFileContainer failed: %s", err)
	}
	defer fc.Close()

	if fc.EntryCount() != 1 || fc.Get(0).Name != "DATA" {
		t.Fatalf("unexpected reopened entry: %+v", fc.Get(0))
	}
}

func TestLoadBufferContainerRoundTrip(t *testing.T) {
	c := NewBufferContainer()
	for _, name := range []string{"A", "B", "C"} {
		if _, err := c.AddData(name, []byte{1, 2, 3, 4}); err != nil {
			t.Fatalf("AddData(%s) failed: %s", name, err)
		}
	}
	raw, err := c.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %s", err)
	}

	loaded, err := LoadBufferContainer(raw)
	if err != nil {
		t.Fatalf("LoadBufferContainer failed: %s", err)
	}
	if loaded.EntryCount() != 3 {
		t.Fatalf("expected 3 entries, got %d", loaded.EntryCount())
	}
	for i, name := range []string{"A", "B", "C"} {
		if loaded.Get(i).Name != name {
			t.Errorf("entry %d: expected %s, got %s", i, name, loaded.Get(i).Name)
		}
	}
}

func TestLoadBufferContainerRejectsBadMagic(t *testing.T) {
	_, err := LoadBufferContainer([]byte("XXXX\x00\x00\x00\x00\x0c\x00\x00\x00"))
	if err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestBufferContainerDeleteWithShift(t *testing.T) {
	c := NewBufferContainer()
	for _, name := range []string{"A", "B", "C"} {
		if _, err := c.AddData(name, []byte{1, 2, 3, 4}); err != nil {
			t.Fatalf("AddData(%s) failed: %s", name, err)
		}
	}

	if _, err := c.Delete(0); err != nil {
		t.Fatalf("Delete failed: %s", err)
	}
	if c.EntryCount() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.EntryCount())
	}
	if c.Get(0).Offset != 12 || c.Get(1).Offset != 16 {
		t.Fatalf("unexpected offsets after shift: %d, %d", c.Get(0).Offset, c.Get(1).Offset)
	}
	got, err := c.ReadPayloadByIndex(0)
	if err != nil {
		t.Fatalf("ReadPayloadByIndex failed: %s", err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("expected B's bytes to now occupy the freed slot, got %v", got)
	}
}

func TestBufferContainerOpenStreamIsSnapshot(t *testing.T) {
	c := NewBufferContainer()
	e, err := c.AddData("DATA", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("AddData failed: %s", err)
	}

	r, err := c.OpenStream(e)
	if err != nil {
		t.Fatalf("OpenStream failed: %s", err)
	}

	if err := c.Rename(0, "OTHER"); err != nil {
		t.Fatalf("Rename failed: %s", err)
	}

	buf := make([]byte, 3)
	if _, err := r.Read(buf); err != nil {
		t.Fatalf("Read failed: %s", err)
	}
	if !bytes.Equal(buf, []byte{1, 2, 3}) {
		t.Errorf("snapshot stream should be unaffected by later mutation, got %v", buf)
	}
}

func TestBufferContainerWriteToSmallArchive(t *testing.T) {
	c := NewBufferContainer()
	// sanity check that WriteTo succeeds for a small, well-formed archive.
	if _, err := c.AddData("A", nil); err != nil {
		t.Fatalf("AddData failed: %s", err)
	}
	var buf bytes.Buffer
	if err := c.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %s", err)
	}
	if buf.Len() == 0 {
		t.Error("expected non-empty output")
	}
}

func TestBufferContainerFlushToFileCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.wad")
	if _, err := os.Stat(path); err == nil {
		t.Fatal("test setup error: file should not pre-exist")
	}
	c := NewBufferContainer()
	if err := c.FlushToFile(path); err != nil {
		t.Fatalf("FlushToFile failed: %s", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to be created: %s", err)
	}
}
