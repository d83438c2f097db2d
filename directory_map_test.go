package wad

import (
	"bufio"
	"bytes"
	"errors"
	"testing"
)

func buildSampleWadBytes(t *testing.T) []byte {
	t.Helper()
	c := NewBufferContainer()
	if _, err := c.AddData("A", []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("AddData failed: %s", err)
	}
	if _, err := c.AddData("B", []byte{5, 6}); err != nil {
		t.Fatalf("AddData failed: %s", err)
	}
	raw, err := c.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %s", err)
	}
	return raw
}

func TestNewDirectoryMapFromSeekableReader(t *testing.T) {
	raw := buildSampleWadBytes(t)

	m, err := NewDirectoryMap(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("NewDirectoryMap failed: %s", err)
	}
	if m.EntryCount() != 2 {
		t.Fatalf("expected 2 entries, got %d", m.EntryCount())
	}
	if m.Get(0).Name != "A" || m.Get(1).Name != "B" {
		t.Fatalf("unexpected entries: %+v", m.Entries())
	}
}

// nonSeekingReader wraps a reader so only io.Reader is visible, exercising
// NewDirectoryMap's io.CopyN fallback path.
type nonSeekingReader struct {
	r *bytes.Reader
}

func (n *nonSeekingReader) Read(p []byte) (int, error) { return n.r.Read(p) }

func TestNewDirectoryMapFromNonSeekableReader(t *testing.T) {
	raw := buildSampleWadBytes(t)

	m, err := NewDirectoryMap(&nonSeekingReader{r: bytes.NewReader(raw)})
	if err != nil {
		t.Fatalf("NewDirectoryMap failed: %s", err)
	}
	if m.EntryCount() != 2 {
		t.Fatalf("expected 2 entries, got %d", m.EntryCount())
	}
	if m.Get(0).Name != "A" || m.Get(1).Name != "B" {
		t.Fatalf("unexpected entries: %+v", m.Entries())
	}
}

func TestNewDirectoryMapWorksThroughBufferedReader(t *testing.T) {
	raw := buildSampleWadBytes(t)
	m, err := NewDirectoryMap(bufio.NewReader(&nonSeekingReader{r: bytes.NewReader(raw)}))
	if err != nil {
		t.Fatalf("NewDirectoryMap failed: %s", err)
	}
	if m.EntryCount() != 2 {
		t.Fatalf("expected 2 entries, got %d", m.EntryCount())
	}
}

func TestNewDirectoryMapRejectsBadMagic(t *testing.T) {
	bad := []byte("XXXX\x00\x00\x00\x00\x0c\x00\x00\x00")
	if _, err := NewDirectoryMap(bytes.NewReader(bad)); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestNewDirectoryMapRejectsTruncatedHeader(t *testing.T) {
	if _, err := NewDirectoryMap(bytes.NewReader([]byte{1, 2, 3})); err == nil {
		t.Fatal("expected error for truncated header")
	}
}

func TestDirectoryMapMutationsAreUnsupported(t *testing.T) {
	raw := buildSampleWadBytes(t)
	m, err := NewDirectoryMap(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("NewDirectoryMap failed: %s", err)
	}

	checks := []error{
		func() error { _, err := m.AddData("X", nil); return err }(),
		func() error { _, err := m.AddMarker("X"); return err }(),
		m.Rename(0, "X"),
		m.Replace(0, nil),
		func() error { _, err := m.Remove(0); return err }(),
		func() error { _, err := m.Delete(0); return err }(),
		m.SetEntries(nil),
		m.Splice(0, nil),
		func() error { _, err := m.ReadPayload(m.Get(0)); return err }(),
		func() error { _, err := m.ReadPayloadByIndex(0); return err }(),
		func() error { _, err := m.ReadPayloadByName("A"); return err }(),
		func() error { _, err := m.OpenStream(m.Get(0)); return err }(),
	}
	for i, err := range checks {
		if !errors.Is(err, ErrUnsupported) {
			t.Errorf("check %d: expected ErrUnsupported, got %v", i, err)
		}
	}
}

// faultyReader is an io.Reader that fails once off reaches errAt, used to
// exercise NewDirectoryMap's I/O-failure branches without a real file.
type faultyReader struct {
	data   []byte
	off    int64
	errAt  int64
	errMsg error
}

func (f *faultyReader) Read(p []byte) (int, error) {
	if f.off >= f.errAt {
		return 0, f.errMsg
	}
	avail := f.errAt - f.off
	n := int64(len(p))
	if n > avail {
		n = avail
	}
	copy(p, f.data[f.off:f.off+n])
	f.off += n
	if n == 0 {
		return 0, f.errMsg
	}
	return int(n), nil
}

func TestNewDirectoryMapFailsOnHeaderReadError(t *testing.T) {
	raw := buildSampleWadBytes(t)
	r := &faultyReader{data: raw, errAt: 4, errMsg: errors.New("injected read failure")}
	if _, err := NewDirectoryMap(r); err == nil {
		t.Fatal("expected error from faulty header read")
	}
}

func TestNewDirectoryMapFailsOnDirectoryReadError(t *testing.T) {
	raw := buildSampleWadBytes(t)
	r := &faultyReader{data: raw, errAt: int64(len(raw)) - 4, errMsg: errors.New("injected read failure")}
	if _, err := NewDirectoryMap(r); err == nil {
		t.Fatal("expected error from faulty directory read")
	}
}

func TestNewDirectoryMapRejectsTooManyEntries(t *testing.T) {
	raw := buildSampleWadBytes(t)
	if _, err := NewDirectoryMap(bytes.NewReader(raw), WithMaxEntries(1)); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestDirectoryMapReadOnlySearchStillWorks(t *testing.T) {
	raw := buildSampleWadBytes(t)
	m, err := NewDirectoryMap(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("NewDirectoryMap failed: %s", err)
	}
	idx, _, ok := m.FindFirst("B")
	if !ok || idx != 1 {
		t.Fatalf("expected B at index 1, got idx=%d ok=%v", idx, ok)
	}
}
