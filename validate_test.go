package wad

import "testing"

func TestValidateInvariantsNoProblems(t *testing.T) {
	entries := []EntryRecord{
		{Offset: 12, Size: 4, Name: "A"},
		{Offset: 16, Size: 4, Name: "B"},
	}
	if errs := validateInvariants(entries, 20); len(errs) != 0 {
		t.Errorf("expected no violations, got %v", errs)
	}
}

func TestValidateInvariantsCatchesOffsetBelowContentStart(t *testing.T) {
	entries := []EntryRecord{{Offset: 4, Size: 4, Name: "A"}}
	errs := validateInvariants(entries, 20)
	if len(errs) == 0 {
		t.Fatal("expected a violation for an offset below the content region start")
	}
}

func TestValidateInvariantsCatchesEntryPastDirectory(t *testing.T) {
	entries := []EntryRecord{{Offset: 12, Size: 100, Name: "A"}}
	errs := validateInvariants(entries, 20)
	if len(errs) == 0 {
		t.Fatal("expected a violation for an entry extending past directory_offset")
	}
}

func TestValidateInvariantsCatchesBadDirectoryOffset(t *testing.T) {
	errs := validateInvariants(nil, 4)
	if len(errs) == 0 {
		t.Fatal("expected a violation for directory_offset below the header size")
	}
}

func TestValidateInvariantsCatchesInvalidName(t *testing.T) {
	entries := []EntryRecord{{Offset: 12, Size: 0, Name: "bad name"}}
	errs := validateInvariants(entries, 20)
	if len(errs) == 0 {
		t.Fatal("expected a violation for an invalid entry name")
	}
}

func TestValidateInvariantsAllowsZeroSizeMarkerAtAnyOffset(t *testing.T) {
	entries := []EntryRecord{{Offset: 999999, Size: 0, Name: "F_START"}}
	if errs := validateInvariants(entries, 20); len(errs) != 0 {
		t.Errorf("zero-size markers should not be offset/extent checked, got %v", errs)
	}
}
