package wad

import "fmt"

// validateInvariants re-checks directory and offset invariants against a
// directory snapshot and returns every violation found, instead of
// panicking. Shared by all three realizations' Validate() methods.
func validateInvariants(entries []EntryRecord, directoryOffset uint32) []error {
	var errs []error

	if directoryOffset < minDirectoryOffset {
		errs = append(errs, fmt.Errorf("directory_offset %d is less than %d", directoryOffset, minDirectoryOffset))
	}

	for i, e := range entries {
		if e.Size > 0 {
			if e.Offset < minDirectoryOffset {
				errs = append(errs, fmt.Errorf("entry %d (%s): offset %d below content region start", i, e.Name, e.Offset))
			}
			if uint64(e.Offset)+uint64(e.Size) > uint64(directoryOffset) {
				errs = append(errs, fmt.Errorf("entry %d (%s): offset+size %d exceeds directory_offset %d", i, e.Name, uint64(e.Offset)+uint64(e.Size), directoryOffset))
			}
		}
		if _, err := validateName(e.Name); err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", i, err))
		}
	}

	return errs
}
