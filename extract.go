package wad

// Extract creates a new, empty FileContainer at target (overwriting any
// existing file) and copies each of entries' payloads from source into it,
// in order, using a BulkAdder so the target's directory is written exactly
// once. Names and payload bytes are preserved; offsets are recomputed
// against the new file.
func Extract(target string, source Container, entries ...EntryRecord) (err error) {
	tc, err := CreateEmptyFileContainer(target)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := tc.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return tc.WithBulkAdder(func(b *BulkAdder) error {
		for _, e := range entries {
			if e.IsMarker() {
				if _, err := b.AddMarker(e.Name); err != nil {
					return err
				}
				continue
			}
			data, err := source.ReadPayload(e)
			if err != nil {
				return err
			}
			if _, err := b.AddData(e.Name, data); err != nil {
				return err
			}
		}
		return nil
	})
}
