package wad

import (
	"errors"
	"fmt"
	"os"
)

// translateOSErr maps an os-level failure onto the package's sentinel
// error taxonomy: ErrFileNotFound / ErrPermissionDenied / the wrapped
// original error.
func translateOSErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}
