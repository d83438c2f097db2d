//go:build !linux && !darwin

package wad

// TryLockExclusive is a no-op on platforms without an advisory flock
// primitive wired up. It always succeeds, matching the "best-effort only"
// framing of the lock helper on the supported platforms.
func (c *FileContainer) TryLockExclusive() error { return nil }

// Unlock is a no-op on platforms without an advisory flock primitive
// wired up.
func (c *FileContainer) Unlock() error { return nil }
