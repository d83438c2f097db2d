//go:build linux || darwin

package wad

import "golang.org/x/sys/unix"

// TryLockExclusive attempts to take an advisory, non-blocking exclusive
// lock on the container's underlying file descriptor. This is a caller
// convenience, not an enforced guarantee: nothing in FileContainer's
// mutation path depends on this lock being held. It exists purely so a
// cooperating caller can avoid two of its own processes opening the same
// file for writing at once.
func (c *FileContainer) TryLockExclusive() error {
	if c.f == nil {
		return ErrUnsupported
	}
	return unix.Flock(int(c.f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
}

// Unlock releases a lock previously taken with TryLockExclusive.
func (c *FileContainer) Unlock() error {
	if c.f == nil {
		return ErrUnsupported
	}
	return unix.Flock(int(c.f.Fd()), unix.LOCK_UN)
}
