//go:build !unix

package fileio

// noopLocker is used on platforms without flock(2) semantics available
// through golang.org/x/sys/unix. Locking degrades to advisory-only at the
// TextFileDocumentInput level (IsChangeable's mtime check still applies).
type noopLocker struct{}

func newLocker(fd int) locker {
	return noopLocker{}
}

func (noopLocker) lock(mode LockMode) error { return nil }
func (noopLocker) unlock() error            { return nil }
