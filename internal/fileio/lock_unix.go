//go:build unix

package fileio

import "golang.org/x/sys/unix"

// unixLocker advisory-locks a file descriptor with flock(2). Linux and the
// BSDs (including Darwin) share this path under the "unix" build tag.
type unixLocker struct {
	fd  int
	cur LockMode
}

func newLocker(fd int) locker {
	return &unixLocker{fd: fd, cur: NoLock}
}

func (l *unixLocker) lock(mode LockMode) error {
	if mode == l.cur {
		return nil
	}
	switch mode {
	case NoLock:
		return l.unlock()
	case SharedLock:
		if err := unix.Flock(l.fd, unix.LOCK_SH|unix.LOCK_NB); err != nil {
			return err
		}
	case ExclusiveLock:
		if err := unix.Flock(l.fd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
			return err
		}
	}
	l.cur = mode
	return nil
}

func (l *unixLocker) unlock() error {
	if l.cur == NoLock {
		return nil
	}
	err := unix.Flock(l.fd, unix.LOCK_UN)
	l.cur = NoLock
	return err
}
