// Advisory file locking for handles the package opens itself.
//
// A path handed to the dispatcher is held under a shared lock while it is
// sniffed and read, and under an exclusive lock while a codec writes it, so
// a concurrent writer in another process cannot change the bytes between
// detection and the codec reading them. Caller supplied handles are never
// locked; their owner decides how they are shared.
package scifile

import (
	"os"
	"sync"
)

// LockMode selects shared (read) or exclusive (write) locking.
type LockMode int

const (
	LockShared LockMode = iota
	LockExclusive
)

// fileLock guards an OS lock on f. mu is held across the syscall so release
// cannot race a concurrent Unlock on the same handle.
type fileLock struct {
	mu   sync.Mutex
	f    *os.File
	held bool
}

// Lock acquires the OS lock, blocking until it is granted.
func (l *fileLock) Lock(mode LockMode) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil || l.held {
		return nil
	}
	if err := l.lock(mode); err != nil {
		return err
	}
	l.held = true
	return nil
}

// Unlock releases the OS lock. It is a no-op when nothing is held.
func (l *fileLock) Unlock() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil || !l.held {
		return nil
	}
	l.held = false
	return l.unlock()
}
