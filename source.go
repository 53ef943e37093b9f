// Byte stream handles.
//
// A Source wraps whatever the caller passed as a file: a path, an *os.File,
// an existing Source or any io.ReadSeeker. Paths are opened by the package
// through an os.Root scoped to the directory that holds the file after
// symlinks are resolved, and are closed again when the Source is closed.
// Everything else is borrowed: Close rewinds it to offset 0 and leaves it
// open for its owner.
package scifile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
)

// Named is a stream that knows its file name, such as *os.File.
type Named interface {
	Name() string
}

// Source is a seekable byte stream with an optional name and writer.
type Source struct {
	name   string
	rs     io.ReadSeeker
	w      io.Writer
	file   *os.File  // non-nil when opened by this package
	root   *os.Root  // directory the file was opened from
	lock   *fileLock // held while the source is open
	closed bool
}

// NewSource wraps rs under the given name. The name is only used for
// extension fallback. If rs is also an io.Writer the source is writable.
func NewSource(name string, rs io.ReadSeeker) *Source {
	s := &Source{name: name, rs: rs}
	if w, ok := rs.(io.Writer); ok {
		s.w = w
	}
	return s
}

// Open returns a readable Source for target. Paths are opened and locked
// for shared access; other stream types are borrowed.
func Open(target any) (*Source, error) {
	return acquire(target, false)
}

// Name returns the file name associated with the source, or "".
func (s *Source) Name() string {
	return s.name
}

// Owned reports whether the source was opened by this package.
func (s *Source) Owned() bool {
	return s.file != nil
}

func (s *Source) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	return s.rs.Read(p)
}

func (s *Source) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	return s.rs.Seek(offset, whence)
}

func (s *Source) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if s.w == nil {
		return 0, ErrReadOnly
	}
	return s.w.Write(p)
}

// Close releases the source. Owned files are unlocked and closed; borrowed
// streams are rewound to offset 0.
func (s *Source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.file == nil {
		if s.rs != nil {
			return rewind(s.rs)
		}
		return nil
	}
	return errors.Join(s.lock.Unlock(), s.file.Close(), s.root.Close())
}

// targetName validates the shape of target and returns its file name
// without performing any I/O.
func targetName(target any) (string, error) {
	switch t := target.(type) {
	case string:
		if t == "" {
			return "", fmt.Errorf("%w: empty path", ErrInvalidSource)
		}
		return t, nil
	case *Source:
		if t == nil {
			break
		}
		return t.name, nil
	case *os.File:
		if t == nil {
			break
		}
		return t.Name(), nil
	case io.ReadSeeker:
		if isNil(t) {
			break
		}
		if n, ok := t.(Named); ok {
			return n.Name(), nil
		}
		return "", nil
	case io.Writer:
		if isNil(t) {
			break
		}
		if n, ok := t.(Named); ok {
			return n.Name(), nil
		}
		return "", nil
	}
	return "", fmt.Errorf("%w: got %T", ErrInvalidSource, target)
}

// isNil reports whether v holds a nil pointer, map, slice, chan or func.
func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// acquire turns target into a Source. write selects create/truncate and an
// exclusive lock for paths; for streams it requires a writer.
func acquire(target any, write bool) (*Source, error) {
	name, err := targetName(target)
	if err != nil {
		return nil, err
	}
	var s *Source
	switch t := target.(type) {
	case string:
		return openPath(t, write)
	case *Source:
		if t.closed {
			return nil, ErrClosed
		}
		s = &Source{name: t.name, rs: t, w: t}
		if t.w == nil {
			s.w = nil
		}
	case io.ReadSeeker:
		s = NewSource(name, t)
	case io.Writer:
		if !write {
			return nil, fmt.Errorf("%w: %T is not readable", ErrInvalidSource, target)
		}
		s = &Source{name: name, w: t}
	}
	if write && s.w == nil {
		return nil, fmt.Errorf("%w: %T", ErrReadOnly, target)
	}
	return s, nil
}

func openPath(path string, write bool) (*Source, error) {
	resolved := resolveLinks(path)
	root, err := os.OpenRoot(filepath.Dir(resolved))
	if err != nil {
		return nil, err
	}
	base := filepath.Base(resolved)

	var f *os.File
	mode := LockShared
	if write {
		f, err = root.OpenFile(base, os.O_RDWR|os.O_CREATE, 0644)
		mode = LockExclusive
	} else {
		f, err = root.Open(base)
	}
	if err != nil {
		root.Close()
		return nil, err
	}

	lock := &fileLock{f: f}
	if err := lock.Lock(mode); err != nil {
		f.Close()
		root.Close()
		return nil, err
	}
	// Truncate only once readers holding a shared lock have let go.
	if write {
		if err := f.Truncate(0); err != nil {
			lock.Unlock()
			f.Close()
			root.Close()
			return nil, err
		}
	}

	s := &Source{name: path, rs: f, file: f, root: root, lock: lock}
	if write {
		s.w = f
	}
	return s, nil
}

// resolveLinks follows symlinks in path so the root is opened on the
// directory that actually holds the file. A destination that does not exist
// yet has only its directory resolved.
func resolveLinks(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(path)); err == nil {
		return filepath.Join(dir, filepath.Base(path))
	}
	return path
}
