// Codec registry.
//
// The registry maps every Format to an Entry. An entry either carries a codec
// or records why the codec is missing (typically an optional dependency that
// was not linked in). Both states are explicit so that "format known but not
// usable" never looks like "format unknown". A Registry is built once and
// never modified.
package scifile

import (
	"fmt"
	"io"
)

// Options carries codec specific keyword options through the dispatcher
// untouched.
type Options map[string]any

// Codec reads and writes one file format. Read and Header receive a stream
// positioned at offset 0.
type Codec interface {
	Read(r io.ReadSeeker, opts Options) ([]Pair, error)
	Header(r io.ReadSeeker, opts Options) ([]*Header, error)
	Write(w io.Writer, data any, hdr *Header, opts Options) error
}

// Entry is the registry slot for one format.
type Entry struct {
	codec  Codec
	reason string
}

// Available returns an entry backed by c.
func Available(c Codec) Entry {
	return Entry{codec: c}
}

// Unavailable returns an entry for a format whose codec is missing. reason
// names the missing dependency and is included in lookup errors.
func Unavailable(reason string) Entry {
	if reason == "" {
		reason = "no codec registered"
	}
	return Entry{reason: reason}
}

// Usable reports whether the entry carries a codec.
func (e Entry) Usable() bool {
	return e.codec != nil
}

// Registry is an immutable Format to Entry mapping covering every Format.
type Registry struct {
	entries map[Format]Entry
}

// NewRegistry builds a registry from entries. Formats without an entry are
// marked unavailable. Unknown formats and Available(nil) are rejected.
func NewRegistry(entries map[Format]Entry) (*Registry, error) {
	r := &Registry{entries: make(map[Format]Entry, len(formats))}
	for f, e := range entries {
		if !f.Valid() {
			return nil, fmt.Errorf("registry: unknown format %q", f)
		}
		if e.codec == nil && e.reason == "" {
			return nil, fmt.Errorf("registry: nil codec for %s", f)
		}
		r.entries[f] = e
	}
	for _, f := range formats {
		if _, ok := r.entries[f]; !ok {
			r.entries[f] = Unavailable("")
		}
	}
	return r, nil
}

// Lookup returns the codec for f. A format with no codec yields
// ErrHandlerUnavailable. Passing a Format outside the supported set is a
// programming error and panics.
func (r *Registry) Lookup(f Format) (Codec, error) {
	e, ok := r.entries[f]
	if !ok {
		panic(fmt.Sprintf("scifile: registry has no entry for %q", f))
	}
	if e.codec == nil {
		return nil, fmt.Errorf("%w: the %s codec is not available (%s); check that its dependency is installed",
			ErrHandlerUnavailable, f, e.reason)
	}
	return e.codec, nil
}

// Available returns the formats that have a codec, in canonical order.
func (r *Registry) Available() []Format {
	var out []Format
	for _, f := range formats {
		if r.entries[f].Usable() {
			out = append(out, f)
		}
	}
	return out
}
