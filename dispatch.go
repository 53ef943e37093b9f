// Dispatcher and read-side resolution.
//
// A read resolves its format in this order, stopping at the first step that
// applies:
//
//  1. an explicit filetype naming a canonical format; nothing is sniffed
//  2. the stream's content signature
//  3. the file name's extension, then the filetype as a bare extension
//
// The source is acquired once per call and shared by detection and the
// codec, so in-memory and network-backed streams are never reopened. It is
// rewound to offset 0 before the codec sees it and released on every exit
// path.
package scifile

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Config holds dispatcher options.
type Config struct {
	Logger *log.Logger // nil discards log output
	Zstd   bool        // also sniff through zstd framing
}

var discard = log.New(io.Discard)

// Dispatcher routes requests to the codec for a stream's format. It holds
// no per-call state and is safe for concurrent use on distinct streams.
type Dispatcher struct {
	registry *Registry
	sniffer  *Sniffer
	exts     Extensions
	logger   *log.Logger
}

// New returns a dispatcher over reg. A nil registry marks every format
// unavailable, which still allows Detect.
func New(reg *Registry, config Config) *Dispatcher {
	if config.Logger == nil {
		config.Logger = discard
	}
	if reg == nil {
		reg, _ = NewRegistry(nil)
	}
	return &Dispatcher{
		registry: reg,
		sniffer:  &Sniffer{Zstd: config.Zstd, Logger: config.Logger},
		exts:     KnownExtensions,
		logger:   config.Logger,
	}
}

// Registry returns the registry the dispatcher was built with.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Read returns every data/header pair in target. filetype may be empty, a
// canonical format name or a file extension.
func (d *Dispatcher) Read(target any, filetype string, opts Options) ([]Pair, error) {
	return dispatch(d, target, filetype, "read", func(c Codec, r io.ReadSeeker) ([]Pair, error) {
		return c.Read(r, opts)
	})
}

// ReadHeader returns every header in target.
func (d *Dispatcher) ReadHeader(target any, filetype string, opts Options) ([]*Header, error) {
	return dispatch(d, target, filetype, "header", func(c Codec, r io.ReadSeeker) ([]*Header, error) {
		return c.Header(r, opts)
	})
}

// Detect returns the format of target from its content alone.
func (d *Dispatcher) Detect(target any) (Format, error) {
	src, err := acquire(target, false)
	if err != nil {
		return "", err
	}
	defer src.Close()
	return d.sniffer.Detect(src)
}

// DetectFiletype sniffs target with default settings.
func DetectFiletype(target any) (Format, error) {
	src, err := acquire(target, false)
	if err != nil {
		return "", err
	}
	defer src.Close()
	var s Sniffer
	return s.Detect(src)
}

func dispatch[T any](d *Dispatcher, target any, filetype, op string, call func(Codec, io.ReadSeeker) (T, error)) (T, error) {
	var zero T
	src, err := acquire(target, false)
	if err != nil {
		return zero, err
	}
	defer src.Close()

	f, err := d.resolve(src, filetype)
	if err != nil {
		return zero, err
	}
	c, err := d.registry.Lookup(f)
	if err != nil {
		d.logger.Warn("codec unavailable", "format", f, "op", op, "source", src.Name())
		return zero, err
	}
	if err := rewind(src); err != nil {
		return zero, err
	}
	d.logger.Debug("dispatch", "format", f, "op", op, "source", src.Name())
	return call(c, src)
}

// resolve picks the format for src following the documented order.
func (d *Dispatcher) resolve(src *Source, filetype string) (Format, error) {
	if f, ok := ParseFormat(filetype); ok {
		d.logger.Debug("explicit format", "format", f)
		return f, nil
	}

	f, err := d.sniffer.Detect(src)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, ErrUnrecognizedFormat) {
		return "", err
	}

	if f, ok := d.exts.Filename(src.Name()); ok {
		d.logger.Debug("extension fallback", "format", f, "source", src.Name())
		return f, nil
	}
	if f, ok := d.exts.Token(filetype); ok {
		d.logger.Debug("extension token fallback", "format", f, "token", filetype)
		return f, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnrecognizedFormat, describe(src.Name(), filetype))
}

func describe(name, filetype string) string {
	switch {
	case name != "" && filetype != "":
		return fmt.Sprintf("%q (filetype %q)", name, filetype)
	case name != "":
		return fmt.Sprintf("%q", name)
	case filetype != "":
		return fmt.Sprintf("filetype %q", filetype)
	}
	return "unnamed stream"
}
