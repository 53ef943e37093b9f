// Package scifile detects which binary scientific data format a byte stream
// encodes and dispatches read, header and write requests to the codec that
// handles it.
//
// Detection is content first: the leading bytes of the stream are compared
// against a fixed, ordered list of signatures (ASDF, gzip-wrapped or plain
// FITS, JPEG2000, HDF5/NetCDF4, CDF). When no signature matches, the file
// extension is consulted. Codecs themselves live outside this package and are
// plugged in through a Registry that is fixed when the Dispatcher is built.
package scifile

import "errors"

// Sentinel errors for programmatic handling. Callers use errors.Is; the
// returned errors are wrapped with the format or token that caused them.
var (
	ErrUnrecognizedFormat = errors.New("unrecognized file format")
	ErrHandlerUnavailable = errors.New("codec not available")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrInvalidSource      = errors.New("source must be a path, *os.File, *Source or io.ReadSeeker")
	ErrReadOnly           = errors.New("source is not writable")
	ErrClosed             = errors.New("source is closed")
)
