// Content sniffing.
//
// Signatures are checked in a fixed order and the first match wins. The
// order matters: the FITS card pattern is loose enough to overlap other
// prefixes, so ASDF is tested before it, and gzip unwrapping happens before
// FITS so compressed FITS files are still recognised.
package scifile

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"
	"slices"

	"github.com/charmbracelet/log"
)

// Probe sizes.
const (
	probeSize = 80 // one FITS header card
	hdf5Size  = 8
	cdfSize   = 4
)

var (
	asdfMarker = []byte("#ASDF")
	fitsCard   = regexp.MustCompile(`^[A-Z0-9_]{0,8} *=`)
	hdf5Magic  = []byte{0x89, 'H', 'D', 'F', '\r', '\n', 0x1a, '\n'}
	cdfMagics  = []string{"cdf30001", "cdf26002", "0000ffff"}

	// JPEG2000 signature box, plain and extended variants.
	jp2Signatures = [][]byte{
		{0x00, 0x00, 0x00, 0x0c, 'j', 'P', ' ', ' ', 0x0d, 0x0a, 0x87, 0x0a},
		{0x00, 0x00, 0x00, 0x0c, 'j', 'P', 0x1a, 0x1a, 0x0d, 0x0a, 0x87, 0x0a},
	}
)

// Probe holds the prefixes the sniffer compares against signatures.
type Probe struct {
	Lines   []byte // first two lines, newlines included
	First80 []byte // first 80 bytes as stored
	Card    []byte // first 80 bytes, decompressed if the stream is wrapped
	First8  []byte
	Magic   string // first 4 bytes as lowercase hex
	Wrapped string // "gzip", "zstd" or empty
}

// Sniffer detects formats from stream content.
type Sniffer struct {
	Zstd   bool // unwrap zstd frames as well as gzip
	Logger *log.Logger
}

// Probe collects the signature prefixes of r. r is left at offset 0.
func (s *Sniffer) Probe(r io.ReadSeeker) (*Probe, error) {
	p := &Probe{}
	var err error
	if p.Lines, err = lines(r); err != nil {
		return nil, err
	}
	if p.First80, err = prefix(r, probeSize); err != nil {
		return nil, err
	}
	if p.First8, err = prefix(r, hdf5Size); err != nil {
		return nil, err
	}
	magic, err := prefix(r, cdfSize)
	if err != nil {
		return nil, err
	}
	p.Magic = hex.EncodeToString(magic)

	p.Card = p.First80
	if err := s.unwrap(r, p); err != nil {
		return nil, err
	}

	if err := rewind(r); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Sniffer) unwrap(r io.ReadSeeker, p *Probe) error {
	var (
		inner []byte
		err   error
	)
	switch {
	case gzipped(p.First80):
		p.Wrapped = "gzip"
		inner, err = gunzipPrefix(r, probeSize)
	case s.Zstd && zstdFramed(p.First80):
		p.Wrapped = "zstd"
		inner, err = unzstdPrefix(r, probeSize)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	s.logger().Debug("unwrapped probe", "wrapper", p.Wrapped, "bytes", len(inner))
	p.Card = inner
	return nil
}

// Detect returns the format encoded by r or ErrUnrecognizedFormat. r is left
// at offset 0.
func (s *Sniffer) Detect(r io.ReadSeeker) (Format, error) {
	p, err := s.Probe(r)
	if err != nil {
		return "", err
	}
	f, ok := p.Match()
	if !ok {
		return "", fmt.Errorf("%w: no known signature", ErrUnrecognizedFormat)
	}
	s.logger().Debug("signature matched", "format", f, "wrapped", p.Wrapped)
	return f, nil
}

// Match applies the signatures to p in priority order.
func (p *Probe) Match() (Format, bool) {
	switch {
	case bytes.HasPrefix(p.First80, asdfMarker):
		return ASDF, true
	case fitsCard.Match(p.Card):
		return FITS, true
	case slices.ContainsFunc(jp2Signatures, func(sig []byte) bool { return bytes.Equal(p.Lines, sig) }):
		return JP2, true
	case bytes.Equal(p.First8, hdf5Magic):
		return HDF5, true
	case slices.Contains(cdfMagics, p.Magic):
		return CDF, true
	}
	return "", false
}

func (s *Sniffer) logger() *log.Logger {
	if s.Logger == nil {
		return discard
	}
	return s.Logger
}
