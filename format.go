// Format tags.
//
// A Format is the canonical name of one of the supported file formats. The
// set is closed: the sniffer, the extension table and the registry all work
// from the same six values.
package scifile

import (
	"slices"
	"strings"
)

// Format identifies a supported file format.
type Format string

// Supported formats.
const (
	FITS Format = "fits" // Flexible Image Transport System
	JP2  Format = "jp2"  // JPEG2000
	ANA  Format = "ana"  // ANA (Rice compressed f0/fz)
	ASDF Format = "asdf" // Advanced Scientific Data Format
	HDF5 Format = "hdf5" // HDF5 and NetCDF4
	CDF  Format = "cdf"  // Common Data Format
)

var formats = []Format{FITS, JP2, ANA, ASDF, HDF5, CDF}

// Formats returns every supported format.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat returns the Format named by s. Only canonical tags are
// accepted; extensions such as "fts" are resolved by the Extensions table.
func ParseFormat(s string) (Format, bool) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	return f, f.Valid()
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	return slices.Contains(formats, f)
}

func (f Format) String() string {
	return string(f)
}
