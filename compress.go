// Transparent decompression for the sniffer.
//
// A gzip-wrapped FITS file must still be detected as FITS, so when the
// stream starts with the gzip member header the FITS probe is re-read from
// the decompressed stream. zstd wrapping is handled the same way when
// Config.Zstd is set. Only the probe is decompressed; codecs always receive
// the raw stream rewound to offset 0.
package scifile

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b, 0x08}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

func gzipped(p []byte) bool {
	return bytes.HasPrefix(p, gzipMagic)
}

func zstdFramed(p []byte) bool {
	return bytes.HasPrefix(p, zstdMagic)
}

// gunzipPrefix returns up to n decompressed bytes from the start of r. A
// corrupt member yields whatever decompressed cleanly before the error.
func gunzipPrefix(r io.ReadSeeker, n int) ([]byte, error) {
	if err := rewind(r); err != nil {
		return nil, err
	}
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, nil
	}
	defer zr.Close()
	return decompressed(zr, n), nil
}

// unzstdPrefix returns up to n decompressed bytes from the start of r.
func unzstdPrefix(r io.ReadSeeker, n int) ([]byte, error) {
	if err := rewind(r); err != nil {
		return nil, err
	}
	zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, nil
	}
	defer zr.Close()
	return decompressed(zr, n), nil
}

func decompressed(r io.Reader, n int) []byte {
	buf := make([]byte, n)
	got, _ := io.ReadFull(r, buf)
	return buf[:got]
}
