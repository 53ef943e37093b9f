// Probe primitives for the sniffer.
//
// Every probe starts with an explicit seek to offset 0; nothing assumes the
// position left behind by a previous probe. Short streams produce short
// probes rather than errors, so an empty file simply fails every signature.
package scifile

import (
	"bytes"
	"errors"
	"io"
)

// maxLine bounds a single newline-delimited probe. The longest multi-line
// signature is 12 bytes, so a longer first line can never match.
const maxLine = 80

// rewind seeks r back to the start of the stream.
func rewind(r io.Seeker) error {
	_, err := r.Seek(0, io.SeekStart)
	return err
}

// prefix returns up to n bytes from the start of r.
func prefix(r io.ReadSeeker, n int) ([]byte, error) {
	if err := rewind(r); err != nil {
		return nil, err
	}
	return readUpTo(r, n)
}

// readUpTo reads at most n bytes, treating EOF as a short read.
func readUpTo(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	got, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return buf[:got], nil
}

// lines returns the first two newline-delimited lines of r concatenated,
// newlines included. Each line is read at most maxLine bytes.
func lines(r io.ReadSeeker) ([]byte, error) {
	if err := rewind(r); err != nil {
		return nil, err
	}
	var out []byte
	for range 2 {
		l, err := line(r)
		if err != nil {
			return nil, err
		}
		out = append(out, l...)
	}
	return out, nil
}

// line reads from the current position up to and including the next
// newline. Bytes are read one at a time so the stream position ends exactly
// after the newline, matching a buffered readline.
func line(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	var b [1]byte
	for buf.Len() < maxLine {
		n, err := r.Read(b[:])
		if n == 1 {
			buf.WriteByte(b[0])
			if b[0] == '\n' {
				break
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
