// Stub codec shared by the dispatcher and write path tests.
//
// stubCodec stores one data/header pair as a JSON document. It records the
// stream position it was handed so tests can assert that the dispatcher
// rewinds before every codec call, and the number of reads the source had
// already served so tests can tell whether sniffing happened.
package scifile

import (
	"bytes"
	"io"
	"testing"

	json "github.com/goccy/go-json"
)

type stubDoc struct {
	Data   any     `json:"data"`
	Header *Header `json:"header"`
}

type stubCodec struct {
	format Format
	calls  []string
	pos    int64 // stream offset at the last Read/Header call
	reads  int   // reads the source served before the last call
}

func (c *stubCodec) observe(op string, r io.ReadSeeker) {
	c.calls = append(c.calls, op)
	c.pos, _ = r.Seek(0, io.SeekCurrent)
	if cr, ok := r.(*Source); ok {
		if counter, ok := cr.rs.(*countingReader); ok {
			c.reads = counter.reads
		}
	}
}

func (c *stubCodec) Read(r io.ReadSeeker, opts Options) ([]Pair, error) {
	c.observe("read", r)
	doc, err := c.decode(r)
	if err != nil {
		return nil, err
	}
	return []Pair{{Data: doc.Data, Header: doc.Header}}, nil
}

func (c *stubCodec) Header(r io.ReadSeeker, opts Options) ([]*Header, error) {
	c.observe("header", r)
	doc, err := c.decode(r)
	if err != nil {
		return nil, err
	}
	return []*Header{doc.Header}, nil
}

func (c *stubCodec) Write(w io.Writer, data any, hdr *Header, opts Options) error {
	c.calls = append(c.calls, "write")
	b, err := json.Marshal(stubDoc{Data: data, Header: hdr})
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// decode returns a placeholder document for anything that is not a stub
// JSON document, so dispatch tests can feed raw signatures or junk.
func (c *stubCodec) decode(r io.Reader) (stubDoc, error) {
	var doc stubDoc
	b, err := io.ReadAll(r)
	if err != nil {
		return doc, err
	}
	if !bytes.HasPrefix(bytes.TrimSpace(b), []byte("{")) {
		return stubDoc{Header: NewHeader(Card{"FORMAT", string(c.format)})}, nil
	}
	err = json.Unmarshal(b, &doc)
	return doc, err
}

// countingReader counts Read calls on an in-memory stream.
type countingReader struct {
	*bytes.Reader
	reads int
}

func (r *countingReader) Read(p []byte) (int, error) {
	r.reads++
	return r.Reader.Read(p)
}

func newCounting(b []byte) *countingReader {
	return &countingReader{Reader: bytes.NewReader(b)}
}

// stubRegistry returns a registry with stub codecs for the given formats
// and the codecs keyed by format.
func stubRegistry(t *testing.T, fs ...Format) (*Registry, map[Format]*stubCodec) {
	t.Helper()
	codecs := make(map[Format]*stubCodec)
	entries := make(map[Format]Entry)
	for _, f := range fs {
		c := &stubCodec{format: f}
		codecs[f] = c
		entries[f] = Available(c)
	}
	reg, err := NewRegistry(entries)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return reg, codecs
}
