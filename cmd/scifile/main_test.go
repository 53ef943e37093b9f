package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDetectCommand(t *testing.T) {
	fits := writeFile(t, "a.dat", []byte("SIMPLE  =                    T"))
	j2k := writeFile(t, "empty.j2k", nil)

	out, err := run(t, "detect", fits, j2k)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if !strings.Contains(out, fits+": fits") {
		t.Errorf("output %q missing fits line", out)
	}
	if !strings.Contains(out, j2k+": jp2") {
		t.Errorf("output %q missing extension fallback line", out)
	}
}

func TestDetectCommandJSON(t *testing.T) {
	path := writeFile(t, "cube.h5", []byte("\x89HDF\r\n\x1a\n"))

	out, err := run(t, "detect", "--json", "--digest", "fnv1a", path)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	var r result
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &r); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if r.Format != "hdf5" {
		t.Errorf("Format = %q, want hdf5", r.Format)
	}
	if len(r.Digest) != 16 {
		t.Errorf("Digest = %q, want 16 hex chars", r.Digest)
	}
}

func TestDetectCommandUnrecognized(t *testing.T) {
	path := writeFile(t, "notes.txt", []byte("hello"))

	out, err := run(t, "detect", path)
	var exitErr *exitError
	if !errors.As(err, &exitErr) || exitErr.code != 2 {
		t.Fatalf("error = %v, want exit code 2", err)
	}
	if !strings.Contains(out, "error") {
		t.Errorf("output %q should report the error", out)
	}
}

func TestDetectCommandBadDigest(t *testing.T) {
	path := writeFile(t, "a.fits", []byte("SIMPLE  = T"))
	if _, err := run(t, "detect", "--digest", "md5", path); err == nil {
		t.Error("detect with unknown digest succeeded")
	}
}

func TestExtensionsCommand(t *testing.T) {
	out, err := run(t, "extensions")
	if err != nil {
		t.Fatalf("extensions: %v", err)
	}
	for _, want := range []string{"fts, fits", "jp2, j2k, jpc, jpt", "fz, f0", "(content only)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
