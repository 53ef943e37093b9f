// Content digests.
//
// A digest is a 16 hex character fingerprint of a stream's full content,
// reported next to the detected format so that identical files can be
// recognised regardless of name. Three algorithms are supported.
package scifile

import (
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"io"
	"strings"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// Algorithm selects the digest function.
type Algorithm int

// Digest algorithms.
const (
	AlgXXHash3 Algorithm = 1 // Default, fastest
	AlgFNV1a   Algorithm = 2 // No external dependencies
	AlgBlake2b Algorithm = 3 // Best distribution
)

// ParseAlgorithm maps a name ("xxh3", "fnv1a", "blake2b") to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(name) {
	case "", "xxh3", "xxhash3":
		return AlgXXHash3, nil
	case "fnv", "fnv1a":
		return AlgFNV1a, nil
	case "blake2b":
		return AlgBlake2b, nil
	}
	return 0, fmt.Errorf("unknown digest algorithm %q", name)
}

func (a Algorithm) String() string {
	switch a {
	case AlgXXHash3:
		return "xxh3"
	case AlgFNV1a:
		return "fnv1a"
	case AlgBlake2b:
		return "blake2b"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Digest hashes everything readable from r. Seekable readers are hashed from
// offset 0 and rewound afterwards.
func Digest(r io.Reader, alg Algorithm) (string, error) {
	if s, ok := r.(io.Seeker); ok {
		if err := rewind(s); err != nil {
			return "", err
		}
		defer rewind(s)
	}

	switch alg {
	case AlgXXHash3:
		h := xxh3.New()
		if _, err := io.Copy(h, r); err != nil {
			return "", err
		}
		return fmt.Sprintf("%016x", h.Sum64()), nil
	case AlgFNV1a:
		h := fnv.New64a()
		if _, err := io.Copy(h, r); err != nil {
			return "", err
		}
		return fmt.Sprintf("%016x", h.Sum64()), nil
	case AlgBlake2b:
		h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
		if _, err := io.Copy(h, r); err != nil {
			return "", err
		}
		return hex.EncodeToString(h.Sum(nil)), nil
	}
	return "", fmt.Errorf("unknown digest algorithm %d", int(alg))
}
