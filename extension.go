// Extension table.
//
// Each group of lowercase extensions (no leading dot) maps to exactly one
// Format. The table is the fallback when content sniffing fails, the source
// of truth for the write path, and the parser for manual override tokens such
// as "fts". ASDF, HDF5 and CDF are sniff-only and have no group.
package scifile

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Group is an ordered set of extensions belonging to one Format.
type Group struct {
	Format     Format
	Extensions []string
}

// Extensions is an ordered list of extension groups.
type Extensions []Group

// KnownExtensions is the fixed extension table.
var KnownExtensions = Extensions{
	{FITS, []string{"fts", "fits"}},
	{JP2, []string{"jp2", "j2k", "jpc", "jpt"}},
	{ANA, []string{"fz", "f0"}},
}

func init() {
	if err := KnownExtensions.validate(); err != nil {
		panic(err)
	}
}

// validate checks that no extension belongs to two groups and that every
// group names a known format.
func (e Extensions) validate() error {
	owner := make(map[string]Format)
	for _, g := range e {
		if !g.Format.Valid() {
			return fmt.Errorf("extension group for unknown format %q", g.Format)
		}
		for _, ext := range g.Extensions {
			if prev, ok := owner[ext]; ok {
				return fmt.Errorf("extension %q claimed by both %s and %s", ext, prev, g.Format)
			}
			owner[ext] = g.Format
		}
	}
	return nil
}

// Token resolves an override token against the table. The token must equal
// one of a group's extensions; a leading dot is tolerated.
func (e Extensions) Token(tok string) (Format, bool) {
	tok = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tok), "."))
	if tok == "" {
		return "", false
	}
	for _, g := range e {
		if slices.Contains(g.Extensions, tok) {
			return g.Format, true
		}
	}
	return "", false
}

// Filename resolves a file name by its suffix.
func (e Extensions) Filename(name string) (Format, bool) {
	return e.Token(Suffix(name))
}

// Of returns the extensions registered for f, or nil for sniff-only formats.
func (e Extensions) Of(f Format) []string {
	for _, g := range e {
		if g.Format == f {
			return slices.Clone(g.Extensions)
		}
	}
	return nil
}

// Suffix returns the lowercase extension of name without the dot.
func Suffix(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}
