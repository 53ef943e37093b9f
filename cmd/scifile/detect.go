package main

import (
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jpl-au/scifile"
)

// result is one line of detect output.
type result struct {
	Path   string `json:"path"`
	Format string `json:"format,omitempty"`
	Digest string `json:"digest,omitempty"`
	Error  string `json:"error,omitempty"`
}

func newDetectCmd(v *viper.Viper) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "detect FILE...",
		Short: "Report the format of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := load(v)
			if err != nil {
				return err
			}
			var alg scifile.Algorithm
			if s.Digest != "" {
				if alg, err = scifile.ParseAlgorithm(s.Digest); err != nil {
					return err
				}
			}
			d := newDispatcher(s)

			failed := 0
			for _, path := range args {
				r := detect(d, path, alg)
				if r.Error != "" {
					failed++
				}
				if err := emit(cmd.OutOrStdout(), r, asJSON); err != nil {
					return err
				}
			}
			if failed > 0 {
				return &exitError{code: 2, err: fmt.Errorf("%d of %d files not recognised", failed, len(args))}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "write one JSON object per file")
	cmd.Flags().String("digest", "", "also print a content digest (xxh3, fnv1a, blake2b)")
	v.BindPFlag("digest", cmd.Flags().Lookup("digest"))
	return cmd
}

// detect sniffs path, falling back to its extension like a read would.
func detect(d *scifile.Dispatcher, path string, alg scifile.Algorithm) result {
	r := result{Path: path}
	src, err := scifile.Open(path)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	defer src.Close()

	f, err := d.Detect(src)
	if errors.Is(err, scifile.ErrUnrecognizedFormat) {
		if ext, ok := scifile.KnownExtensions.Filename(path); ok {
			f, err = ext, nil
		}
	}
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.Format = f.String()

	if alg != 0 {
		if r.Digest, err = scifile.Digest(src, alg); err != nil {
			r.Error = err.Error()
		}
	}
	return r
}

func emit(w io.Writer, r result, asJSON bool) error {
	if asJSON {
		b, err := json.Marshal(r)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	var err error
	switch {
	case r.Error != "":
		_, err = fmt.Fprintf(w, "%s: error: %s\n", r.Path, r.Error)
	case r.Digest != "":
		_, err = fmt.Fprintf(w, "%s: %s %s\n", r.Path, r.Format, r.Digest)
	default:
		_, err = fmt.Fprintf(w, "%s: %s\n", r.Path, r.Format)
	}
	return err
}
