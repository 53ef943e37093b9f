package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpl-au/scifile"
)

func newExtensionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extensions",
		Short: "List the file extensions mapped to each format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, f := range scifile.Formats() {
				exts := scifile.KnownExtensions.Of(f)
				list := "(content only)"
				if len(exts) > 0 {
					list = strings.Join(exts, ", ")
				}
				if _, err := fmt.Fprintf(w, "%-5s %s\n", f, list); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
