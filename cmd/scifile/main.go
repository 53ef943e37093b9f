// Command scifile identifies scientific data files by content.
//
// Usage:
//
//	scifile detect [--digest xxh3] [--json] FILE...
//	scifile extensions
package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/fang"
)

// Version is set via -ldflags.
var Version = "dev"

func main() {
	root := newRootCmd()
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		os.Exit(1)
	}
}

// exitError signals a non-zero exit code without calling os.Exit in RunE.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}
