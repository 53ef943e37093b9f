// Write path.
//
// Writes resolve the format from the destination's extension only; there is
// no content to sniff because the destination does not exist yet or is about
// to be replaced. The format is resolved and the codec looked up before the
// destination is opened, so an unsupported extension never creates a file.
package scifile

import "fmt"

// Auto selects the format from the destination's extension.
const Auto = "auto"

// Write serialises one data/header pair to target. filetype is Auto (or
// empty), a file extension, or a canonical format that owns extensions.
func (d *Dispatcher) Write(target any, data any, hdr *Header, filetype string, opts Options) error {
	name, err := targetName(target)
	if err != nil {
		return err
	}
	f, err := d.writeFormat(name, filetype)
	if err != nil {
		return err
	}
	c, err := d.registry.Lookup(f)
	if err != nil {
		d.logger.Warn("codec unavailable", "format", f, "op", "write", "target", name)
		return err
	}

	dst, err := acquire(target, true)
	if err != nil {
		return err
	}
	defer dst.Close()

	d.logger.Debug("dispatch", "format", f, "op", "write", "target", name)
	return c.Write(dst, data, hdr, opts)
}

func (d *Dispatcher) writeFormat(name, filetype string) (Format, error) {
	tok := filetype
	if tok == "" || tok == Auto {
		tok = Suffix(name)
	}
	if f, ok := d.exts.Token(tok); ok {
		return f, nil
	}
	if f, ok := ParseFormat(tok); ok && len(d.exts.Of(f)) > 0 {
		return f, nil
	}
	return "", fmt.Errorf("%w: the filetype provided (%q) is not supported", ErrUnsupportedFormat, tok)
}
