// Package clipboard copies text to the system clipboard, falling back to the
// terminal's OSC52 clipboard when no system clipboard tool is available.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"

	"github.com/andareed/epochx/logging"
)

// Copier tries the system clipboard first, then OSC52.
type Copier struct {
	System func(string) error
	// Terminal receives the OSC52 sequence. Nil disables the fallback.
	Terminal io.Writer
}

var std = &Copier{
	System:   systemCopy,
	Terminal: os.Stdout,
}

// Copy copies text using the default Copier.
func Copy(text string) error {
	return std.Copy(text)
}

func (c *Copier) Copy(text string) error {
	var sysErr error
	if c.System != nil {
		if sysErr = c.System(text); sysErr == nil {
			logging.Infof("Clipboard: copied %d bytes via system clipboard", len(text))
			return nil
		}
		logging.Warnf("Clipboard: system clipboard failed: %v", sysErr)
	}
	if c.Terminal == nil {
		if sysErr == nil {
			return errors.New("clipboard unavailable: no system clipboard or terminal configured")
		}
		return fmt.Errorf("clipboard unavailable: %w", sysErr)
	}
	if err := copyOSC52(c.Terminal, text); err != nil {
		return errors.Join(sysErr, err)
	}
	return nil
}

func systemCopy(text string) error {
	if clipboard.Unsupported {
		return errors.New("no system clipboard tool found (install xclip, xsel or wl-clipboard)")
	}
	return clipboard.WriteAll(text)
}
