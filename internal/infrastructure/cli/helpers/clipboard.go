package helpers

import (
	"bytes"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/doeshing/ganpi-go/internal/ports"
)

// Clipboard implements ports.Clipboard using platform-specific tools.
type Clipboard struct {
	goos     string
	lookPath func(string) (string, error)
}

// NewClipboard builds the clipboard helper for the host OS.
func NewClipboard() *Clipboard {
	return &Clipboard{goos: runtime.GOOS, lookPath: exec.LookPath}
}

// Enabled reports whether a clipboard tool is available.
func (c *Clipboard) Enabled() bool {
	_, _, err := c.tool()
	return err == nil
}

// Copy copies text to the system clipboard.
func (c *Clipboard) Copy(text string) error {
	name, args, err := c.tool()
	if err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	cmd.Stdin = bytes.NewBufferString(text)
	return cmd.Run()
}

func (c *Clipboard) tool() (string, []string, error) {
	var candidates [][]string
	switch c.goos {
	case "darwin":
		candidates = [][]string{{"pbcopy"}}
	case "windows":
		candidates = [][]string{{"clip.exe"}, {"clip"}}
	default:
		candidates = [][]string{{"xclip", "-selection", "clipboard"}, {"wl-copy"}, {"clip.exe"}}
	}
	for _, candidate := range candidates {
		if _, err := c.lookPath(candidate[0]); err == nil {
			return candidate[0], candidate[1:], nil
		}
	}
	return "", nil, fmt.Errorf("no clipboard utility found on %s", c.goos)
}

var _ ports.Clipboard = (*Clipboard)(nil)
