package clipboard

import (
	"io"
	"os"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// Platform is the system clipboard.
type Platform interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// System returns the operating system clipboard.
func System() Platform {
	return systemClipboard{}
}

// SecureContext reports whether the system clipboard can be used directly:
// a clipboard utility is available and the process is not running inside
// an SSH session, where it would write to the remote host's clipboard.
func SecureContext() bool {
	if clipboard.Unsupported {
		return false
	}
	return os.Getenv("SSH_TTY") == "" && os.Getenv("SSH_CONNECTION") == ""
}

// ExecFunc performs the fallback copy of text.
type ExecFunc func(text string) error

// OSC52 returns an ExecFunc that asks the terminal attached to w to set
// the clipboard with an OSC 52 escape sequence.
func OSC52(w io.Writer) ExecFunc {
	return func(text string) error {
		_, err := osc52.New(text).WriteTo(w)
		return err
	}
}
