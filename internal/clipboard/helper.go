// Package clipboard copies text to the system clipboard, falling back to
// a terminal escape sequence when the clipboard cannot be used directly,
// and reports the outcome through transient toasts.
package clipboard

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ziadkadry99/arcdocs/internal/clock"
)

// Options configures a Helper. Zero values select the defaults.
type Options struct {
	Platform Platform
	Exec     ExecFunc
	// Secure selects the platform clipboard instead of the fallback.
	Secure bool
	// Document receives the fallback's scratch element.
	Document *Document
	// Container receives toasts; it defaults to Document.
	Container *Document
	Duration  time.Duration
	Clock     clock.Clock
	Logger    *log.Logger
}

// DefaultOptions returns options for the running system.
func DefaultOptions() Options {
	return Options{
		Platform: System(),
		Exec:     OSC52(os.Stderr),
		Secure:   SecureContext(),
	}
}

// Helper copies text and shows toasts.
type Helper struct {
	platform Platform
	exec     ExecFunc
	secure   bool
	doc      *Document
	toaster  *Toaster
	clock    clock.Clock
	logger   *log.Logger
}

// New creates a Helper.
func New(opts Options) *Helper {
	if opts.Document == nil {
		opts.Document = NewDocument()
	}
	if opts.Container == nil {
		opts.Container = opts.Document
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Helper{
		platform: opts.Platform,
		exec:     opts.Exec,
		secure:   opts.Secure,
		doc:      opts.Document,
		toaster:  NewToaster(opts.Container, opts.Duration, opts.Clock),
		clock:    opts.Clock,
		logger:   opts.Logger,
	}
}

// Toaster returns the helper's toaster.
func (h *Helper) Toaster() *Toaster { return h.toaster }

// Document returns the document the helper works in.
func (h *Helper) Document() *Document { return h.doc }

// Copy puts text on the clipboard and reports success. It never panics;
// failures are logged and shown as an error toast.
func (h *Helper) Copy(text string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Printf("clipboard: copy panicked: %v", r)
			h.toaster.Show("Failed to copy", KindError)
			ok = false
		}
	}()

	var err error
	if h.secure && h.platform != nil {
		err = h.platform.WriteAll(text)
	} else {
		err = h.fallbackCopy(text)
	}
	if err != nil {
		h.logger.Printf("clipboard: copy failed: %v", err)
		h.toaster.Show("Failed to copy", KindError)
		return false
	}
	h.toaster.Show("Copied to clipboard!", KindSuccess)
	return true
}

// fallbackCopy stages text in a hidden textarea and runs the exec
// function. The textarea is detached on every exit path.
func (h *Helper) fallbackCopy(text string) (err error) {
	if h.exec == nil {
		return fmt.Errorf("clipboard: no fallback available")
	}
	ta := NewElement("textarea", text, "clipboard-scratch")
	h.doc.Append(ta)
	defer h.doc.Remove(ta)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("clipboard: fallback copy: %v", r)
		}
	}()
	return h.exec(text)
}

// CopyArn copies the route's ARN. The region is accepted but not part of
// the formatted value.
func (h *Helper) CopyArn(method, path, region string) bool {
	return h.Copy(FormatArn(method, path, region))
}

// CopyRoute copies "{method} {path}".
func (h *Helper) CopyRoute(method, path string) bool {
	return h.Copy(method + " " + path)
}

// FormatArn returns "arn:arc:route:{method}:{path}". The region is ignored.
func FormatArn(method, path, region string) string {
	return fmt.Sprintf("arn:arc:route:%s:%s", method, path)
}
