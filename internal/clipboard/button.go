package clipboard

import (
	"fmt"
	"html"
	"sync"
)

// Button is a copy control. Clicking it disables it, shows a checkmark,
// copies, and restores the original label after the toast duration.
type Button struct {
	mu       sync.Mutex
	label    string
	original string
	disabled bool
	value    string
	class    string
	copy     func() bool
	helper   *Helper
}

// CreateCopyButton returns a button that copies text.
func (h *Helper) CreateCopyButton(text, label string) *Button {
	if label == "" {
		label = "📋 Copy"
	}
	return &Button{
		label:    label,
		original: label,
		value:    text,
		class:    "copy-btn",
		copy:     func() bool { return h.Copy(text) },
		helper:   h,
	}
}

// CreateArnButton returns a button that copies the route's ARN.
func (h *Helper) CreateArnButton(method, path, region string) *Button {
	return &Button{
		label:    "ARN",
		original: "ARN",
		value:    FormatArn(method, path, region),
		class:    "copy-btn arn-btn",
		copy:     func() bool { return h.CopyArn(method, path, region) },
		helper:   h,
	}
}

// Click runs the copy. Clicks on a disabled button are ignored. It reports
// whether the copy succeeded.
func (b *Button) Click() bool {
	b.mu.Lock()
	if b.disabled {
		b.mu.Unlock()
		return false
	}
	b.disabled = true
	b.label = "✓"
	b.mu.Unlock()

	ok := b.copy()

	b.helper.clock.AfterFunc(b.helper.toaster.Duration(), func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.label = b.original
		b.disabled = false
	})
	return ok
}

// Label returns the current label.
func (b *Button) Label() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.label
}

// Disabled reports whether the button is waiting to be restored.
func (b *Button) Disabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disabled
}

// HTML renders the button with its value in data-copy.
func (b *Button) HTML() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	disabled := ""
	if b.disabled {
		disabled = " disabled"
	}
	return fmt.Sprintf(`<button class="%s" data-copy="%s"%s>%s</button>`,
		b.class, html.EscapeString(b.value), disabled, html.EscapeString(b.label))
}
