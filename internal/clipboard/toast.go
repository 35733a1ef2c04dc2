package clipboard

import (
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/arcdocs/internal/clock"
)

// Kind selects the toast style.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

const (
	// DefaultDuration is how long a toast stays visible.
	DefaultDuration = 2000 * time.Millisecond

	showDelay   = 10 * time.Millisecond
	removeDelay = 300 * time.Millisecond
)

// Toaster shows transient notifications in a container.
type Toaster struct {
	container *Document
	duration  time.Duration
	clock     clock.Clock
}

// NewToaster creates a Toaster appending to container.
func NewToaster(container *Document, duration time.Duration, clk clock.Clock) *Toaster {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if clk == nil {
		clk = clock.Real()
	}
	return &Toaster{container: container, duration: duration, clock: clk}
}

// Duration returns how long toasts stay visible.
func (t *Toaster) Duration() time.Duration { return t.duration }

// Show appends a toast, makes it visible shortly after insertion, hides it
// after the toast duration and detaches it 300ms later.
func (t *Toaster) Show(message string, kind Kind) *Element {
	el := NewElement("div", message, "toast", "toast-"+string(kind))
	el.ID = "toast-" + uuid.NewString()
	t.container.Append(el)

	t.clock.AfterFunc(showDelay, func() {
		el.AddClass("show")
	})
	t.clock.AfterFunc(t.duration, func() {
		el.RemoveClass("show")
		t.clock.AfterFunc(removeDelay, func() {
			t.container.Remove(el)
		})
	})
	return el
}
