// Package watcher keeps a client in sync with a live manifest source. It
// listens on a real-time channel and degrades to periodic polling when the
// channel cannot be opened or fails.
package watcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ziadkadry99/arcdocs/internal/clock"
	"github.com/ziadkadry99/arcdocs/internal/manifest"
)

const (
	DefaultPollInterval   = 2 * time.Second
	DefaultReconnectDelay = 5 * time.Second
)

// Bus event names.
const (
	EventArcChanged   = "arc-changed"
	EventStateChanged = "state-changed"
)

// State is the connection state of a Watcher.
type State int

const (
	StateStopped State = iota
	StateConnecting
	StateConnected
	StatePolling
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StatePolling:
		return "polling"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Event is published on the watcher's bus.
type Event struct {
	State    State
	Manifest *manifest.Manifest
}

// Options configures a Watcher. Zero values select the defaults.
type Options struct {
	PollInterval   time.Duration
	ReconnectDelay time.Duration
	Clock          clock.Clock
	Logger         *log.Logger
	OnArcChanged   func(*manifest.Manifest)
}

// Watcher tracks a manifest source through a Transport.
type Watcher struct {
	transport Transport
	opts      Options
	bus       *Bus[Event]

	mu       sync.Mutex
	state    State
	watching bool
	gen      int
	timer    clock.Timer
	channel  Channel
	cancel   context.CancelFunc
	last     []byte
}

// New creates a stopped Watcher.
func New(t Transport, opts Options) *Watcher {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = DefaultReconnectDelay
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Watcher{transport: t, opts: opts, bus: NewBus[Event](opts.Logger)}
}

// Bus returns the event registry. Listeners receive EventArcChanged and
// EventStateChanged.
func (w *Watcher) Bus() *Bus[Event] { return w.bus }

// State reports the current connection state.
func (w *Watcher) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Start begins watching. It is a no-op while already watching.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return
	}
	w.watching = true
	w.gen++
	gen := w.gen
	ctx, w.cancel = context.WithCancel(ctx)
	w.mu.Unlock()

	w.connect(ctx, gen)
}

// Stop ends watching, cancels any pending timer and closes the open
// channel. No change handler runs after Stop returns.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.watching {
		w.mu.Unlock()
		return
	}
	w.watching = false
	w.gen++
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	ch, cancel := w.channel, w.cancel
	w.channel, w.cancel = nil, nil
	w.mu.Unlock()

	if ch != nil {
		ch.Close()
	}
	if cancel != nil {
		cancel()
	}
	w.setState(StateStopped)
}

// HandleArcChanged publishes m to bus listeners and the OnArcChanged
// callback. Panics in the callback are logged.
func (w *Watcher) HandleArcChanged(m *manifest.Manifest) {
	w.bus.Emit(EventArcChanged, Event{State: w.State(), Manifest: m})
	if w.opts.OnArcChanged == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			w.opts.Logger.Printf("watcher: change handler panicked: %v", r)
		}
	}()
	w.opts.OnArcChanged(m)
}

// GetCurrentData fetches one snapshot. It returns nil on any failure.
func (w *Watcher) GetCurrentData(ctx context.Context) *manifest.Manifest {
	data, err := w.transport.Fetch(ctx)
	if err != nil {
		w.opts.Logger.Printf("watcher: fetching current data: %v", err)
		return nil
	}
	_, m, err := decodeSnapshot(data)
	if err != nil {
		w.opts.Logger.Printf("watcher: decoding current data: %v", err)
		return nil
	}
	return m
}

func (w *Watcher) current(gen int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.watching && w.gen == gen
}

func (w *Watcher) setState(s State) {
	w.mu.Lock()
	changed := w.state != s
	w.state = s
	w.mu.Unlock()
	if changed {
		w.bus.Emit(EventStateChanged, Event{State: s})
	}
}

// setStateIf moves to s only while gen is current. The check and the
// update share one critical section, so a concurrent Stop cannot be
// overwritten by a stale transition.
func (w *Watcher) setStateIf(gen int, s State) bool {
	w.mu.Lock()
	if !w.watching || w.gen != gen {
		w.mu.Unlock()
		return false
	}
	changed := w.state != s
	w.state = s
	w.mu.Unlock()
	if changed {
		w.bus.Emit(EventStateChanged, Event{State: s})
	}
	return true
}

// schedule arms the single watcher timer if gen is still current.
func (w *Watcher) schedule(gen int, d time.Duration, f func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.watching || w.gen != gen {
		return
	}
	w.timer = w.opts.Clock.AfterFunc(d, f)
}

func (w *Watcher) connect(ctx context.Context, gen int) {
	if !w.setStateIf(gen, StateConnecting) {
		return
	}

	ch, err := w.transport.Dial(ctx)
	if err != nil {
		w.opts.Logger.Printf("watcher: real-time channel unavailable, polling: %v", err)
		w.startPolling(ctx, gen)
		return
	}

	w.mu.Lock()
	if !w.watching || w.gen != gen {
		w.mu.Unlock()
		ch.Close()
		return
	}
	w.channel = ch
	w.mu.Unlock()

	if !w.setStateIf(gen, StateConnected) {
		return
	}
	go w.listen(ctx, gen, ch)
}

func (w *Watcher) listen(ctx context.Context, gen int, ch Channel) {
	for {
		msg, err := ch.Next(ctx)
		if err != nil {
			ch.Close()
			w.mu.Lock()
			if w.channel == ch {
				w.channel = nil
			}
			w.mu.Unlock()
			if !w.current(gen) {
				return
			}
			if errors.Is(err, ErrClosed) {
				if !w.setStateIf(gen, StateConnecting) {
					return
				}
				w.schedule(gen, w.opts.ReconnectDelay, func() { w.connect(ctx, gen) })
				return
			}
			w.opts.Logger.Printf("watcher: channel error, polling: %v", err)
			w.startPolling(ctx, gen)
			return
		}
		if msg.Type != MessageArcChanged || msg.ArcData == nil {
			continue
		}
		if !w.current(gen) {
			return
		}
		w.HandleArcChanged(msg.ArcData)
	}
}

func (w *Watcher) startPolling(ctx context.Context, gen int) {
	if !w.setStateIf(gen, StatePolling) {
		return
	}
	w.poll(ctx, gen)
}

// poll runs one fetch and schedules the next only after it settles, so at
// most one fetch is in flight. The first snapshot sets the baseline.
func (w *Watcher) poll(ctx context.Context, gen int) {
	if !w.current(gen) {
		return
	}
	if data, err := w.transport.Fetch(ctx); err != nil {
		w.opts.Logger.Printf("watcher: poll failed: %v", err)
	} else if fp, m, err := decodeSnapshot(data); err != nil {
		w.opts.Logger.Printf("watcher: poll returned bad snapshot: %v", err)
	} else {
		w.mu.Lock()
		changed := w.last != nil && !bytes.Equal(fp, w.last)
		w.last = fp
		live := w.watching && w.gen == gen
		w.mu.Unlock()
		if changed && live {
			w.HandleArcChanged(m)
		}
	}
	w.schedule(gen, w.opts.PollInterval, func() { w.poll(ctx, gen) })
}

// decodeSnapshot returns the compacted JSON form of data as its
// fingerprint together with the decoded manifest.
func decodeSnapshot(data []byte) ([]byte, *manifest.Manifest, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, nil, err
	}
	m, err := manifest.DecodeJSON(buf.Bytes())
	if err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), m, nil
}
