package watcher

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/ziadkadry99/arcdocs/internal/clock"
	"github.com/ziadkadry99/arcdocs/internal/manifest"
)

type fakeChannel struct {
	msgs   chan Message
	errs   chan error
	mu     sync.Mutex
	closed bool
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{msgs: make(chan Message, 8), errs: make(chan error, 1)}
}

func (c *fakeChannel) Next(ctx context.Context) (Message, error) {
	select {
	case m := <-c.msgs:
		return m, nil
	case err := <-c.errs:
		return Message{}, err
	case <-ctx.Done():
		return Message{}, ErrClosed
	}
}

func (c *fakeChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeChannel) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

type fakeTransport struct {
	mu        sync.Mutex
	channels  []*fakeChannel
	dialErr   error
	dials     int
	snapshots []string
	fetches   int
	fetchErr  error
}

func (t *fakeTransport) Dial(ctx context.Context) (Channel, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dials++
	if t.dialErr != nil {
		return nil, t.dialErr
	}
	ch := newFakeChannel()
	t.channels = append(t.channels, ch)
	return ch, nil
}

func (t *fakeTransport) Fetch(ctx context.Context) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fetches++
	if t.fetchErr != nil {
		return nil, t.fetchErr
	}
	if len(t.snapshots) == 0 {
		return nil, errors.New("no snapshot")
	}
	s := t.snapshots[0]
	if len(t.snapshots) > 1 {
		t.snapshots = t.snapshots[1:]
	}
	return []byte(s), nil
}

func (t *fakeTransport) counts() (dials, fetches int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dials, t.fetches
}

func (t *fakeTransport) channel(i int) *fakeChannel {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.channels[i]
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

const (
	snapA = `{"routes":[{"method":"GET","path":"/","functionName":"get-index"}]}`
	snapB = `{"routes":[{"method":"GET","path":"/b","functionName":"get-b"}]}`
	snapC = `{"lambdas":[{"name":"worker"}]}`
)

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func newPolling(t *testing.T, snaps ...string) (*Watcher, *fakeTransport, *clock.Fake, *[]*manifest.Manifest) {
	t.Helper()
	tr := &fakeTransport{dialErr: errors.New("refused"), snapshots: snaps}
	clk := clock.NewFake()
	var got []*manifest.Manifest
	w := New(tr, Options{
		Clock:        clk,
		Logger:       quietLogger(),
		OnArcChanged: func(m *manifest.Manifest) { got = append(got, m) },
	})
	return w, tr, clk, &got
}

func TestPollingFiresOnlyOnChange(t *testing.T) {
	w, tr, clk, got := newPolling(t, snapA, snapA, snapB, snapB, snapC)
	w.Start(testContext(t))
	if w.State() != StatePolling {
		t.Fatalf("expected polling state, got %s", w.State())
	}

	for i := 0; i < 4; i++ {
		clk.Advance(DefaultPollInterval)
	}

	_, fetches := tr.counts()
	if fetches != 5 {
		t.Fatalf("expected 5 fetches, got %d", fetches)
	}
	if len(*got) != 2 {
		t.Fatalf("expected handler to fire twice, got %d", len(*got))
	}
	if (*got)[0].Routes[0].Path != "/b" {
		t.Errorf("first change should carry B, got %+v", (*got)[0])
	}
	if len((*got)[1].Lambdas) != 1 {
		t.Errorf("second change should carry C, got %+v", (*got)[1])
	}
}

func TestPollingFingerprintIgnoresWhitespace(t *testing.T) {
	w, _, clk, got := newPolling(t, snapA, "  "+snapA+"\n")
	w.Start(testContext(t))
	clk.Advance(DefaultPollInterval)
	if len(*got) != 0 {
		t.Fatalf("reformatted snapshot should not count as a change")
	}
}

func TestPollingFingerprintCountsFieldOrder(t *testing.T) {
	w, _, clk, got := newPolling(t,
		`{"lambdas":[{"name":"a"}],"tables":[]}`,
		`{"tables":[],"lambdas":[{"name":"a"}]}`)
	w.Start(testContext(t))
	clk.Advance(DefaultPollInterval)
	if len(*got) != 1 {
		t.Fatalf("field order change should fire once, got %d", len(*got))
	}
}

func TestPollingSurvivesErrors(t *testing.T) {
	w, tr, clk, _ := newPolling(t)
	tr.fetchErr = errors.New("boom")
	w.Start(testContext(t))
	clk.Advance(DefaultPollInterval)
	clk.Advance(DefaultPollInterval)

	if _, fetches := tr.counts(); fetches != 3 {
		t.Fatalf("expected polling to continue after errors, got %d fetches", fetches)
	}
	if clk.Pending() != 1 {
		t.Fatalf("expected exactly one pending poll, got %d", clk.Pending())
	}
}

func TestStopPreventsFurtherPolls(t *testing.T) {
	w, tr, clk, got := newPolling(t, snapA, snapB, snapC)
	w.Start(testContext(t))
	w.Stop()

	clk.Advance(10 * DefaultPollInterval)

	if len(*got) != 0 {
		t.Fatalf("handler fired after stop: %d", len(*got))
	}
	if _, fetches := tr.counts(); fetches != 1 {
		t.Fatalf("expected no fetch after stop, got %d", fetches)
	}
	if clk.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", clk.Pending())
	}
	if w.State() != StateStopped {
		t.Errorf("expected stopped state, got %s", w.State())
	}
	w.Stop()
}

func TestStartIsIdempotent(t *testing.T) {
	w, tr, clk, _ := newPolling(t, snapA)
	w.Start(testContext(t))
	w.Start(testContext(t))

	dials, fetches := tr.counts()
	if dials != 1 || fetches != 1 {
		t.Fatalf("expected 1 dial and 1 fetch, got %d and %d", dials, fetches)
	}
	if clk.Pending() != 1 {
		t.Fatalf("expected a single poll loop, got %d timers", clk.Pending())
	}
}

func TestRestartAfterStop(t *testing.T) {
	w, tr, _, _ := newPolling(t, snapA)
	w.Start(testContext(t))
	w.Stop()
	w.Start(testContext(t))
	if dials, _ := tr.counts(); dials != 2 {
		t.Fatalf("expected restart to dial again, got %d dials", dials)
	}
}

func newSocket(t *testing.T) (*Watcher, *fakeTransport, *clock.Fake, chan *manifest.Manifest) {
	t.Helper()
	tr := &fakeTransport{snapshots: []string{snapA}}
	clk := clock.NewFake()
	got := make(chan *manifest.Manifest, 4)
	w := New(tr, Options{
		Clock:        clk,
		Logger:       quietLogger(),
		OnArcChanged: func(m *manifest.Manifest) { got <- m },
	})
	t.Cleanup(w.Stop)
	return w, tr, clk, got
}

func TestSocketDeliversChanges(t *testing.T) {
	w, tr, _, got := newSocket(t)
	w.Start(testContext(t))
	if w.State() != StateConnected {
		t.Fatalf("expected connected, got %s", w.State())
	}

	ch := tr.channel(0)
	ch.msgs <- Message{Type: "ping"}
	ch.msgs <- Message{Type: MessageArcChanged}
	ch.msgs <- Message{Type: MessageArcChanged, ArcData: &manifest.Manifest{Lambdas: []manifest.Lambda{{Name: "w"}}}}

	select {
	case m := <-got:
		if len(m.Lambdas) != 1 || m.Lambdas[0].Name != "w" {
			t.Fatalf("unexpected payload %+v", m)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
	}
	select {
	case m := <-got:
		t.Fatalf("unexpected extra change %+v", m)
	default:
	}
}

func TestSocketCloseReconnects(t *testing.T) {
	w, tr, clk, _ := newSocket(t)
	w.Start(testContext(t))

	first := tr.channel(0)
	first.errs <- ErrClosed

	waitFor(t, "reconnect timer", func() bool { return clk.Pending() == 1 })
	if dials, _ := tr.counts(); dials != 1 {
		t.Fatalf("reconnect should wait for the delay, got %d dials", dials)
	}
	if !first.isClosed() {
		t.Error("closed channel should be released")
	}

	clk.Advance(DefaultReconnectDelay - time.Millisecond)
	if dials, _ := tr.counts(); dials != 1 {
		t.Fatalf("reconnected too early")
	}
	clk.Advance(time.Millisecond)
	if dials, _ := tr.counts(); dials != 2 {
		t.Fatalf("expected reconnect after delay, got %d dials", dials)
	}
	if w.State() != StateConnected {
		t.Errorf("expected connected, got %s", w.State())
	}
}

func TestSocketErrorFallsBackToPolling(t *testing.T) {
	w, tr, _, _ := newSocket(t)
	w.Start(testContext(t))

	tr.channel(0).errs <- errors.New("connection reset")

	waitFor(t, "polling", func() bool { return w.State() == StatePolling })
	waitFor(t, "first poll", func() bool {
		_, fetches := tr.counts()
		return fetches == 1
	})
}

func TestStopClosesChannel(t *testing.T) {
	w, tr, clk, _ := newSocket(t)
	w.Start(testContext(t))
	ch := tr.channel(0)

	w.Stop()

	if !ch.isClosed() {
		t.Fatal("stop should close the open channel")
	}
	if clk.Pending() != 0 {
		t.Fatalf("stop should not leave a reconnect scheduled, got %d", clk.Pending())
	}
}

func TestHandleArcChangedRecoversPanics(t *testing.T) {
	var seen []string
	w := New(&fakeTransport{}, Options{
		Clock:        clock.NewFake(),
		Logger:       quietLogger(),
		OnArcChanged: func(*manifest.Manifest) { panic("handler") },
	})
	w.Bus().On(EventArcChanged, func(Event) { panic("listener") })
	w.Bus().On(EventArcChanged, func(e Event) { seen = append(seen, e.Manifest.App) })

	w.HandleArcChanged(&manifest.Manifest{App: "demo"})

	if len(seen) != 1 || seen[0] != "demo" {
		t.Fatalf("second listener should still run, got %v", seen)
	}
}

func TestBusOff(t *testing.T) {
	b := NewBus[int](quietLogger())
	var a, c int
	subA := b.On("n", func(v int) { a += v })
	b.On("n", func(v int) { c += v })

	b.Emit("n", 1)
	b.Off(subA)
	b.Off(subA)
	b.Emit("n", 2)
	b.Emit("other", 5)

	if a != 1 || c != 3 {
		t.Fatalf("unexpected totals a=%d c=%d", a, c)
	}
}

func TestStateEvents(t *testing.T) {
	w, _, _, _ := newPolling(t, snapA)
	var states []State
	w.Bus().On(EventStateChanged, func(e Event) { states = append(states, e.State) })

	w.Start(testContext(t))
	w.Stop()

	want := []State{StateConnecting, StatePolling, StateStopped}
	if len(states) != len(want) {
		t.Fatalf("expected %v, got %v", want, states)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, states)
		}
	}
}

func TestGetCurrentData(t *testing.T) {
	tr := &fakeTransport{snapshots: []string{snapB}}
	w := New(tr, Options{Logger: quietLogger()})
	m := w.GetCurrentData(testContext(t))
	if m == nil || m.Routes[0].FunctionName != "get-b" {
		t.Fatalf("unexpected data %+v", m)
	}

	tr.fetchErr = errors.New("down")
	if m := w.GetCurrentData(testContext(t)); m != nil {
		t.Fatalf("expected nil on failure, got %+v", m)
	}

	tr.fetchErr = nil
	tr.snapshots = []string{"not json"}
	if m := w.GetCurrentData(testContext(t)); m != nil {
		t.Fatalf("expected nil on bad payload, got %+v", m)
	}
}

// stoppingTransport stops its watcher while a dial is in flight.
type stoppingTransport struct {
	w *Watcher
}

func (t *stoppingTransport) Dial(ctx context.Context) (Channel, error) {
	t.w.Stop()
	return nil, errors.New("refused")
}

func (t *stoppingTransport) Fetch(ctx context.Context) ([]byte, error) {
	return []byte(snapA), nil
}

func TestStopDuringDialStaysStopped(t *testing.T) {
	tr := &stoppingTransport{}
	w := New(tr, Options{Clock: clock.NewFake(), Logger: quietLogger()})
	tr.w = w
	var states []State
	w.Bus().On(EventStateChanged, func(e Event) { states = append(states, e.State) })

	w.Start(testContext(t))

	if w.State() != StateStopped {
		t.Fatalf("expected stopped, got %v", w.State())
	}
	if last := states[len(states)-1]; last != StateStopped {
		t.Fatalf("state event after stop: %v", states)
	}
}

func TestStaleTransitionIgnored(t *testing.T) {
	w, _, _, _ := newPolling(t, snapA)
	w.Start(testContext(t))
	w.mu.Lock()
	gen := w.gen
	w.mu.Unlock()
	w.Stop()

	events := 0
	w.Bus().On(EventStateChanged, func(e Event) { events++ })
	if w.setStateIf(gen, StatePolling) {
		t.Error("transition for a stopped generation should be refused")
	}
	if w.State() != StateStopped || events != 0 {
		t.Errorf("state = %v, events = %d; want stopped and none", w.State(), events)
	}
}
