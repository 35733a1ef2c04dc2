package watcher

import (
	"log"
	"sync"
)

// Subscription identifies a listener registered with Bus.On.
type Subscription struct {
	name string
	id   int
}

type listener[T any] struct {
	id int
	fn func(T)
}

// Bus is a publish/subscribe registry keyed by event name. A panicking
// listener is logged and does not prevent the others from running.
type Bus[T any] struct {
	mu        sync.Mutex
	next      int
	listeners map[string][]listener[T]
	logger    *log.Logger
}

// NewBus creates an empty Bus. A nil logger selects log.Default().
func NewBus[T any](logger *log.Logger) *Bus[T] {
	if logger == nil {
		logger = log.Default()
	}
	return &Bus[T]{listeners: make(map[string][]listener[T]), logger: logger}
}

// On registers fn for events named name.
func (b *Bus[T]) On(name string, fn func(T)) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	b.listeners[name] = append(b.listeners[name], listener[T]{id: b.next, fn: fn})
	return Subscription{name: name, id: b.next}
}

// Off removes a listener. Removing an unknown subscription is a no-op.
func (b *Bus[T]) Off(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ls := b.listeners[sub.name]
	for i, l := range ls {
		if l.id == sub.id {
			b.listeners[sub.name] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// Emit calls every listener registered for name, in registration order.
func (b *Bus[T]) Emit(name string, v T) {
	b.mu.Lock()
	ls := append([]listener[T](nil), b.listeners[name]...)
	b.mu.Unlock()

	for _, l := range ls {
		b.call(name, l.fn, v)
	}
}

func (b *Bus[T]) call(name string, fn func(T), v T) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Printf("watcher: %s listener panicked: %v", name, r)
		}
	}()
	fn(v)
}
