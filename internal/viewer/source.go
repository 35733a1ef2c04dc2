package viewer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ziadkadry99/arcdocs/internal/manifest"
)

// reloadDelay coalesces the burst of events editors produce on save.
const reloadDelay = 100 * time.Millisecond

// Source owns the manifest the viewer serves. It is the only writer of the
// current manifest; every write is a full replacement.
type Source struct {
	path string

	mu      sync.RWMutex
	current *manifest.Manifest
	data    []byte
	subs    []func(*manifest.Manifest)
}

// NewSource loads the manifest at path.
func NewSource(path string) (*Source, error) {
	s := &Source{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStaticSource serves m without a backing file.
func NewStaticSource(m *manifest.Manifest) *Source {
	s := &Source{}
	s.Set(m)
	return s
}

// Path returns the backing file, or "" for a static source.
func (s *Source) Path() string { return s.path }

// Current returns the manifest being served.
func (s *Source) Current() *manifest.Manifest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Snapshot returns the JSON form of the current manifest.
func (s *Source) Snapshot() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Subscribe registers fn to run after every replacement.
func (s *Source) Subscribe(fn func(*manifest.Manifest)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Set replaces the current manifest and notifies subscribers.
func (s *Source) Set(m *manifest.Manifest) {
	if m == nil {
		m = &manifest.Manifest{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		log.Printf("viewer: encoding manifest: %v", err)
		return
	}

	s.mu.Lock()
	s.current = m
	s.data = data
	subs := append([]func(*manifest.Manifest){}, s.subs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(m)
	}
}

// Reload re-reads the backing file. On a parse error the previous manifest
// stays in place.
func (s *Source) Reload() error {
	if s.path == "" {
		return nil
	}
	m, err := manifest.Load(s.path)
	if err != nil {
		return err
	}
	s.Set(m)
	return nil
}

// Watch reloads the manifest whenever its file changes, until ctx is done.
// The parent directory is watched so that editors which save by renaming
// are still seen.
func (s *Source) Watch(ctx context.Context) error {
	if s.path == "" {
		return fmt.Errorf("viewer: source has no backing file")
	}
	abs, err := filepath.Abs(s.path)
	if err != nil {
		return fmt.Errorf("viewer: resolving %s: %w", s.path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("viewer: create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return fmt.Errorf("viewer: watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer w.Close()

		var mu sync.Mutex
		var pending *time.Timer
		defer func() {
			mu.Lock()
			if pending != nil {
				pending.Stop()
			}
			mu.Unlock()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("viewer: watcher error: %v", err)
			case evt, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != abs {
					continue
				}
				if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) {
					continue
				}
				mu.Lock()
				if pending == nil {
					pending = time.AfterFunc(reloadDelay, func() {
						mu.Lock()
						pending = nil
						mu.Unlock()
						if err := s.Reload(); err != nil {
							log.Printf("viewer: reloading %s: %v", s.path, err)
						}
					})
				}
				mu.Unlock()
			}
		}
	}()
	return nil
}
