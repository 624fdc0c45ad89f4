// Package theme holds the light/dark preference shared by every view.
package theme

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

var ErrInvalidTheme = errors.New("theme: must be light or dark")

func Parse(s string) (Theme, error) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
}

func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

type Storage interface {
	Load() (Theme, bool, error)
	Save(Theme) error
}

// Provider is the injectable theme context. Subscribers run synchronously,
// outside mu, after a Set that actually changed the theme. Sets are
// serialized end to end so Get, the saved preference and the last
// notification always agree; a subscriber must not call Set itself.
type Provider struct {
	setMu sync.Mutex // held across commit, save and notify

	mu      sync.Mutex
	current Theme
	storage Storage
	log     *zap.Logger
	nextID  int
	subs    map[int]func(Theme)
}

// NewProvider starts from the saved preference, or Light when there is none.
// Storage failures are logged and otherwise ignored.
func NewProvider(storage Storage, log *zap.Logger) *Provider {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Provider{
		current: Light,
		storage: storage,
		log:     log,
		subs:    map[int]func(Theme){},
	}
	if storage == nil {
		return p
	}
	saved, ok, err := storage.Load()
	switch {
	case err != nil:
		log.Warn("loading theme preference", zap.Error(err))
	case ok:
		p.current = saved
	}
	return p
}

func (p *Provider) Get() Theme {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *Provider) Set(t Theme) error {
	if _, err := Parse(string(t)); err != nil {
		return err
	}
	p.setMu.Lock()
	defer p.setMu.Unlock()
	p.set(t)
	return nil
}

// Toggle flips the theme and returns the new one. The read and the write
// happen under the same setMu hold, so two concurrent toggles end where
// they started.
func (p *Provider) Toggle() Theme {
	p.setMu.Lock()
	defer p.setMu.Unlock()
	next := p.Get().Opposite()
	p.set(next)
	return next
}

// set expects setMu to be held.
func (p *Provider) set(t Theme) {
	p.mu.Lock()
	changed := p.current != t
	p.current = t
	subs := make([]func(Theme), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	if p.storage != nil {
		if err := p.storage.Save(t); err != nil {
			p.log.Warn("saving theme preference", zap.String("theme", string(t)), zap.Error(err))
		}
	}
	if !changed {
		return
	}
	p.log.Debug("theme changed", zap.String("theme", string(t)))
	for _, fn := range subs {
		fn(t)
	}
}

// Subscribe registers fn for theme changes and returns its cancel func.
func (p *Provider) Subscribe(fn func(Theme)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}
