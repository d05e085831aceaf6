// Package session holds the signed-in identity that scopes which trades a
// caller can see.
//
// A Provider is created once by the process that owns it and closed
// explicitly; there is no package-level session.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/rustyeddy/tradebook/internal/id"
)

var ErrClosed = errors.New("session provider closed")

type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Started   time.Time `json:"started"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether s has an expiry that is not after now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Listener is called with the new session, or ok=false when signed out.
type Listener func(s Session, ok bool)

type Provider struct {
	// notify serialises state changes with their delivery, so listeners see
	// changes in the order they were applied.
	notify sync.Mutex

	mu        sync.Mutex
	current   *Session
	listeners map[uint64]Listener
	next      uint64
	closed    bool
	now       func() time.Time
}

func NewProvider() *Provider {
	return &Provider{
		listeners: make(map[uint64]Listener),
		now:       time.Now,
	}
}

// Current returns the active session. An expired session is reported as
// absent.
func (p *Provider) Current() (Session, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil || p.current.Expired(p.now()) {
		return Session{}, false
	}
	return *p.current, true
}

// SignIn starts a session for userID. A zero ttl never expires.
func (p *Provider) SignIn(userID string, ttl time.Duration) (Session, error) {
	now := p.now()
	s := Session{
		ID:      id.NewAt(now),
		UserID:  userID,
		Started: now.UTC(),
	}
	if ttl > 0 {
		s.ExpiresAt = s.Started.Add(ttl)
	}
	if err := p.set(&s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// SignOut clears the active session.
func (p *Provider) SignOut() error {
	return p.set(nil)
}

func (p *Provider) set(s *Session) error {
	p.notify.Lock()
	defer p.notify.Unlock()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.current = s
	ls := p.snapshot()
	p.mu.Unlock()

	// Listeners run outside mu so they may read p or subscribe. They must not
	// sign in or out, which would wait on notify.
	for _, l := range ls {
		if s == nil {
			l(Session{}, false)
		} else {
			l(*s, true)
		}
	}
	return nil
}

func (p *Provider) snapshot() []Listener {
	ls := make([]Listener, 0, len(p.listeners))
	for i := uint64(0); i < p.next; i++ {
		if l, ok := p.listeners[i]; ok {
			ls = append(ls, l)
		}
	}
	return ls
}

// Subscribe registers l for session changes and returns a function that
// removes it. Calling the returned function more than once is harmless.
func (p *Provider) Subscribe(l Listener) (unsubscribe func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return func() {}
	}
	key := p.next
	p.next++
	p.listeners[key] = l

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.listeners, key)
	}
}

// Close drops the session and all listeners. Later sign-ins fail with
// ErrClosed.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	p.current = nil
	clear(p.listeners)
	return nil
}
