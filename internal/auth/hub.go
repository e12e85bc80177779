package auth

import (
	"sync"

	"aptitude-quiz-service/internal/domain"
)

// EventKind names a session lifecycle change.
type EventKind string

const (
	SignedIn  EventKind = "signed_in"
	Refreshed EventKind = "refreshed"
	SignedOut EventKind = "signed_out"
)

// SessionEvent is delivered to OnSessionChange callbacks.
type SessionEvent struct {
	Kind    EventKind
	Session domain.Session
	// PreviousTokenID is set on Refreshed to the token that was replaced.
	PreviousTokenID string
}

type subscriber struct {
	fn func(SessionEvent)
}

// hub fans session events out to registered callbacks in registration order.
type hub struct {
	mu          sync.Mutex
	subscribers []*subscriber
}

func (h *hub) subscribe(fn func(SessionEvent)) func() {
	sub := &subscriber{fn: fn}

	h.mu.Lock()
	h.subscribers = append(h.subscribers, sub)
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			for i, s := range h.subscribers {
				if s == sub {
					h.subscribers = append(h.subscribers[:i], h.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}

// publish runs callbacks outside the lock so they may unsubscribe themselves.
func (h *hub) publish(ev SessionEvent) {
	h.mu.Lock()
	subs := make([]*subscriber, len(h.subscribers))
	copy(subs, h.subscribers)
	h.mu.Unlock()

	for _, s := range subs {
		s.fn(ev)
	}
}

func (h *hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}
