package order

import (
	"sync"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/auth"
)

// Registry holds one Composer per signed-in user.
type Registry struct {
	sink     Sink
	notifier Notifier

	mu        sync.Mutex
	composers map[string]*Composer
}

func NewRegistry(sink Sink, notifier Notifier) *Registry {
	return &Registry{
		sink:      sink,
		notifier:  notifier,
		composers: make(map[string]*Composer),
	}
}

// Get returns the session's composer, creating an empty one on first use.
func (r *Registry) Get(s auth.Session) *Composer {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.composers[s.UserID]
	if !ok {
		c = NewComposer(s, r.sink, r.notifier)
		r.composers[s.UserID] = c
	}
	return c
}

// Drop forgets the user's composer and any cart it held.
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.composers, userID)
}

// Len is the number of live composers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.composers)
}
