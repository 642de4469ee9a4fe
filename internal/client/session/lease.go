package session

import (
	"context"

	"github.com/dmitrijs2005/ignitegym/internal/client/apperr"
	"github.com/dmitrijs2005/ignitegym/internal/client/models"
	"github.com/dmitrijs2005/ignitegym/internal/client/notify"
)

// Lease is an exclusive claim on the Store's busy slot. It must be released
// on every exit path.
type Lease struct {
	s        *Store
	op       string
	gen      uint64
	released bool
}

// Acquire claims the busy slot for op. If another operation holds it, the
// busy rejection is shown and returned.
func (s *Store) Acquire(ctx context.Context, op string) (*Lease, error) {
	s.mu.Lock()
	if s.busy != "" {
		inFlight := s.busy
		s.mu.Unlock()

		e := apperr.Busy(op)
		s.log.Info(ctx, "operation rejected, another is in flight", "op", op, "in_flight", inFlight)
		notify.Error(ctx, s.notifier, e)
		return nil, e
	}
	s.busy = op
	gen := s.generation
	s.mu.Unlock()

	return &Lease{s: s, op: op, gen: gen}, nil
}

// Busy reports the name of the in-flight operation, or "".
func (s *Store) Busy() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Release frees the busy slot. Calling it more than once is a no-op.
func (l *Lease) Release() {
	if l.released {
		return
	}
	l.released = true

	l.s.mu.Lock()
	if l.s.busy == l.op {
		l.s.busy = ""
	}
	l.s.mu.Unlock()
}

// Valid reports whether the session is still the one the lease was taken on.
func (l *Lease) Valid() bool {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return l.s.generation == l.gen
}

// UpdateUser is Store.UpdateUser bound to the lease's session: it fails with
// ErrSessionChanged if the user signed out or in again after Acquire.
func (l *Lease) UpdateUser(ctx context.Context, user models.User) error {
	return l.s.updateUser(ctx, l.gen, user)
}
