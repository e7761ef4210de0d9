package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"horse_portal_backend/platform/apperr"
)

const sessionNotFoundMessage = "wizard session not found"

type entry[S any] struct {
	owner    uuid.UUID
	value    S
	onClose  func()
	lastSeen time.Time
}

// Registry keeps open wizard sessions keyed by id. Each session belongs to
// the user that opened it.
type Registry[S any] struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entry[S]
	now      func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry[S any]() *Registry[S] {
	return &Registry[S]{sessions: make(map[uuid.UUID]*entry[S]), now: time.Now}
}

// Open stores value for owner and returns the new session id. onClose runs
// exactly once when the session is closed or expires.
func (r *Registry[S]) Open(owner uuid.UUID, value S, onClose func()) uuid.UUID {
	id := uuid.New()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = &entry[S]{owner: owner, value: value, onClose: onClose, lastSeen: r.now()}
	return id
}

// Get returns the session value when owner opened it.
func (r *Registry[S]) Get(id, owner uuid.UUID) (S, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero S
	e, ok := r.sessions[id]
	if !ok {
		return zero, apperr.NotFound(sessionNotFoundMessage)
	}
	if e.owner != owner {
		return zero, apperr.Forbidden("wizard session belongs to another user")
	}
	e.lastSeen = r.now()
	return e.value, nil
}

// Close removes the session and runs its close hook.
func (r *Registry[S]) Close(id, owner uuid.UUID) error {
	r.mu.Lock()
	e, ok := r.sessions[id]
	if !ok {
		r.mu.Unlock()
		return apperr.NotFound(sessionNotFoundMessage)
	}
	if e.owner != owner {
		r.mu.Unlock()
		return apperr.Forbidden("wizard session belongs to another user")
	}
	delete(r.sessions, id)
	r.mu.Unlock()

	if e.onClose != nil {
		e.onClose()
	}
	return nil
}

// Len returns the number of open sessions.
func (r *Registry[S]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// ExpireIdle closes sessions not touched within maxIdle and returns how many.
func (r *Registry[S]) ExpireIdle(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	expired := make([]*entry[S], 0)
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, e := range expired {
		if e.onClose != nil {
			e.onClose()
		}
	}
	return len(expired)
}

// CloseAll closes every session, used on shutdown so autosavers stop.
func (r *Registry[S]) CloseAll() {
	r.mu.Lock()
	all := make([]*entry[S], 0, len(r.sessions))
	for id, e := range r.sessions {
		all = append(all, e)
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	for _, e := range all {
		if e.onClose != nil {
			e.onClose()
		}
	}
}

// RunJanitor expires idle sessions every interval until ctx is done.
func (r *Registry[S]) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.ExpireIdle(maxIdle)
		}
	}
}
