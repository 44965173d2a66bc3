package cart

import (
	"context"
	"sync"
	"time"

	"orderdesk/internal/core/apperror"
	"orderdesk/internal/core/id"
	"orderdesk/internal/domain/catalog"
	"orderdesk/pkg/logger"
)

// Session binds one cart to the catalog snapshot taken when the dashboard
// page mounted. All cart mutations for a session are serialized here, so
// the cart itself stays single-writer.
type Session struct {
	ID        id.ID
	Mode      Mode
	Directory *catalog.Directory

	mu         sync.Mutex
	cart       *Cart
	submitting bool
	lastSeen   time.Time
}

func newSession(mode Mode, dir *catalog.Directory) *Session {
	return &Session{
		ID:        id.New(),
		Mode:      mode,
		Directory: dir,
		cart:      New(mode, dir),
		lastSeen:  time.Now(),
	}
}

// Update runs fn against the cart under the session lock. While a
// submission is in flight all mutations are rejected, the way the
// dashboard disables its controls.
func (s *Session) Update(fn func(*Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	if s.submitting {
		return apperror.NewSubmitInProgress()
	}
	return fn(s.cart)
}

// View runs fn against the cart under the session lock without the
// submitting gate. fn must not mutate the cart.
func (s *Session) View(fn func(*Cart)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	fn(s.cart)
}

// Snapshot returns a copy of the line items and header for assembly.
func (s *Session) Snapshot() ([]LineItem, Header) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items(), s.cart.Header()
}

// BeginSubmit marks the session as submitting. Exactly one submission can
// be in flight; a second attempt gets a conflict until EndSubmit.
func (s *Session) BeginSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return apperror.NewSubmitInProgress()
	}
	s.submitting = true
	s.lastSeen = time.Now()
	return nil
}

// EndSubmit clears the submitting flag.
func (s *Session) EndSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
}

// Submitting reports whether a submission is in flight.
func (s *Session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// ResetAfterSubmit clears the cart once the external create succeeded.
// It bypasses the submitting gate; nothing else may mutate mid-flight.
func (s *Session) ResetAfterSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Reset()
	s.lastSeen = time.Now()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Registry tracks the live cart sessions, one per mounted page.
type Registry struct {
	mu       sync.RWMutex
	sessions map[id.ID]*Session
	ttl      time.Duration
}

// NewRegistry creates a session registry. Sessions idle longer than ttl
// are removed by Sweep.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[id.ID]*Session),
		ttl:      ttl,
	}
}

// Open creates a session for the given mode and catalog snapshot.
func (r *Registry) Open(mode Mode, dir *catalog.Directory) *Session {
	s := newSession(mode, dir)
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Get returns the session by ID.
func (r *Registry) Get(sessionID id.ID) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	if !ok {
		return nil, apperror.NewNotFound("session", sessionID.String())
	}
	return s, nil
}

// Close discards a session; the cart is gone with it.
func (r *Registry) Close(sessionID id.ID) {
	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep removes sessions idle past the TTL, skipping any mid-submission.
// Returns the number removed.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for sid, s := range r.sessions {
		if s.Submitting() {
			continue
		}
		if s.idleSince(now) > r.ttl {
			delete(r.sessions, sid)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions at the given interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := r.Sweep(now); removed > 0 {
				logger.Debug(ctx, "expired cart sessions removed",
					"count", removed,
					"live", r.Len())
			}
		}
	}
}
