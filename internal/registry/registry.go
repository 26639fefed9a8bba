// Package registry tracks orchestrator sessions in memory, keyed by normalized name.
package registry

import (
	"sort"
	"sync"
	"time"

	"github.com/renato0307/cc-orchestrator/internal/domain"
)

// Registry maps normalized session names to their tracked info. Every method
// normalizes its name argument, so prefixed and unprefixed names address the
// same entry. Values are copied in and out.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]domain.SessionInfo

	locksMu sync.Mutex
	locks   map[string]*sessionLock
}

// sessionLock is a per-name mutex shared by every holder and waiter
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// New returns an empty registry
func New() *Registry {
	return &Registry{
		locks:    make(map[string]*sessionLock),
		sessions: make(map[string]domain.SessionInfo),
	}
}

// Put stores info under its normalized session name. The stored SessionName
// is normalized as well.
func (r *Registry) Put(info domain.SessionInfo) {
	key := domain.NormalizeSessionName(info.SessionName)
	info = info.Clone()
	info.SessionName = key

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[key] = info
}

// Get returns a copy of the tracked info
func (r *Registry) Get(name string) (domain.SessionInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, ok := r.sessions[domain.NormalizeSessionName(name)]
	if !ok {
		return domain.SessionInfo{}, false
	}
	return info.Clone(), true
}

// Has reports whether the session is tracked
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.sessions[domain.NormalizeSessionName(name)]
	return ok
}

// Delete untracks a session and reports whether it was tracked
func (r *Registry) Delete(name string) bool {
	key := domain.NormalizeSessionName(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.sessions[key]
	delete(r.sessions, key)
	return ok
}

// Update applies fn to the tracked entry in place. It returns false when the
// session is not tracked, in which case fn is not called.
func (r *Registry) Update(name string, fn func(*domain.SessionInfo)) bool {
	key := domain.NormalizeSessionName(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	info, ok := r.sessions[key]
	if !ok {
		return false
	}
	fn(&info)
	info.SessionName = key
	r.sessions[key] = info
	return true
}

// SetStatus moves a tracked session to status and refreshes its activity
// timestamp. Transitions the status table forbids are refused.
func (r *Registry) SetStatus(name string, status domain.SessionStatus, now time.Time) bool {
	applied := false
	r.Update(name, func(info *domain.SessionInfo) {
		if !domain.CanTransition(info.Status, status) {
			return
		}
		info.Status = status
		info.Touch(now)
		applied = true
	})
	return applied
}

// Snapshot returns copies of every tracked entry sorted by name
func (r *Registry) Snapshot() []domain.SessionInfo {
	r.mu.RLock()
	out := make([]domain.SessionInfo, 0, len(r.sessions))
	for _, info := range r.sessions {
		out = append(out, info.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].SessionName < out[j].SessionName })
	return out
}

// Names returns the set of tracked names
func (r *Registry) Names() map[string]struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]struct{}, len(r.sessions))
	for name := range r.sessions {
		out[name] = struct{}{}
	}
	return out
}

// Len returns the number of tracked sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Lock acquires the per-session mutex for name and returns its release func.
// Mutating operations on one session serialize on it; different sessions do
// not contend. The mutex is dropped once no caller holds or waits on it.
func (r *Registry) Lock(name string) func() {
	key := domain.NormalizeSessionName(name)

	r.locksMu.Lock()
	l, ok := r.locks[key]
	if !ok {
		l = &sessionLock{}
		r.locks[key] = l
	}
	l.refs++
	r.locksMu.Unlock()

	l.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()

			r.locksMu.Lock()
			l.refs--
			if l.refs == 0 {
				delete(r.locks, key)
			}
			r.locksMu.Unlock()
		})
	}
}

// lockCount returns how many per-session mutexes are held or awaited
func (r *Registry) lockCount() int {
	r.locksMu.Lock()
	defer r.locksMu.Unlock()
	return len(r.locks)
}
