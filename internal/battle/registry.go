package battle

import (
	"log/slog"
	"sync"
)

// Registry tracks live sessions by id. A session leaves the registry on its
// own when the battle ends, or through End.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{sessions: make(map[string]*Session), logger: logger}
}

// Start creates a session and registers it.
func (r *Registry) Start(opts Options) (*Session, error) {
	s, err := New(opts)
	if err != nil {
		return nil, err
	}
	r.Add(s)
	return s, nil
}

// Add registers an existing session that has not ended yet.
func (r *Registry) Add(s *Session) {
	s.mu.Lock()
	s.onOver = func(done *Session) { r.End(done.ID()) }
	over := s.state() == StateBattleOver
	s.mu.Unlock()
	if over {
		return
	}
	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// End forgets a session. Unknown ids are ignored.
func (r *Registry) End(id string) {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	n := len(r.sessions)
	r.mu.Unlock()
	if ok {
		r.logger.Debug("session removed", "session", id, "live", n)
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
