package session

import (
	"sync"
	"time"

	"vibewear/internal/domain"
)

// Session is the server-side stand-in for one browser's state: the ordered
// design history, the cart, and the in-flight generation flag. All access
// goes through the owning Store or through the session's own mutex.
type Session struct {
	ID          string
	Designs     []domain.Design
	ActiveIndex int
	Cart        []domain.CartItem
	LastSeen    time.Time

	mu         sync.Mutex
	generating bool
}

// TryBeginGeneration marks the session as generating. It returns false when a
// generation is already in flight; a submit during `generating` is a no-op.
func (s *Session) TryBeginGeneration() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generating {
		return false
	}
	s.generating = true
	return true
}

// EndGeneration clears the in-flight flag.
func (s *Session) EndGeneration() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false
}

// AppendDesign adds a design to the history (append-only) and makes it the
// active one.
func (s *Session) AppendDesign(d domain.Design) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Designs = append(s.Designs, d)
	s.ActiveIndex = len(s.Designs) - 1
	return s.ActiveIndex
}

// SetHDImageURL records the HD regeneration result on an existing design.
// Unknown ids are ignored; the background regeneration may outlive the
// design it was started for.
func (s *Session) SetHDImageURL(designID, hdURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Designs {
		if s.Designs[i].ID == designID {
			s.Designs[i].HDImageURL = hdURL
			return
		}
	}
}

// DesignHistory returns a copy of the design history.
func (s *Session) DesignHistory() []domain.Design {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([]domain.Design, len(s.Designs))
	copy(history, s.Designs)
	return history
}

// DesignByID looks up a design in the history.
func (s *Session) DesignByID(id string) (domain.Design, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.Designs {
		if d.ID == id {
			return d, true
		}
	}
	return domain.Design{}, false
}

// CartItems returns a copy of the cart.
func (s *Session) CartItems() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.CartItem, len(s.Cart))
	copy(items, s.Cart)
	return items
}

// UpdateCart applies fn to the cart under the session lock. fn receives the
// current items and returns the replacement slice.
func (s *Session) UpdateCart(fn func(items []domain.CartItem) []domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cart = fn(s.Cart)
}

// Options configures a Store.
type Options struct {
	TTL time.Duration
}

// Store holds sessions keyed by their anonymous id and expires idle ones.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewStore(opts Options) *Store {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// GetOrCreate returns the session for the id, creating it on first use.
func (s *Store) GetOrCreate(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{ID: id}
		s.sessions[id] = sess
	}
	sess.LastSeen = time.Now()
	return sess
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.LastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
