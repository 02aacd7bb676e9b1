package assistant

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DevSymphony/forge/internal/history"
)

// Session is one user's editing context: an undo/redo history and the
// subscribers watching it. All methods are safe for concurrent use.
type Session struct {
	ID string

	mu      sync.Mutex
	history *history.Log
	subs    map[int]chan string
	nextSub int
}

// NewSession creates a session with a random ID. historyLimit caps the
// number of retained snapshots; zero means unbounded.
func NewSession(historyLimit int) *Session {
	return &Session{
		ID:      uuid.NewString(),
		history: history.New(historyLimit),
		subs:    make(map[int]chan string),
	}
}

// Record appends code to the history and reports whether it was added.
func (s *Session) Record(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.history.Record(code) {
		return false
	}
	s.notify(code)
	return true
}

// Undo steps back in the history.
func (s *Session) Undo() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.history.Undo()
	if ok {
		s.notify(code)
	}
	return code, ok
}

// Redo steps forward in the history.
func (s *Session) Redo() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.history.Redo()
	if ok {
		s.notify(code)
	}
	return code, ok
}

// Current returns the snapshot at the history cursor.
func (s *Session) Current() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Current()
}

// State returns a copy of the history.
func (s *Session) State() history.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.State()
}

// Subscribe returns a channel that receives the current snapshot after every
// history change, and a function that ends the subscription. A slow reader
// only sees the latest snapshot.
func (s *Session) Subscribe() (<-chan string, func()) {
	ch := make(chan string, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// notify must be called with s.mu held.
func (s *Session) notify(code string) {
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- code
	}
}

// DefaultMaxSessions caps a Store built without an explicit limit.
const DefaultMaxSessions = 256

// StoreOptions configures a Store.
type StoreOptions struct {
	// HistoryLimit caps the snapshots each session keeps; zero means unbounded.
	HistoryLimit int
	// MaxSessions caps the number of live sessions. Creating one more evicts
	// the least recently used. Zero means DefaultMaxSessions.
	MaxSessions int
}

// Store keeps sessions by ID.
type Store struct {
	mu           sync.Mutex
	sessions     map[string]*Session
	lastUsed     map[string]time.Time
	historyLimit int
	maxSessions  int
	now          func() time.Time
}

// NewStore returns an empty store.
func NewStore(opts StoreOptions) *Store {
	maxSessions := opts.MaxSessions
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &Store{
		sessions:     make(map[string]*Session),
		lastUsed:     make(map[string]time.Time),
		historyLimit: opts.HistoryLimit,
		maxSessions:  maxSessions,
		now:          time.Now,
	}
}

// Create adds a new session, evicting the least recently used one when the
// store is full.
func (st *Store) Create() *Session {
	s := NewSession(st.historyLimit)

	st.mu.Lock()
	defer st.mu.Unlock()
	for len(st.sessions) >= st.maxSessions {
		st.evictOldest()
	}
	st.sessions[s.ID] = s
	st.lastUsed[s.ID] = st.now()
	return s
}

// Get looks up a session and marks it used.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if ok {
		st.lastUsed[id] = st.now()
	}
	return s, ok
}

// GetOrCreate returns the session for id, or a new one when id is unknown.
// The second result reports whether the session was created.
func (st *Store) GetOrCreate(id string) (*Session, bool) {
	if s, ok := st.Get(id); ok {
		return s, false
	}
	return st.Create(), true
}

// Prune removes sessions unused for longer than maxIdle and returns how many
// were removed.
func (st *Store) Prune(maxIdle time.Duration) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	cutoff := st.now().Add(-maxIdle)
	removed := 0
	for id, used := range st.lastUsed {
		if used.Before(cutoff) {
			delete(st.sessions, id)
			delete(st.lastUsed, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// evictOldest must be called with st.mu held.
func (st *Store) evictOldest() {
	var oldestID string
	var oldest time.Time
	for id, used := range st.lastUsed {
		if oldestID == "" || used.Before(oldest) {
			oldestID, oldest = id, used
		}
	}
	delete(st.sessions, oldestID)
	delete(st.lastUsed, oldestID)
}
