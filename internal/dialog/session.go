package dialog

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"aria/internal/ports"
)

// historyLimit caps stored exchanges per session; the classifier trims
// further by token budget.
const historyLimit = 20

// Exchange is one stored conversation turn.
type Exchange struct {
	Role    string
	Content string
}

// Session holds the mutable conversation state for one session id. All
// access goes through its methods; the mutex serializes concurrent
// turns for the same session.
type Session struct {
	ID string

	// turnMu serializes whole turns: two concurrent requests for the
	// same session id must not race on pending state.
	turnMu sync.Mutex

	mu       sync.Mutex
	pending  Pending
	wakeWord string
	history  []Exchange
}

// LockTurn blocks until the caller owns the session's turn.
func (s *Session) LockTurn() { s.turnMu.Lock() }

// UnlockTurn releases the turn.
func (s *Session) UnlockTurn() { s.turnMu.Unlock() }

// Pending returns a snapshot of the open interaction.
func (s *Session) Pending() Pending {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// SetPendingEmail opens an email confirmation for the draft.
func (s *Session) SetPendingEmail(draft EmailDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = Pending{Kind: KindEmailConfirmation, Draft: draft}
}

// SetPendingSelection opens an ordinal selection over candidates.
func (s *Session) SetPendingSelection(candidates []ports.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = Pending{Kind: KindSelection, Candidates: candidates}
}

// ClearPending closes the open interaction.
func (s *Session) ClearPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = Pending{}
}

// RecordTry bumps the failed-attempt counter for an open selection.
func (s *Session) RecordTry() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending.Kind == KindSelection {
		s.pending.Tries++
	}
}

// WakeWord returns the session's wake word.
func (s *Session) WakeWord() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wakeWord
}

// SetWakeWord updates the session's wake word; blank input is ignored.
func (s *Session) SetWakeWord(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wakeWord = word
}

// AppendHistory records one turn, evicting the oldest past the limit.
func (s *Session) AppendHistory(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, Exchange{Role: role, Content: content})
	if len(s.history) > historyLimit {
		s.history = s.history[len(s.history)-historyLimit:]
	}
}

// History returns a copy of the stored exchanges, oldest first.
func (s *Session) History() []Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Exchange, len(s.history))
	copy(out, s.history)
	return out
}

// Manager hands out sessions by id, creating them on first use.
type Manager struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	defaultWake string
}

// NewManager creates a Manager; defaultWake seeds each new session's
// wake word.
func NewManager(defaultWake string) *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		defaultWake: strings.ToLower(strings.TrimSpace(defaultWake)),
	}
}

// Session returns the session for id, creating it if needed. An empty
// id gets a fresh generated one.
func (m *Manager) Session(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id == "" {
		id = uuid.NewString()
	}
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := &Session{ID: id, wakeWord: m.defaultWake}
	m.sessions[id] = s
	return s
}
