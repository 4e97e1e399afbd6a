package calendar

import (
	"fmt"
	"sync"

	"calmirror/internal"
)

// Mux holds the authenticated session for each account id. Accounts that
// failed to authenticate are simply never registered.
type Mux struct {
	mu       sync.Mutex
	sessions map[string]internal.Session
}

func NewMux() *Mux {
	return &Mux{
		sessions: make(map[string]internal.Session),
	}
}

func (m *Mux) Get(accountID string) (internal.Session, error) {
	session, ok := m.sessions[accountID]
	if !ok {
		return nil, fmt.Errorf("account %q has no authenticated session", accountID)
	}
	return session, nil
}

func (m *Mux) Register(accountID string, session internal.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[accountID] = session
}
