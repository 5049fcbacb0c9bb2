package postcrew

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Session is the isolated conversation context of a single run.
type Session interface {
	ID() string
	AppName() string
	UserID() string
	History() []*Message
	Append(context.Context, []*Message) error
}

// SessionService creates and tracks sessions.
type SessionService interface {
	CreateSession(ctx context.Context, appName, userID string) (Session, error)
	DeleteSession(ctx context.Context, appName, userID, sessionID string) error
}

type sessionKey struct {
	appName   string
	userID    string
	sessionID string
}

// InMemorySessionService keeps sessions in process memory.
type InMemorySessionService struct {
	m        sync.RWMutex
	sessions map[sessionKey]*sessionInMemory
}

// NewInMemorySessionService creates an empty in-memory session service.
func NewInMemorySessionService() *InMemorySessionService {
	return &InMemorySessionService{sessions: make(map[sessionKey]*sessionInMemory)}
}

// CreateSession creates a session with a fresh UUID.
func (s *InMemorySessionService) CreateSession(ctx context.Context, appName, userID string) (Session, error) {
	session := &sessionInMemory{
		id:      uuid.NewString(),
		appName: appName,
		userID:  userID,
	}
	s.m.Lock()
	defer s.m.Unlock()
	s.sessions[sessionKey{appName, userID, session.id}] = session
	return session, nil
}

// DeleteSession discards a session. Deleting an unknown session is not an error.
func (s *InMemorySessionService) DeleteSession(ctx context.Context, appName, userID, sessionID string) error {
	s.m.Lock()
	defer s.m.Unlock()
	delete(s.sessions, sessionKey{appName, userID, sessionID})
	return nil
}

// Len returns the number of live sessions.
func (s *InMemorySessionService) Len() int {
	s.m.RLock()
	defer s.m.RUnlock()
	return len(s.sessions)
}

// sessionInMemory is an in-memory implementation of the Session interface.
type sessionInMemory struct {
	id      string
	appName string
	userID  string
	history []*Message
	m       sync.RWMutex
}

func (s *sessionInMemory) ID() string {
	return s.id
}
func (s *sessionInMemory) AppName() string {
	return s.appName
}
func (s *sessionInMemory) UserID() string {
	return s.userID
}
func (s *sessionInMemory) History() []*Message {
	s.m.RLock()
	defer s.m.RUnlock()
	return slices.Clone(s.history)
}
func (s *sessionInMemory) Append(ctx context.Context, history []*Message) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.history = append(s.history, history...)
	return nil
}
