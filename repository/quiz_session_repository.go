package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"informativos-backend/models"

	"github.com/google/uuid"
)

// ErrQuizSessionNotFound is returned when a session id is unknown or expired
var ErrQuizSessionNotFound = errors.New("quiz session not found")

// QuizSessionStore persists quiz sessions between interactions
type QuizSessionStore interface {
	// Create stores a new session, assigning its ID and timestamps when unset
	Create(ctx context.Context, session *models.QuizSession) error

	// GetByID retrieves a session
	GetByID(ctx context.Context, id uuid.UUID) (*models.QuizSession, error)

	// Update replaces the assertions and answers of an existing session
	Update(ctx context.Context, session *models.QuizSession) error
}

// MemoryQuizSessionStore keeps sessions in process memory
type MemoryQuizSessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.QuizSession
}

// NewMemoryQuizSessionStore creates an empty in-memory store
func NewMemoryQuizSessionStore() *MemoryQuizSessionStore {
	return &MemoryQuizSessionStore{
		sessions: make(map[uuid.UUID]*models.QuizSession),
	}
}

// Create stores a new session
func (s *MemoryQuizSessionStore) Create(ctx context.Context, session *models.QuizSession) error {
	prepareNewSession(session)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = cloneSession(session)
	return nil
}

// GetByID retrieves a copy of the stored session
func (s *MemoryQuizSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*models.QuizSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrQuizSessionNotFound
	}
	return cloneSession(session), nil
}

// Update replaces an existing session
func (s *MemoryQuizSessionStore) Update(ctx context.Context, session *models.QuizSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; !ok {
		return ErrQuizSessionNotFound
	}
	session.UpdatedAt = time.Now().UTC()
	s.sessions[session.ID] = cloneSession(session)
	return nil
}

func prepareNewSession(session *models.QuizSession) {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now
	if session.Answers == nil {
		session.Answers = make(models.QuizAnswers)
	}
}

// cloneSession copies the session so callers never share the stored maps
func cloneSession(session *models.QuizSession) *models.QuizSession {
	out := *session
	out.Assertions = make(models.Assertions, len(session.Assertions))
	copy(out.Assertions, session.Assertions)
	out.Answers = make(models.QuizAnswers, len(session.Answers))
	for k, v := range session.Answers {
		out.Answers[k] = v
	}
	return &out
}
