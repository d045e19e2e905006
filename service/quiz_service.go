package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"informativos-backend/logger"
	"informativos-backend/metrics"
	"informativos-backend/models"
	"informativos-backend/repository"

	"github.com/google/uuid"
)

// DefaultQuizSize is the number of assertions generated when none is requested
const DefaultQuizSize = 5

var (
	// ErrSessionNotFound is returned for an unknown or expired quiz session
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrAssertionNotFound is returned for an assertion index outside the session
	ErrAssertionNotFound = errors.New("assertion not found")
	// ErrInformationalAssertion is returned when answering a statement without ground truth
	ErrInformationalAssertion = errors.New("assertion cannot be answered")
	// ErrInvalidQuizSize is returned for a negative count or one above models.MaxQuizSize
	ErrInvalidQuizSize = fmt.Errorf("quiz size must be between 0 and %d", models.MaxQuizSize)
)

// QuizService drives quiz sessions: generation, answering and scoring
type QuizService struct {
	sessionStore    repository.QuizSessionStore
	generator       *AssertionGenerator
	informativoRepo *repository.InformativoRepository
	defaultSize     int
	log             *logger.Logger
	locks           sessionLocks
}

// QuizServiceOption is a functional option for QuizService
type QuizServiceOption func(*QuizService)

// WithQuizSessionStore sets the session store
func WithQuizSessionStore(store repository.QuizSessionStore) QuizServiceOption {
	return func(s *QuizService) {
		s.sessionStore = store
	}
}

// WithAssertionGenerator sets the assertion generator
func WithAssertionGenerator(g *AssertionGenerator) QuizServiceOption {
	return func(s *QuizService) {
		s.generator = g
	}
}

// WithQuizInformativoRepository sets the record store assertions are drawn from
func WithQuizInformativoRepository(repo *repository.InformativoRepository) QuizServiceOption {
	return func(s *QuizService) {
		s.informativoRepo = repo
	}
}

// WithDefaultQuizSize sets the size used when a request asks for no count
func WithDefaultQuizSize(n int) QuizServiceOption {
	return func(s *QuizService) {
		s.defaultSize = n
	}
}

// WithQuizLogger sets the logger
func WithQuizLogger(log *logger.Logger) QuizServiceOption {
	return func(s *QuizService) {
		s.log = log
	}
}

// NewQuizService creates a new quiz service
func NewQuizService(opts ...QuizServiceOption) *QuizService {
	s := &QuizService{
		defaultSize: DefaultQuizSize,
		log:         logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *QuizService) ready() error {
	if s.sessionStore == nil {
		return errors.New("quiz session store not set")
	}
	if s.generator == nil {
		return errors.New("assertion generator not set")
	}
	if s.informativoRepo == nil {
		return errInformativoRepoNotSet
	}
	return nil
}

// ValidQuizSize reports whether n can be requested; 0 means the default size
func ValidQuizSize(n int) bool {
	return n >= 0 && n <= models.MaxQuizSize
}

func (s *QuizService) size(n int) int {
	if n <= 0 {
		return s.defaultSize
	}
	return n
}

// CreateQuizRequest represents a request to start a quiz
type CreateQuizRequest struct {
	Count int
}

// QuizResult represents a quiz session returned by the service
type QuizResult struct {
	Session *models.QuizSession
}

// Create generates a fresh set of assertions and stores a new session
func (s *QuizService) Create(ctx context.Context, req CreateQuizRequest) (*QuizResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if !ValidQuizSize(req.Count) {
		return nil, ErrInvalidQuizSize
	}

	session := &models.QuizSession{
		Assertions: s.generator.Generate(s.informativoRepo.All(), s.size(req.Count)),
		Answers:    make(models.QuizAnswers),
	}
	if err := s.sessionStore.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create quiz session: %w", err)
	}

	metrics.QuizSessions.WithLabelValues("create").Inc()
	s.log.WithFields(map[string]interface{}{
		"session_id": session.ID.String(),
		"assertions": len(session.Assertions),
	}).Info("Quiz session created")

	return &QuizResult{Session: session}, nil
}

// GetQuizRequest represents a request to load a quiz
type GetQuizRequest struct {
	ID uuid.UUID
}

// Get loads a quiz session
func (s *QuizService) Get(ctx context.Context, req GetQuizRequest) (*QuizResult, error) {
	if s.sessionStore == nil {
		return nil, errors.New("quiz session store not set")
	}

	session, err := s.load(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &QuizResult{Session: session}, nil
}

// RegenerateQuizRequest represents a request to replace a quiz's assertions
type RegenerateQuizRequest struct {
	ID    uuid.UUID
	Count int
}

// Regenerate draws a new assertion set for an existing session and clears every answer
func (s *QuizService) Regenerate(ctx context.Context, req RegenerateQuizRequest) (*QuizResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if !ValidQuizSize(req.Count) {
		return nil, ErrInvalidQuizSize
	}

	unlock := s.locks.lock(req.ID)
	defer unlock()

	session, err := s.load(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	count := req.Count
	if count <= 0 {
		count = len(session.Assertions)
	}
	session.Assertions = s.generator.Generate(s.informativoRepo.All(), s.size(count))
	session.Answers = make(models.QuizAnswers)

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	metrics.QuizSessions.WithLabelValues("regenerate").Inc()
	s.log.WithField("session_id", session.ID.String()).Info("Quiz session regenerated")

	return &QuizResult{Session: session}, nil
}

// SubmitAnswerRequest represents a true/false answer to one assertion
type SubmitAnswerRequest struct {
	ID     uuid.UUID
	Index  int
	Answer bool
}

// SubmitAnswerResult represents the feedback for a submitted answer
type SubmitAnswerResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer bool   `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// SubmitAnswer records the user's answer, overwriting any earlier one, and
// reports whether it matches the ground truth
func (s *QuizService) SubmitAnswer(ctx context.Context, req SubmitAnswerRequest) (*SubmitAnswerResult, error) {
	if s.sessionStore == nil {
		return nil, errors.New("quiz session store not set")
	}

	unlock := s.locks.lock(req.ID)
	defer unlock()

	session, err := s.load(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Index < 0 || req.Index >= len(session.Assertions) {
		return nil, ErrAssertionNotFound
	}
	assertion := session.Assertions[req.Index]
	if !assertion.Answerable() {
		return nil, ErrInformationalAssertion
	}

	if session.Answers == nil {
		session.Answers = make(models.QuizAnswers)
	}
	session.Answers[req.Index] = req.Answer

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	correct := *assertion.Answer == req.Answer
	metrics.QuizAnswers.WithLabelValues(metrics.AnswerResult(correct)).Inc()

	return &SubmitAnswerResult{
		Correct:       correct,
		CorrectAnswer: *assertion.Answer,
		Explanation:   assertion.Explanation,
	}, nil
}

// ScoreRequest represents a request for a session's running score
type ScoreRequest struct {
	ID uuid.UUID
}

// Score returns correct answers over answered assertions
func (s *QuizService) Score(ctx context.Context, req ScoreRequest) (*models.QuizScore, error) {
	if s.sessionStore == nil {
		return nil, errors.New("quiz session store not set")
	}

	session, err := s.load(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	score := session.Score()
	return &score, nil
}

func (s *QuizService) load(ctx context.Context, id uuid.UUID) (*models.QuizSession, error) {
	session, err := s.sessionStore.GetByID(ctx, id)
	if errors.Is(err, repository.ErrQuizSessionNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz session: %w", err)
	}
	return session, nil
}

func (s *QuizService) save(ctx context.Context, session *models.QuizSession) error {
	err := s.sessionStore.Update(ctx, session)
	if errors.Is(err, repository.ErrQuizSessionNotFound) {
		return ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update quiz session: %w", err)
	}
	return nil
}

// sessionLocks serializes load-modify-save cycles on the same session within
// this process. Entries are dropped once no caller holds or waits on them.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func (l *sessionLocks) lock(id uuid.UUID) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[uuid.UUID]*sessionLock)
	}
	entry, ok := l.locks[id]
	if !ok {
		entry = &sessionLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
