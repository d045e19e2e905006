package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"informativos-backend/logger"
	"informativos-backend/metrics"
	"informativos-backend/models"
	"informativos-backend/repository"
)

// DefaultAskDelay is the pause before an answer is shown
const DefaultAskDelay = time.Second

// Answer sources
const (
	SourceKeyword = "keyword"
	SourceGemini  = "gemini"
)

// ErrEmptyQuestion is returned for a blank question
var ErrEmptyQuestion = errors.New("question is empty")

// QuestionService answers free-text questions from the record store
type QuestionService struct {
	informativoRepo *repository.InformativoRepository
	generator       TextGenerator
	limit           int
	delay           time.Duration
	log             *logger.Logger
}

// QuestionServiceOption is a functional option for QuestionService
type QuestionServiceOption func(*QuestionService)

// WithQuestionInformativoRepository sets the record store searched for answers
func WithQuestionInformativoRepository(repo *repository.InformativoRepository) QuestionServiceOption {
	return func(s *QuestionService) {
		s.informativoRepo = repo
	}
}

// WithTextGenerator sets an optional language model used to phrase answers
func WithTextGenerator(g TextGenerator) QuestionServiceOption {
	return func(s *QuestionService) {
		s.generator = g
	}
}

// WithSearchLimit sets how many records an answer is built from
func WithSearchLimit(limit int) QuestionServiceOption {
	return func(s *QuestionService) {
		s.limit = limit
	}
}

// WithAskDelay sets the pause before answering; zero disables it
func WithAskDelay(d time.Duration) QuestionServiceOption {
	return func(s *QuestionService) {
		s.delay = d
	}
}

// WithQuestionLogger sets the logger
func WithQuestionLogger(log *logger.Logger) QuestionServiceOption {
	return func(s *QuestionService) {
		s.log = log
	}
}

// NewQuestionService creates a new question service
func NewQuestionService(opts ...QuestionServiceOption) *QuestionService {
	s := &QuestionService{
		limit: DefaultSearchLimit,
		delay: DefaultAskDelay,
		log:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AskRequest represents a user question
type AskRequest struct {
	Question string
}

// AskResult represents the answer and the records it was built from
type AskResult struct {
	Answer  string               `json:"answer"`
	Source  string               `json:"source"`
	Matches []models.ScoredMatch `json:"matches"`
}

// Ask searches the records for the question and synthesizes an answer
func (s *QuestionService) Ask(ctx context.Context, req AskRequest) (*AskResult, error) {
	if s.informativoRepo == nil {
		return nil, errInformativoRepoNotSet
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	matches := FindRelevant(question, s.informativoRepo.All(), s.limit)
	records := MatchedInformativos(matches)
	metrics.SearchMatches.Observe(float64(len(matches)))

	result := &AskResult{
		Answer:  SynthesizeAnswer(records),
		Source:  SourceKeyword,
		Matches: matches,
	}

	if s.generator != nil && len(records) > 0 {
		answer, err := s.generator.Generate(ctx, BuildPrompt(records, question))
		if err != nil {
			s.log.WithError(err).Warn("Language model failed, using keyword answer")
		} else {
			result.Answer = answer
			result.Source = SourceGemini
		}
	}

	metrics.QuestionAnswers.WithLabelValues(result.Source).Inc()
	s.log.WithFields(map[string]interface{}{
		"matches": len(matches),
		"source":  result.Source,
	}).Debug("Question answered")

	return result, nil
}
