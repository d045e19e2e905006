package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"informativos-backend/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const quizSessionKeyPrefix = "informativos:quiz_session:"

// RedisQuizSessionStore keeps sessions as JSON values with a sliding TTL
type RedisQuizSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisQuizSessionStore creates a Redis-backed store. A zero ttl keeps sessions forever.
func NewRedisQuizSessionStore(client *redis.Client, ttl time.Duration) *RedisQuizSessionStore {
	return &RedisQuizSessionStore{client: client, ttl: ttl}
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return rdb, nil
}

func quizSessionKey(id uuid.UUID) string {
	return quizSessionKeyPrefix + id.String()
}

// Create stores a new session
func (s *RedisQuizSessionStore) Create(ctx context.Context, session *models.QuizSession) error {
	prepareNewSession(session)

	ok, err := s.client.SetNX(ctx, quizSessionKey(session.ID), mustJSON(session), s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to store quiz session: %w", err)
	}
	if !ok {
		return fmt.Errorf("quiz session %s already exists", session.ID)
	}
	return nil
}

// GetByID retrieves a session
func (s *RedisQuizSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*models.QuizSession, error) {
	data, err := s.client.Get(ctx, quizSessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrQuizSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz session: %w", err)
	}

	var session models.QuizSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode quiz session: %w", err)
	}
	if session.Answers == nil {
		session.Answers = make(models.QuizAnswers)
	}
	return &session, nil
}

// Update replaces an existing session and refreshes its TTL
func (s *RedisQuizSessionStore) Update(ctx context.Context, session *models.QuizSession) error {
	session.UpdatedAt = time.Now().UTC()

	ok, err := s.client.SetXX(ctx, quizSessionKey(session.ID), mustJSON(session), s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to update quiz session: %w", err)
	}
	if !ok {
		return ErrQuizSessionNotFound
	}
	return nil
}

// mustJSON encodes a session; the model only holds JSON-safe types
func mustJSON(session *models.QuizSession) []byte {
	data, err := json.Marshal(session)
	if err != nil {
		panic(fmt.Sprintf("encode quiz session: %v", err))
	}
	return data
}
