package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"informativos-backend/config"
	"informativos-backend/handlers"
	"informativos-backend/logger"
	"informativos-backend/metrics"
	"informativos-backend/repository"
	"informativos-backend/service"
	"informativos-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/api/option"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("server").WithError(err).Fatal("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel)
	log := logger.New("server")
	gin.SetMode(gin.ReleaseMode)
	if !cfg.DotEnvLoaded {
		log.Info("No .env file found, using environment variables")
	}

	ctx := context.Background()

	// Initialize storage
	datasetStorage, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize storage")
	}

	// Load the dataset; nothing is served without it
	informativoRepo, err := repository.LoadInformativoRepository(ctx, datasetStorage, cfg.DatasetPath, logger.New("loader"))
	if errors.Is(err, storage.ErrObjectNotFound) {
		log.WithError(err).WithFields(map[string]interface{}{
			"path":    cfg.DatasetPath,
			"storage": string(cfg.Storage.Type),
		}).Fatal("Dataset not found, set DATASET_PATH or upload one with 'informativos push'")
	}
	if err != nil {
		log.WithError(err).WithField("path", cfg.DatasetPath).Fatal("Failed to load dataset")
	}
	metrics.DatasetRecords.Set(float64(informativoRepo.Count()))
	log.WithField("records", informativoRepo.Count()).Info("Dataset loaded")

	sessionStore, closeStore, err := initQuizSessionStore(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize quiz session store")
	}
	defer closeStore()

	// Initialize Gemini client
	var generator service.TextGenerator
	if cfg.Gemini.APIKey != "" {
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.Gemini.APIKey))
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize Gemini")
		}
		defer client.Close()
		generator = service.NewGeminiGenerator(client, cfg.Gemini.Model)
		log.WithField("model", cfg.Gemini.Model).Info("Gemini client initialized")
	} else {
		log.Info("GEMINI_API_KEY not set, answering from keyword search only")
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Initialize services
	informativoService := service.NewInformativoService(
		service.WithInformativoRepository(informativoRepo),
	)
	statsService := service.NewStatsService(
		service.WithStatsInformativoRepository(informativoRepo),
	)
	quizService := service.NewQuizService(
		service.WithQuizSessionStore(sessionStore),
		service.WithAssertionGenerator(service.NewSeededAssertionGenerator(seed)),
		service.WithQuizInformativoRepository(informativoRepo),
		service.WithDefaultQuizSize(cfg.QuizSize),
		service.WithQuizLogger(logger.New("quiz")),
	)
	questionOpts := []service.QuestionServiceOption{
		service.WithQuestionInformativoRepository(informativoRepo),
		service.WithSearchLimit(cfg.SearchLimit),
		service.WithAskDelay(time.Duration(cfg.AskDelay)),
		service.WithQuestionLogger(logger.New("question")),
	}
	if generator != nil {
		questionOpts = append(questionOpts, service.WithTextGenerator(generator))
	}
	questionService := service.NewQuestionService(questionOpts...)

	router := handlers.NewRouter(handlers.Router{
		Informativos: handlers.NewInformativoHandler(informativoService, statsService),
		Quizzes:      handlers.NewQuizHandler(quizService),
		Questions:    handlers.NewQuestionHandler(questionService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}

// initQuizSessionStore opens the configured session backend and returns its closer
func initQuizSessionStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.QuizSessionStore, func(), error) {
	switch cfg.QuizStore {
	case config.QuizStoreRedis:
		client, err := repository.NewRedisClient(ctx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("address", cfg.Redis.Address).Info("Redis quiz session store initialized")
		closer := func() {
			if err := client.Close(); err != nil {
				log.WithError(err).Warn("Failed to close Redis client")
			}
		}
		return repository.NewRedisQuizSessionStore(client, time.Duration(cfg.QuizSessionTTL)), closer, nil

	case config.QuizStorePostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("Postgres quiz session store initialized")
		return repository.NewPostgresQuizSessionStore(pool), pool.Close, nil

	default:
		log.Info("In-memory quiz session store initialized")
		return repository.NewMemoryQuizSessionStore(), func() {}, nil
	}
}
