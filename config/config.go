package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"informativos-backend/models"
	"informativos-backend/storage"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// QuizStoreType selects the quiz session backend
type QuizStoreType string

const (
	QuizStoreMemory   QuizStoreType = "memory"
	QuizStoreRedis    QuizStoreType = "redis"
	QuizStorePostgres QuizStoreType = "postgres"
)

// Duration is a time.Duration written as "1s", "30m" in YAML
type Duration time.Duration

// UnmarshalYAML parses a Go duration string
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// RedisConfig holds the Redis connection used by the redis quiz store
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GeminiConfig holds the optional LLM used to phrase answers
type GeminiConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

// Config is the full application configuration
type Config struct {
	Port        string                `yaml:"port"`
	LogLevel    string                `yaml:"logLevel"`
	DatasetPath string                `yaml:"datasetPath"` // path inside the configured storage
	Storage     storage.StorageConfig `yaml:"storage"`

	QuizStore      QuizStoreType `yaml:"quizStore"`
	QuizSessionTTL Duration      `yaml:"quizSessionTTL"`
	QuizSize       int           `yaml:"quizSize"`
	Redis          RedisConfig   `yaml:"redis"`
	DatabaseURL    string        `yaml:"databaseURL"`

	SearchLimit int          `yaml:"searchLimit"`
	AskDelay    Duration     `yaml:"askDelay"`
	Gemini      GeminiConfig `yaml:"gemini"`

	// RandomSeed makes quiz generation reproducible; 0 seeds from the clock
	RandomSeed int64 `yaml:"randomSeed"`

	// DotEnvLoaded reports whether Load found a .env file
	DotEnvLoaded bool `yaml:"-"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Port:        "8080",
		LogLevel:    "info",
		DatasetPath: "informativos_stf_2021_2025.xlsx",
		Storage: storage.StorageConfig{
			Type:      storage.StorageTypeLocal,
			LocalPath: "./data",
			S3Region:  "us-east-1",
		},
		QuizStore:      QuizStoreMemory,
		QuizSessionTTL: Duration(24 * time.Hour),
		QuizSize:       5,
		Redis: RedisConfig{
			Address: "localhost:6379",
		},
		SearchLimit: 3,
		AskDelay:    Duration(time.Second),
		Gemini: GeminiConfig{
			Model: "gemini-1.5-flash",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables. A .env file in the
// working directory is loaded into the environment first.
func Load() (*Config, error) {
	cfg := Default()
	cfg.DotEnvLoaded = godotenv.Load() == nil

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.DatasetPath, "DATASET_PATH")

	if v := os.Getenv("STORAGE_TYPE"); v != "" {
		c.Storage.Type = storage.StorageType(v)
	}
	setString(&c.Storage.LocalPath, "STORAGE_LOCAL_PATH")
	setString(&c.Storage.S3Bucket, "AWS_S3_BUCKET")
	setString(&c.Storage.S3Region, "AWS_REGION")
	setString(&c.Storage.AWSAccessKey, "AWS_ACCESS_KEY_ID")
	setString(&c.Storage.AWSSecretKey, "AWS_SECRET_ACCESS_KEY")

	if v := os.Getenv("QUIZ_STORE"); v != "" {
		c.QuizStore = QuizStoreType(v)
	}
	setString(&c.Redis.Address, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.Gemini.APIKey, "GEMINI_API_KEY")
	setString(&c.Gemini.Model, "GEMINI_MODEL")

	if err := setInt(&c.Redis.DB, "REDIS_DB"); err != nil {
		return err
	}
	if err := setInt(&c.QuizSize, "QUIZ_SIZE"); err != nil {
		return err
	}
	if err := setInt(&c.SearchLimit, "SEARCH_LIMIT"); err != nil {
		return err
	}
	if err := setDuration(&c.AskDelay, "ASK_DELAY"); err != nil {
		return err
	}
	if err := setDuration(&c.QuizSessionTTL, "QUIZ_SESSION_TTL"); err != nil {
		return err
	}

	if v := os.Getenv("RANDOM_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid RANDOM_SEED %q: %w", v, err)
		}
		c.RandomSeed = seed
	}

	return nil
}

// Validate checks the combinations that cannot work at runtime
func (c *Config) Validate() error {
	switch c.QuizStore {
	case QuizStoreMemory, QuizStoreRedis:
	case QuizStorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres quiz store")
		}
	default:
		return fmt.Errorf("unknown quiz store: %s", c.QuizStore)
	}

	if c.Storage.Type == storage.StorageTypeS3 && c.Storage.S3Bucket == "" {
		return fmt.Errorf("AWS_S3_BUCKET environment variable is required for S3 storage")
	}

	if c.QuizSize <= 0 || c.QuizSize > models.MaxQuizSize {
		return fmt.Errorf("quiz size must be between 1 and %d, got %d", models.MaxQuizSize, c.QuizSize)
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = Duration(d)
	return nil
}
