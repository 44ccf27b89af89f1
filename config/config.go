// Package config loads simscore settings from an optional dotenv file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider names.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Result sink names.
const (
	SinkFile     = "file"
	SinkS3       = "s3"
	SinkRedis    = "redis"
	SinkPostgres = "postgres"
)

// Config holds all simscore configuration. It is built once at startup and passed to constructors.
type Config struct {
	Embedder EmbedderConfig
	Input    InputConfig
	Output   OutputConfig
	LogLevel string
}

// EmbedderConfig selects and configures the embedding provider.
type EmbedderConfig struct {
	Provider  string
	APIKey    string
	Model     string
	BaseURL   string
	OllamaURL string
	Pace      time.Duration
}

// InputConfig locates the dataset. DataFile may be a local path or s3://bucket/key.
type InputConfig struct {
	DataFile string
}

// OutputConfig locates charts and the persisted result set.
type OutputConfig struct {
	PlotDir       string
	Sink          string
	ResultsFile   string
	S3Bucket      string
	S3Prefix      string
	RedisAddr     string
	RedisPrefix   string
	PostgresDSN   string
	PostgresTable string
}

// Load reads the dotenv file named by SIMSCORE_ENV_FILE (default ".env") if it exists,
// then builds Config from the environment. Variables already set in the environment
// take precedence over the file.
func Load() (Config, error) {
	envFile := getenv("SIMSCORE_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load %s: %w", envFile, err)
	}
	pace, err := getenvDuration("SIMSCORE_PACE", time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Embedder: EmbedderConfig{
			Provider:  strings.ToLower(getenv("SIMSCORE_PROVIDER", ProviderOpenAI)),
			APIKey:    os.Getenv("OPENAI_API_KEY"),
			Model:     os.Getenv("SIMSCORE_MODEL"),
			BaseURL:   os.Getenv("SIMSCORE_BASE_URL"),
			OllamaURL: os.Getenv("OLLAMA_URL"),
			Pace:      pace,
		},
		Input: InputConfig{
			DataFile: getenv("SIMSCORE_DATA_FILE", "academic_bible_comparison.json"),
		},
		Output: OutputConfig{
			PlotDir:       getenv("SIMSCORE_PLOT_DIR", "plots"),
			Sink:          strings.ToLower(getenv("SIMSCORE_RESULTS", SinkFile)),
			ResultsFile:   getenv("SIMSCORE_OUTPUT_JSON", "embedding_results.json"),
			S3Bucket:      os.Getenv("SIMSCORE_S3_BUCKET"),
			S3Prefix:      os.Getenv("SIMSCORE_S3_PREFIX"),
			RedisAddr:     os.Getenv("SIMSCORE_REDIS_ADDR"),
			RedisPrefix:   getenv("SIMSCORE_REDIS_KEY", "simscore:"),
			PostgresDSN:   os.Getenv("SIMSCORE_POSTGRES_DSN"),
			PostgresTable: getenv("SIMSCORE_POSTGRES_TABLE", "similarity_results"),
		},
		LogLevel: getenv("SIMSCORE_LOG_LEVEL", "info"),
	}
	return cfg, cfg.Validate()
}

// Validate reports missing settings for the selected provider and result sink.
func (c Config) Validate() error {
	var errs []error
	switch c.Embedder.Provider {
	case ProviderOpenAI:
		if c.Embedder.APIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required for the openai provider"))
		}
	case ProviderOllama:
		if c.Embedder.Model == "" {
			errs = append(errs, errors.New("SIMSCORE_MODEL is required for the ollama provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown provider %q (want openai or ollama)", c.Embedder.Provider))
	}
	switch c.Output.Sink {
	case SinkFile:
	case SinkS3:
		if c.Output.S3Bucket == "" {
			errs = append(errs, errors.New("SIMSCORE_S3_BUCKET is required for the s3 results sink"))
		}
	case SinkRedis:
		if c.Output.RedisAddr == "" {
			errs = append(errs, errors.New("SIMSCORE_REDIS_ADDR is required for the redis results sink"))
		}
	case SinkPostgres:
		if c.Output.PostgresDSN == "" {
			errs = append(errs, errors.New("SIMSCORE_POSTGRES_DSN is required for the postgres results sink"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown results sink %q (want file, s3, redis or postgres)", c.Output.Sink))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getenvDuration accepts Go durations ("1s", "250ms") or plain seconds ("1", "0.5").
func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return 0, fmt.Errorf("config: %s: invalid duration %q", key, v)
}
