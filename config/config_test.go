package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the dotenv lookup at a file that does not exist and clears known keys.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("SIMSCORE_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	for _, k := range []string{
		"OPENAI_API_KEY", "SIMSCORE_PROVIDER", "SIMSCORE_MODEL", "SIMSCORE_BASE_URL", "OLLAMA_URL",
		"SIMSCORE_PACE", "SIMSCORE_DATA_FILE", "SIMSCORE_PLOT_DIR", "SIMSCORE_RESULTS",
		"SIMSCORE_OUTPUT_JSON", "SIMSCORE_S3_BUCKET", "SIMSCORE_REDIS_ADDR", "SIMSCORE_POSTGRES_DSN",
		"SIMSCORE_LOG_LEVEL",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.Embedder.Provider)
	assert.Equal(t, "sk-env", cfg.Embedder.APIKey)
	assert.Equal(t, time.Second, cfg.Embedder.Pace)
	assert.Equal(t, "academic_bible_comparison.json", cfg.Input.DataFile)
	assert.Equal(t, "plots", cfg.Output.PlotDir)
	assert.Equal(t, "embedding_results.json", cfg.Output.ResultsFile)
	assert.Equal(t, SinkFile, cfg.Output.Sink)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_MissingKey(t *testing.T) {
	isolate(t)
	_, err := Load()
	assert.ErrorContains(t, err, "OPENAI_API_KEY")
}

func TestLoad_DotenvFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OPENAI_API_KEY=sk-file\nSIMSCORE_PACE=250ms\n"), 0600))
	t.Setenv("SIMSCORE_ENV_FILE", path)
	// godotenv sets variables in the process environment; t.Setenv restores them afterwards.
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-file", cfg.Embedder.APIKey)
	assert.Equal(t, 250*time.Millisecond, cfg.Embedder.Pace)
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OPENAI_API_KEY=sk-file\n"), 0600))
	t.Setenv("SIMSCORE_ENV_FILE", path)
	t.Setenv("OPENAI_API_KEY", "sk-env")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-env", cfg.Embedder.APIKey)
}

func TestLoad_PaceSeconds(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "k")
	t.Setenv("SIMSCORE_PACE", "0.5")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.Embedder.Pace)

	t.Setenv("SIMSCORE_PACE", "soon")
	_, err = Load()
	assert.Error(t, err)
}

func TestValidate_Sinks(t *testing.T) {
	base := Config{Embedder: EmbedderConfig{Provider: ProviderOpenAI, APIKey: "k"}}

	for sink, want := range map[string]string{
		SinkS3:       "SIMSCORE_S3_BUCKET",
		SinkRedis:    "SIMSCORE_REDIS_ADDR",
		SinkPostgres: "SIMSCORE_POSTGRES_DSN",
		"mongo":      "unknown results sink",
	} {
		cfg := base
		cfg.Output.Sink = sink
		assert.ErrorContains(t, cfg.Validate(), want, sink)
	}

	cfg := base
	cfg.Output.Sink = SinkFile
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Providers(t *testing.T) {
	cfg := Config{Embedder: EmbedderConfig{Provider: ProviderOllama}, Output: OutputConfig{Sink: SinkFile}}
	assert.ErrorContains(t, cfg.Validate(), "SIMSCORE_MODEL")
	cfg.Embedder.Model = "nomic-embed-text"
	assert.NoError(t, cfg.Validate())
	cfg.Embedder.Provider = "cohere"
	assert.ErrorContains(t, cfg.Validate(), "unknown provider")
}
