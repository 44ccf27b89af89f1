// Command simscore scores translations against their source text by embedding cosine
// similarity, renders one bar chart per item and writes the full result set as JSON.
// It takes no flags; see package config for the environment it reads.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/klejdi94/simscore/chart"
	"github.com/klejdi94/simscore/config"
	"github.com/klejdi94/simscore/core"
	"github.com/klejdi94/simscore/dataset"
	"github.com/klejdi94/simscore/embedder"
	"github.com/klejdi94/simscore/logging"
	"github.com/klejdi94/simscore/middleware"
	"github.com/klejdi94/simscore/pacing"
	"github.com/klejdi94/simscore/results"
	"github.com/klejdi94/simscore/scorer"
	"github.com/klejdi94/simscore/storage/s3blob"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E3A867"))
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// locatedWriter is a results.Writer that can name where it wrote.
type locatedWriter interface {
	results.Writer
	Location() string
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	base, err := newEmbedder(cfg.Embedder)
	if err != nil {
		return err
	}
	metrics, counters := middleware.Metrics()
	emb := middleware.Chain(base,
		middleware.Paced(pacing.Every(cfg.Embedder.Pace)),
		metrics,
		middleware.Logging(logger),
	)

	ds, err := loadDataset(ctx, cfg.Input.DataFile)
	if err != nil {
		return err
	}
	charts, err := chart.NewPNGRenderer(cfg.Output.PlotDir)
	if err != nil {
		return err
	}
	writer, closeWriter, err := newWriter(ctx, cfg.Output)
	if err != nil {
		return err
	}
	defer closeWriter()

	rs, sum, err := scorer.NewRunner(scorer.New(emb), charts, logger).Run(ctx, ds)
	if err != nil {
		return err
	}
	if err := writer.Write(ctx, rs); err != nil {
		return err
	}
	logger.Info("run complete",
		"items", sum.Items, "scored", sum.Scored, "failed", sum.Failed,
		"requests", counters.Requests(), "request_errors", counters.Errors())

	fmt.Println()
	fmt.Println(okStyle.Render("✅ All plots saved to: " + charts.Dir() + "/"))
	fmt.Println(okStyle.Render("✅ Full embedding results saved to: " + writer.Location()))
	if sum.Failed > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("⚠ %d translation(s) could not be scored; see the error fields in the results", sum.Failed)))
	}
	return nil
}

func newEmbedder(cfg config.EmbedderConfig) (embedder.Embedder, error) {
	switch cfg.Provider {
	case config.ProviderOllama:
		return embedder.NewOllama(embedder.OllamaConfig{BaseURL: cfg.OllamaURL, Model: cfg.Model})
	default:
		return embedder.NewOpenAI(embedder.OpenAIConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		})
	}
}

func loadDataset(ctx context.Context, location string) (core.Dataset, error) {
	bucket, key, ok := s3blob.ParseURL(location)
	if !ok {
		return dataset.LoadFile(location)
	}
	store, err := s3blob.NewFromConfig(ctx, bucket, "")
	if err != nil {
		return core.Dataset{}, fmt.Errorf("s3: %w", err)
	}
	return dataset.LoadBlob(ctx, store, key)
}

func newWriter(ctx context.Context, cfg config.OutputConfig) (locatedWriter, func(), error) {
	noop := func() {}
	switch cfg.Sink {
	case config.SinkS3:
		store, err := s3blob.NewFromConfig(ctx, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return nil, noop, fmt.Errorf("s3: %w", err)
		}
		return results.NewBlobWriter(store, cfg.ResultsFile), noop, nil
	case config.SinkRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, noop, fmt.Errorf("redis: %w", err)
		}
		return results.NewRedisWriter(rdb, cfg.RedisPrefix), func() { rdb.Close() }, nil
	case config.SinkPostgres:
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return nil, noop, fmt.Errorf("postgres: %w", err)
		}
		w, err := results.NewPostgresWriter(ctx, db, cfg.PostgresTable)
		if err != nil {
			db.Close()
			return nil, noop, err
		}
		return w, func() { db.Close() }, nil
	default:
		return results.NewFileWriter(cfg.ResultsFile), noop, nil
	}
}
