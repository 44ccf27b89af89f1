package scorer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/klejdi94/simscore/core"
)

// ChartRenderer draws one chart per item from its scored translations.
type ChartRenderer interface {
	Render(ctx context.Context, itemID string, bars []core.Bar) error
}

// Summary counts the outcomes of a run.
type Summary struct {
	Items  int
	Scored int
	Failed int
}

// Runner scores a dataset item by item and renders each item's chart as soon as it is scored.
type Runner struct {
	scorer *Scorer
	charts ChartRenderer
	logger *slog.Logger
}

// NewRunner creates a runner. charts may be nil to skip rendering; logger defaults to slog.Default().
func NewRunner(s *Scorer, charts ChartRenderer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{scorer: s, charts: charts, logger: logger}
}

// Run processes items strictly in dataset order and returns the full result set.
// Translation failures are recorded and logged; any other failure aborts the run.
func (r *Runner) Run(ctx context.Context, ds core.Dataset) (core.ResultSet, Summary, error) {
	var (
		rs  core.ResultSet
		sum Summary
	)
	for _, id := range ds.Keys() {
		item, _ := ds.Get(id)
		r.logger.InfoContext(ctx, "processing item", "item", id, "translations", item.Translations.Len())
		res, err := r.scorer.score(ctx, r.logger.With("item", id), item.Source.Text, item.Translations)
		if err != nil {
			return rs, sum, fmt.Errorf("item %q: %w", id, err)
		}
		rs.Set(id, res)
		sum.Items++
		sum.Failed += len(res.Failures())
		bars := res.Bars()
		sum.Scored += len(bars)
		if r.charts != nil {
			if err := r.charts.Render(ctx, id, bars); err != nil {
				return rs, sum, fmt.Errorf("item %q: chart: %w", id, err)
			}
		}
	}
	return rs, sum, nil
}
