// Package chart renders one similarity bar chart per item.
package chart

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klejdi94/simscore/core"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// DefaultDir is the directory charts are written to when none is configured.
const DefaultDir = "plots"

var filenameReplacer = strings.NewReplacer(" ", "_", ":", "-")

// Filename derives the chart file name from an item id: "Genesis 1:1" -> "Genesis_1-1.png".
func Filename(itemID string) string {
	return filenameReplacer.Replace(itemID) + ".png"
}

// PNGRenderer writes 8x5 inch PNG bar charts into a directory.
type PNGRenderer struct {
	dir string
}

// NewPNGRenderer creates a renderer writing into dir, creating it if absent.
func NewPNGRenderer(dir string) (*PNGRenderer, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	return &PNGRenderer{dir: dir}, nil
}

// Dir returns the output directory.
func (r *PNGRenderer) Dir() string {
	return r.dir
}

// Path returns the file a chart for itemID is written to.
func (r *PNGRenderer) Path(itemID string) string {
	return filepath.Join(r.dir, Filename(itemID))
}

// Render implements scorer.ChartRenderer. An empty bars slice yields a chart with no bars.
func (r *PNGRenderer) Render(ctx context.Context, itemID string, bars []core.Bar) error {
	p, err := build(itemID, bars)
	if err != nil {
		return err
	}
	if err := p.Save(8*vg.Inch, 5*vg.Inch, r.Path(itemID)); err != nil {
		return fmt.Errorf("chart %s: %w", itemID, err)
	}
	return nil
}

func build(itemID string, bars []core.Bar) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Semantic Similarity to Source Text\n" + itemID
	p.Y.Label.Text = "Cosine Similarity"
	p.X.Label.Text = "Translation"

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(grid)

	if len(bars) > 0 {
		values := make(plotter.Values, len(bars))
		labels := make([]string, len(bars))
		for i, b := range bars {
			values[i] = b.Similarity
			labels[i] = b.Label
		}
		bc, err := plotter.NewBarChart(values, vg.Points(30))
		if err != nil {
			return nil, fmt.Errorf("chart %s: %w", itemID, err)
		}
		bc.LineStyle.Width = 0
		p.Add(bc)
		p.NominalX(labels...)
	}

	// Fixed vertical range, set after Add so data ranges do not widen it.
	p.Y.Min = 0
	p.Y.Max = 1
	return p, nil
}
