// Package scorer compares translations to their source text by embedding cosine similarity.
package scorer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/klejdi94/simscore/core"
	"github.com/klejdi94/simscore/embedder"
)

// Scorer embeds a source once and scores every translation against it.
type Scorer struct {
	embedder embedder.Embedder
}

// New creates a scorer backed by e. Pacing and logging are applied by wrapping e (see package middleware).
func New(e embedder.Embedder) *Scorer {
	return &Scorer{embedder: e}
}

// ScoreItem requests the source embedding once, then scores each translation in input order.
// A failed source embedding is returned as an error. A failed translation is recorded in
// the result with a nil embedding and similarity and its error message; scoring continues.
func (s *Scorer) ScoreItem(ctx context.Context, sourceText string, translations core.Translations) (core.ItemResult, error) {
	return s.score(ctx, nil, sourceText, translations)
}

// score is ScoreItem with an optional logger that receives a line per failed
// translation as soon as it fails, before the next one is requested.
func (s *Scorer) score(ctx context.Context, logger *slog.Logger, sourceText string, translations core.Translations) (core.ItemResult, error) {
	src := embedder.Request(ctx, s.embedder, sourceText)
	if !src.OK() {
		return core.ItemResult{}, fmt.Errorf("scorer: source embedding: %w", src.Err)
	}
	out := core.ItemResult{
		SourceText:      sourceText,
		SourceEmbedding: src.Vector,
	}
	for _, label := range translations.Keys() {
		text, _ := translations.Get(label)
		tr := s.scoreTranslation(ctx, src.Vector, text)
		if !tr.Succeeded() && logger != nil {
			logger.ErrorContext(ctx, "translation failed", "label", label, "error", tr.Error)
		}
		out.Translations.Set(label, tr)
	}
	return out, nil
}

func (s *Scorer) scoreTranslation(ctx context.Context, source core.Vector, text string) core.TranslationResult {
	res := embedder.Request(ctx, s.embedder, text)
	if !res.OK() {
		return core.TranslationResult{Text: text, Error: res.Message()}
	}
	sim, err := CosineSimilarity(source, res.Vector)
	if err != nil {
		return core.TranslationResult{Text: text, Error: err.Error()}
	}
	return core.TranslationResult{Text: text, Embedding: res.Vector, Similarity: &sim}
}
