package core

// Vector is an embedding returned by a provider. Its dimensionality is fixed by the model.
type Vector []float64

// Source is the text every translation of an item is compared against.
type Source struct {
	Text string `json:"text"`
}

// Translations maps a translation label (e.g. "KJV") to its text.
type Translations = OrderedMap[string]

// Item is one unit of comparison: a source text plus its labeled translations.
type Item struct {
	Source       Source       `json:"source"`
	Translations Translations `json:"translations"`
}

// Validate reports whether the item can be scored.
func (it Item) Validate() error {
	if it.Source.Text == "" {
		return &ValidationError{Field: "source.text", Message: "must not be empty"}
	}
	return nil
}

// Dataset maps item identifiers to items in document order.
type Dataset = OrderedMap[Item]

// TranslationResult is the scoring outcome of one translation.
// Embedding and Similarity are nil when the embedding request or the comparison failed;
// Error then holds the failure message.
type TranslationResult struct {
	Text       string   `json:"text"`
	Embedding  Vector   `json:"embedding"`
	Similarity *float64 `json:"similarity_to_source"`
	Error      string   `json:"error,omitempty"`
}

// Succeeded reports whether the translation received a similarity score.
func (r TranslationResult) Succeeded() bool {
	return r.Similarity != nil
}

// ItemResult holds the source embedding and every translation outcome of one item.
type ItemResult struct {
	SourceText      string                        `json:"source_text"`
	SourceEmbedding Vector                        `json:"source_embedding"`
	Translations    OrderedMap[TranslationResult] `json:"translations"`
}

// Bar is one (label, similarity) pair drawn on an item chart.
type Bar struct {
	Label      string
	Similarity float64
}

// Bars returns the scored translations in input order. Failed translations are skipped.
func (r ItemResult) Bars() []Bar {
	bars := make([]Bar, 0, r.Translations.Len())
	for _, label := range r.Translations.Keys() {
		tr, _ := r.Translations.Get(label)
		if tr.Succeeded() {
			bars = append(bars, Bar{Label: label, Similarity: *tr.Similarity})
		}
	}
	return bars
}

// Failures returns the labels of translations that carry an error, in input order.
func (r ItemResult) Failures() []string {
	var out []string
	for _, label := range r.Translations.Keys() {
		tr, _ := r.Translations.Get(label)
		if !tr.Succeeded() {
			out = append(out, label)
		}
	}
	return out
}

// ResultSet maps item identifiers to their results; it is the persisted output of a run.
type ResultSet = OrderedMap[ItemResult]
