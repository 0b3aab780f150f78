// Package prosetag adapts the prose statistical NER tagger to the nerval
// Recognizer interface. Unlike the ONNX tagger it needs no model files,
// which makes it useful as a baseline engine.
package prosetag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jdkato/prose/v2"

	nerval "github.com/jamesainslie/go-nerval"
)

// Recognizer extracts entities with prose's built-in English models.
type Recognizer struct {
	logger *slog.Logger
}

// Option configures a Recognizer.
type Option func(*Recognizer)

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(r *Recognizer) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a prose-backed Recognizer.
func New(opts ...Option) *Recognizer {
	r := &Recognizer{logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recognize extracts entity spans from text in reading order.
//
// prose reports entity text and label but no offsets, so offsets are
// reconstructed by scanning forward through the text for each mention in
// order. A mention that cannot be found after the previous one (because
// tokenization altered its surface form) is dropped rather than guessed.
func (r *Recognizer) Recognize(ctx context.Context, text string) ([]nerval.Span, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(true))
	if err != nil {
		return nil, fmt.Errorf("prose document: %w", err)
	}

	ents := doc.Entities()
	mentions := make([]mention, len(ents))
	for i, e := range ents {
		mentions[i] = mention{Text: e.Text, Label: e.Label}
	}

	spans, dropped := locate(text, mentions)
	if dropped > 0 {
		r.logger.Debug("dropped unlocatable mentions", "count", dropped)
	}
	return spans, nil
}

// mention is an entity surface form with its label, before offsets are known.
type mention struct {
	Text  string
	Label string
}

// locate resolves mentions to character offsets with a single forward scan,
// so repeated mentions map to successive occurrences. Returns the spans and
// the number of mentions that could not be located.
func locate(text string, mentions []mention) ([]nerval.Span, int) {
	var spans []nerval.Span
	dropped := 0
	pos := 0
	for _, m := range mentions {
		if m.Text == "" {
			dropped++
			continue
		}
		idx := strings.Index(text[pos:], m.Text)
		if idx < 0 {
			dropped++
			continue
		}
		start := pos + idx
		end := start + len(m.Text)
		spans = append(spans, nerval.Span{Start: start, End: end, Label: m.Label})
		pos = end
	}
	return spans, dropped
}
