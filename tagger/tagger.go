// Package tagger runs ONNX token-classification NER models and decodes
// their per-token predictions into labeled character spans.
package tagger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"

	nerval "github.com/jamesainslie/go-nerval"
	"github.com/jamesainslie/go-nerval/inference"
)

// chunkOverlap is the number of overlapping tokens between chunks when a
// document exceeds the model's sequence length. Overlap keeps entity
// predictions stable near chunk boundaries.
const chunkOverlap = 64

// Tagger extracts named entities using a HuggingFace-style ONNX
// token-classification model. It is safe for concurrent use.
type Tagger struct {
	tk        *tokenizer.Tokenizer
	labels    *LabelMap
	pool      *inference.Pool
	threshold float32
	maxSeqLen int
	logger    *slog.Logger
}

// New creates a Tagger from an ONNX model, a HuggingFace tokenizer.json and
// a label-map file describing the model's class ids.
func New(modelPath, tokenizerPath, labelsPath string, opts ...Option) (*Tagger, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	// Check model file exists
	if _, err := os.Stat(modelPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", nerval.ErrModelNotFound, modelPath)
		}
		return nil, fmt.Errorf("checking model file: %w", err)
	}

	// Load tokenizer
	if _, err := os.Stat(tokenizerPath); err != nil {
		return nil, fmt.Errorf("%w: %s", nerval.ErrTokenizerFailed, tokenizerPath)
	}
	tk, err := pretrained.FromFile(tokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", nerval.ErrTokenizerFailed, err)
	}

	labels, err := LoadLabels(labelsPath)
	if err != nil {
		return nil, err
	}

	// Create session pool
	pool, err := inference.NewPool(modelPath, cfg.poolSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", nerval.ErrInvalidModel, err)
	}

	return &Tagger{
		tk:        tk,
		labels:    labels,
		pool:      pool,
		threshold: cfg.threshold,
		maxSeqLen: cfg.maxSeqLen,
		logger:    cfg.logger,
	}, nil
}

// Recognize extracts entity spans from text, in reading order. Offsets are
// valid against the exact string passed in.
func (t *Tagger) Recognize(ctx context.Context, text string) ([]nerval.Span, error) {
	if text == "" {
		return nil, nil
	}

	en, err := t.tk.EncodeSingle(text, false)
	if err != nil {
		return nil, fmt.Errorf("encoding text: %w", err)
	}
	if len(en.Ids) == 0 {
		return nil, nil
	}

	probs, err := t.tokenProbs(ctx, en.Ids)
	if err != nil {
		return nil, err
	}

	spans := decode(en.Offsets, probs, t.labels, t.threshold)
	t.logger.Debug("tagged document",
		"chars", len(text), "tokens", len(en.Ids), "entities", len(spans))
	return spans, nil
}

// tokenProbs returns per-token class probabilities, chunking long inputs.
func (t *Tagger) tokenProbs(ctx context.Context, ids []int) ([][]float32, error) {
	session, err := t.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer t.pool.Release(session)

	// If sequence fits in one chunk, process directly
	if len(ids) <= t.maxSeqLen {
		logits, err := t.inferChunk(ctx, session, ids)
		if err != nil {
			return nil, err
		}
		return softmaxRows(logits), nil
	}

	// Process in overlapping chunks, averaging logits in overlap regions.
	logits := make([][]float32, len(ids))
	counts := make([]int, len(ids))

	stride := t.maxSeqLen - chunkOverlap
	for start := 0; start < len(ids); start += stride {
		end := start + t.maxSeqLen
		if end > len(ids) {
			end = len(ids)
		}

		chunkLogits, err := t.inferChunk(ctx, session, ids[start:end])
		if err != nil {
			return nil, err
		}

		for i, row := range chunkLogits {
			pos := start + i
			if logits[pos] == nil {
				logits[pos] = make([]float32, len(row))
			}
			for c, v := range row {
				logits[pos][c] += v
			}
			counts[pos]++
		}

		if end >= len(ids) {
			break
		}
	}

	for i, row := range logits {
		if counts[i] > 1 {
			for c := range row {
				row[c] /= float32(counts[i])
			}
		}
	}

	return softmaxRows(logits), nil
}

// inferChunk runs inference on a single chunk of token ids.
func (t *Tagger) inferChunk(ctx context.Context, session *inference.Session, ids []int) ([][]float32, error) {
	inputIDs := make([]int64, len(ids))
	attentionMask := make([]int64, len(ids))
	for i, id := range ids {
		inputIDs[i] = int64(id)
		attentionMask[i] = 1
	}

	return session.Infer(ctx, inputIDs, attentionMask)
}

// Close releases all resources.
func (t *Tagger) Close() error {
	if t.pool != nil {
		return t.pool.Close()
	}
	return nil
}
