package corpus

import (
	"context"
	"sort"

	"github.com/jamesainslie/go-nerval/tagger"
)

// Config holds sweep evaluation parameters.
type Config struct {
	Threshold       float32
	PrecisionWeight float64
	RecallWeight    float64
}

// DefaultConfig returns default sweep configuration.
func DefaultConfig() Config {
	return Config{
		Threshold:       0.5,
		PrecisionWeight: 1.0,
		RecallWeight:    1.0,
	}
}

// Weighted combines pooled precision and recall under the config weights.
func (c Config) Weighted(precision, recall float64) float64 {
	if c.PrecisionWeight+c.RecallWeight <= 0 {
		return 0
	}
	return (c.PrecisionWeight*precision + c.RecallWeight*recall) /
		(c.PrecisionWeight + c.RecallWeight)
}

// SweepResult holds pooled metrics for one threshold value.
type SweepResult struct {
	Threshold float32
	Pool      Pool
	Weighted  float64
}

// SweepThresholds generates threshold values from min to max with given step.
func SweepThresholds(min, max, step float32) []float32 {
	var thresholds []float32
	for t := min; t < max; t += step {
		thresholds = append(thresholds, t)
	}
	return thresholds
}

// Sweep evaluates the corpus at each confidence threshold and returns the
// results sorted by weighted score, best first. The tagger is re-created per
// threshold since the threshold is fixed at construction.
func Sweep(ctx context.Context, docs []*Document, modelPath, tokenizerPath, labelsPath string, cfg Config, thresholds []float32) ([]SweepResult, error) {
	var results []SweepResult

	for _, threshold := range thresholds {
		tg, err := tagger.New(modelPath, tokenizerPath, labelsPath,
			tagger.WithThreshold(threshold))
		if err != nil {
			return nil, err
		}

		var pool Pool
		for _, doc := range docs {
			rep, err := EvaluateDocument(ctx, tg, doc)
			if err != nil {
				_ = tg.Close()
				return nil, err
			}
			pool.Add(rep)
		}
		_ = tg.Close()

		score := pool.Score()
		results = append(results, SweepResult{
			Threshold: threshold,
			Pool:      pool,
			Weighted:  cfg.Weighted(score.Precision, score.Recall),
		})
	}

	// Sort by weighted score descending
	sort.Slice(results, func(i, j int) bool {
		return results[i].Weighted > results[j].Weighted
	})

	return results, nil
}
