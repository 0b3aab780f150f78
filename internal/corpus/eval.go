package corpus

import (
	"context"
	"fmt"

	nerval "github.com/jamesainslie/go-nerval"
)

// EvaluateDocument runs the recognizer over one document and scores its
// predictions. An engine failure aborts the whole document; there is no
// partial evaluation.
func EvaluateDocument(ctx context.Context, rec nerval.Recognizer, doc *Document) (*nerval.Report, error) {
	pred, err := rec.Recognize(ctx, doc.Text)
	if err != nil {
		return nil, fmt.Errorf("recognizing %s: %w", doc.ID, err)
	}

	rep, err := nerval.Evaluate(doc.Text, doc.Gold, pred)
	if err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", doc.ID, err)
	}
	return rep, nil
}

// Pool accumulates micro counts across documents.
type Pool struct {
	Counts nerval.LabelCounts
	Docs   int
}

// Add folds one document report into the pool.
func (p *Pool) Add(rep *nerval.Report) {
	p.Counts.TP += rep.MicroCounts.TP
	p.Counts.FP += rep.MicroCounts.FP
	p.Counts.FN += rep.MicroCounts.FN
	p.Docs++
}

// Score derives pooled precision/recall/F1 with zero-denominator guards.
func (p *Pool) Score() nerval.Score {
	var s nerval.Score
	tp, fp, fn := p.Counts.TP, p.Counts.FP, p.Counts.FN
	if tp+fp > 0 {
		s.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		s.Recall = float64(tp) / float64(tp+fn)
	}
	if s.Precision+s.Recall > 0 {
		s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
	}
	return s
}
