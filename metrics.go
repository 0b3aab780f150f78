package nerval

import "fmt"

// LabelCounts holds raw outcome counts for one label (or pooled labels).
type LabelCounts struct {
	TP int
	FP int
	FN int
}

// Score holds derived precision/recall/F1 for one label or an average.
// All three are 0 when their denominators are 0.
type Score struct {
	Precision float64
	Recall    float64
	F1        float64
}

// scoreFrom derives a Score from raw counts with zero-denominator guards.
func scoreFrom(c LabelCounts) Score {
	var s Score
	if c.TP+c.FP > 0 {
		s.Precision = float64(c.TP) / float64(c.TP+c.FP)
	}
	if c.TP+c.FN > 0 {
		s.Recall = float64(c.TP) / float64(c.TP+c.FN)
	}
	if s.Precision+s.Recall > 0 {
		s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
	}
	return s
}

// Outcome pairs one prediction with its match status, in input order.
type Outcome struct {
	Span   Span
	Status PredStatus
}

// Report is the complete result of evaluating one document.
type Report struct {
	// Outcomes lists every prediction with its TP/FP status, preserving
	// the reading order the engine returned them in.
	Outcomes []Outcome
	// Missed lists gold spans no prediction matched, in gold order.
	Missed []Span
	// Confusion is the (true label, predicted label) count table.
	Confusion *Confusion
	// Counts, Scores and Support are keyed by entity label.
	// Support is the number of gold spans per label.
	Counts  map[string]LabelCounts
	Scores  map[string]Score
	Support map[string]int
	// Macro is the unweighted mean of per-label scores; Micro is derived
	// from counts pooled across labels.
	Macro       Score
	Micro       Score
	MicroCounts LabelCounts
}

// Labels returns the sorted entity labels the report covers.
func (r *Report) Labels() []string {
	return r.Confusion.EntityLabels()
}

// Aggregate turns match classifications into a confusion table and derived
// metrics. The inputs must be the slices Match was called with, together
// with its result.
//
// Each matched gold span contributes one (L, L) pair, each missed gold span
// one (L, O) pair and each false-positive prediction one (O, L) pair.
// True-positive predictions contribute nothing beyond the pair already
// emitted for their gold counterpart, so matched pairs are counted once.
func Aggregate(gold, pred []Span, mr MatchResult) *Report {
	labelSet := make(map[string]struct{})
	for _, s := range gold {
		labelSet[s.Label] = struct{}{}
	}
	for _, s := range pred {
		labelSet[s.Label] = struct{}{}
	}
	labels := make([]string, 0, len(labelSet))
	for l := range labelSet {
		labels = append(labels, l)
	}

	conf := NewConfusion(labels)
	rep := &Report{
		Confusion: conf,
		Counts:    make(map[string]LabelCounts),
		Scores:    make(map[string]Score),
		Support:   make(map[string]int),
	}

	for i, g := range gold {
		rep.Support[g.Label]++
		if mr.Gold[i] == Matched {
			conf.Add(g.Label, g.Label)
		} else {
			conf.Add(g.Label, NoneLabel)
			rep.Missed = append(rep.Missed, g)
		}
	}
	for i, p := range pred {
		rep.Outcomes = append(rep.Outcomes, Outcome{Span: p, Status: mr.Pred[i]})
		if mr.Pred[i] == FalsePositive {
			conf.Add(NoneLabel, p.Label)
		}
	}

	var macroSum Score
	entityLabels := conf.EntityLabels()
	for _, l := range entityLabels {
		tp := conf.Count(l, l)
		c := LabelCounts{
			TP: tp,
			FP: conf.ColSum(l) - tp,
			FN: conf.RowSum(l) - tp,
		}
		s := scoreFrom(c)
		rep.Counts[l] = c
		rep.Scores[l] = s

		rep.MicroCounts.TP += c.TP
		rep.MicroCounts.FP += c.FP
		rep.MicroCounts.FN += c.FN
		macroSum.Precision += s.Precision
		macroSum.Recall += s.Recall
		macroSum.F1 += s.F1
	}

	if n := len(entityLabels); n > 0 {
		rep.Macro = Score{
			Precision: macroSum.Precision / float64(n),
			Recall:    macroSum.Recall / float64(n),
			F1:        macroSum.F1 / float64(n),
		}
	}
	rep.Micro = scoreFrom(rep.MicroCounts)

	return rep
}

// Evaluate validates gold and predicted spans against text, matches them and
// aggregates the result. It is a pure function of its inputs and safe to run
// concurrently on different documents.
//
// Both empty inputs yield an all-zero report, not an error.
func Evaluate(text string, gold, pred []Span) (*Report, error) {
	if err := ValidateSpans(gold, len(text)); err != nil {
		return nil, fmt.Errorf("gold spans: %w", err)
	}
	if err := ValidateSpans(pred, len(text)); err != nil {
		return nil, fmt.Errorf("predicted spans: %w", err)
	}
	mr := Match(gold, pred)
	return Aggregate(gold, pred, mr), nil
}
