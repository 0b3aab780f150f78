package nerval

import (
	"math/rand"
	"testing"
)

func countPred(statuses []PredStatus, want PredStatus) int {
	n := 0
	for _, s := range statuses {
		if s == want {
			n++
		}
	}
	return n
}

func countGold(statuses []GoldStatus, want GoldStatus) int {
	n := 0
	for _, s := range statuses {
		if s == want {
			n++
		}
	}
	return n
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name       string
		gold       []Span
		pred       []Span
		wantTP     int
		wantFP     int
		wantMissed int
	}{
		{
			name:   "perfect match",
			gold:   []Span{{0, 5, "PER"}, {10, 15, "ORG"}},
			pred:   []Span{{0, 5, "PER"}, {10, 15, "ORG"}},
			wantTP: 2,
		},
		{
			name:   "empty gold means all FP",
			gold:   nil,
			pred:   []Span{{0, 3, "X"}, {4, 7, "Y"}},
			wantFP: 2,
		},
		{
			name:       "empty predictions means all missed",
			gold:       []Span{{0, 3, "X"}, {4, 7, "Y"}},
			wantMissed: 2,
		},
		{
			name:   "label mismatch is FP",
			gold:   []Span{{0, 5, "PER"}},
			pred:   []Span{{0, 5, "ORG"}},
			wantFP: 1, wantMissed: 1,
		},
		{
			name:   "offset mismatch is FP even with overlap",
			gold:   []Span{{0, 5, "PER"}},
			pred:   []Span{{0, 4, "PER"}},
			wantFP: 1, wantMissed: 1,
		},
		{
			name:   "duplicate gold consumed per occurrence",
			gold:   []Span{{0, 5, "A"}, {0, 5, "A"}},
			pred:   []Span{{0, 5, "A"}},
			wantTP: 1, wantMissed: 1,
		},
		{
			name:   "duplicate predictions beyond gold count are FP",
			gold:   []Span{{0, 5, "A"}},
			pred:   []Span{{0, 5, "A"}, {0, 5, "A"}, {0, 5, "A"}},
			wantTP: 1, wantFP: 2,
		},
		{
			name:   "both empty",
			gold:   nil,
			pred:   nil,
			wantTP: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr := Match(tt.gold, tt.pred)

			if len(mr.Pred) != len(tt.pred) {
				t.Fatalf("len(Pred) = %d, want %d", len(mr.Pred), len(tt.pred))
			}
			if len(mr.Gold) != len(tt.gold) {
				t.Fatalf("len(Gold) = %d, want %d", len(mr.Gold), len(tt.gold))
			}

			if got := countPred(mr.Pred, TruePositive); got != tt.wantTP {
				t.Errorf("TP = %d, want %d", got, tt.wantTP)
			}
			if got := countPred(mr.Pred, FalsePositive); got != tt.wantFP {
				t.Errorf("FP = %d, want %d", got, tt.wantFP)
			}
			if got := countGold(mr.Gold, Missed); got != tt.wantMissed {
				t.Errorf("Missed = %d, want %d", got, tt.wantMissed)
			}

			// Matched gold and TP predictions must agree: one-to-one links.
			if got, want := countGold(mr.Gold, Matched), countPred(mr.Pred, TruePositive); got != want {
				t.Errorf("Matched = %d, TP = %d, want equal", got, want)
			}
		})
	}
}

func TestMatch_MultiplicityGrid(t *testing.T) {
	// N identical gold occurrences, M identical predictions:
	// min(N,M) TP, max(0,M-N) FP, max(0,N-M) missed.
	span := Span{3, 9, "LOC"}
	for n := 0; n <= 3; n++ {
		for m := 0; m <= 3; m++ {
			gold := make([]Span, n)
			pred := make([]Span, m)
			for i := range gold {
				gold[i] = span
			}
			for i := range pred {
				pred[i] = span
			}

			mr := Match(gold, pred)
			wantTP := min(n, m)
			if got := countPred(mr.Pred, TruePositive); got != wantTP {
				t.Errorf("n=%d m=%d: TP = %d, want %d", n, m, got, wantTP)
			}
			if got := countPred(mr.Pred, FalsePositive); got != m-wantTP {
				t.Errorf("n=%d m=%d: FP = %d, want %d", n, m, got, m-wantTP)
			}
			if got := countGold(mr.Gold, Missed); got != n-wantTP {
				t.Errorf("n=%d m=%d: Missed = %d, want %d", n, m, got, n-wantTP)
			}
		}
	}
}

func TestMatch_OrderIndependentCounts(t *testing.T) {
	gold := []Span{{0, 5, "PER"}, {8, 12, "ORG"}, {8, 12, "ORG"}, {20, 25, "LOC"}}
	pred := []Span{{0, 5, "PER"}, {8, 12, "ORG"}, {14, 18, "PER"}, {20, 25, "MISC"}}

	base := Match(gold, pred)
	baseTP := countPred(base.Pred, TruePositive)
	baseFP := countPred(base.Pred, FalsePositive)
	baseMissed := countGold(base.Gold, Missed)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]Span, len(pred))
		copy(shuffled, pred)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		mr := Match(gold, shuffled)
		if got := countPred(mr.Pred, TruePositive); got != baseTP {
			t.Fatalf("permutation %d: TP = %d, want %d", i, got, baseTP)
		}
		if got := countPred(mr.Pred, FalsePositive); got != baseFP {
			t.Fatalf("permutation %d: FP = %d, want %d", i, got, baseFP)
		}
		if got := countGold(mr.Gold, Missed); got != baseMissed {
			t.Fatalf("permutation %d: Missed = %d, want %d", i, got, baseMissed)
		}
	}
}
