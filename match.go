package nerval

// Match classifies predictions against gold spans using multiset exact
// matching. A prediction is a true positive iff an unconsumed gold occurrence
// with identical offsets and label remains; each gold occurrence is consumed
// at most once. Duplicate spans are therefore credited or penalized
// per occurrence: N identical gold spans and M identical predictions yield
// min(N, M) true positives, max(0, M-N) false positives and max(0, N-M)
// misses.
//
// Predictions are processed in input order. The returned statuses are
// aligned with the input slices.
func Match(gold, pred []Span) MatchResult {
	remaining := make(map[Span]int, len(gold))
	for _, g := range gold {
		remaining[g]++
	}

	predStatus := make([]PredStatus, len(pred))
	consumed := make(map[Span]int, len(pred))
	for i, p := range pred {
		if remaining[p] > 0 {
			remaining[p]--
			consumed[p]++
			predStatus[i] = TruePositive
		} else {
			predStatus[i] = FalsePositive
		}
	}

	// Earliest gold occurrences of a key count as matched; the leftover
	// occurrences are missed. Identical occurrences are interchangeable,
	// so any assignment preserving the counts is equivalent.
	goldStatus := make([]GoldStatus, len(gold))
	for i, g := range gold {
		if consumed[g] > 0 {
			consumed[g]--
			goldStatus[i] = Matched
		} else {
			goldStatus[i] = Missed
		}
	}

	return MatchResult{Pred: predStatus, Gold: goldStatus}
}
