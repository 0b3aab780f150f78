package nerval

import "fmt"

// NoneLabel is the sentinel label representing the absence of an entity.
// It appears as the last row and column of a Confusion table and stands in
// for "no prediction" (false negatives) and "no gold span" (false positives).
const NoneLabel = "O"

// Span is a labeled half-open character interval [Start, End) into a single
// reference text. Offsets are only meaningful against the exact text they
// were computed from. Two spans are identical iff all three fields are equal.
type Span struct {
	Start int
	End   int
	Label string
}

// String renders the span as [start, end) LABEL.
func (s Span) String() string {
	return fmt.Sprintf("[%d, %d) %s", s.Start, s.End, s.Label)
}

// Text returns the substring of text the span covers.
// Returns "" if the span does not fit inside text.
func (s Span) Text(text string) string {
	if s.Start < 0 || s.End > len(text) || s.Start >= s.End {
		return ""
	}
	return text[s.Start:s.End]
}

// Validate checks the span against a reference text of textLen characters.
func (s Span) Validate(textLen int) error {
	if s.Label == "" {
		return fmt.Errorf("%w: empty label at [%d, %d)", ErrInvalidSpan, s.Start, s.End)
	}
	if s.Label == NoneLabel {
		return fmt.Errorf("%w: reserved label %q at [%d, %d)", ErrInvalidSpan, NoneLabel, s.Start, s.End)
	}
	if s.Start < 0 || s.Start >= s.End || s.End > textLen {
		return fmt.Errorf("%w: offsets [%d, %d) outside [0, %d)", ErrInvalidSpan, s.Start, s.End, textLen)
	}
	return nil
}

// ValidateSpans validates every span in spans against textLen.
// The first invalid span fails the whole slice, with its index in the error.
func ValidateSpans(spans []Span, textLen int) error {
	for i, s := range spans {
		if err := s.Validate(textLen); err != nil {
			return fmt.Errorf("span %d: %w", i, err)
		}
	}
	return nil
}

// PredStatus classifies a single prediction.
type PredStatus int

const (
	// TruePositive marks a prediction that consumed a matching gold span.
	TruePositive PredStatus = iota
	// FalsePositive marks a prediction with no remaining matching gold span.
	FalsePositive
)

// String returns the two-letter tag used in reports.
func (p PredStatus) String() string {
	if p == TruePositive {
		return "TP"
	}
	return "FP"
}

// GoldStatus classifies a single gold span.
type GoldStatus int

const (
	// Matched marks a gold span consumed by some prediction.
	Matched GoldStatus = iota
	// Missed marks a gold span no prediction consumed (a false negative).
	Missed
)

// String returns "OK" for matched spans and "FN" for missed ones.
func (g GoldStatus) String() string {
	if g == Matched {
		return "OK"
	}
	return "FN"
}

// MatchResult holds the per-occurrence classification produced by Match.
// Pred is aligned with the prediction slice, Gold with the gold slice.
type MatchResult struct {
	Pred []PredStatus
	Gold []GoldStatus
}
