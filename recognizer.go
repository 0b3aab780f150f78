package nerval

import "context"

// Recognizer is the inference engine under evaluation: it extracts labeled
// entity spans from text, in reading order, with offsets into the exact
// string it was given.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]Span, error)
}
