package nerval

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrInvalidSpan indicates a span with bad offsets or an empty label.
	ErrInvalidSpan = errors.New("nerval: invalid span")

	// ErrMalformedAnnotation indicates a gold annotation record that does
	// not follow the expected [start, end, label] structure.
	ErrMalformedAnnotation = errors.New("nerval: malformed annotation")

	// ErrModelNotFound indicates the model file does not exist.
	ErrModelNotFound = errors.New("nerval: model file not found")

	// ErrInvalidModel indicates the model file exists but is malformed.
	ErrInvalidModel = errors.New("nerval: invalid model format")

	// ErrTokenizerFailed indicates tokenizer initialization failed.
	ErrTokenizerFailed = errors.New("nerval: tokenizer initialization failed")
)
