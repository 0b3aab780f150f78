package nerval

import (
	"fmt"
	"math"
	"os"

	"github.com/tidwall/gjson"
)

// ParseAnnotations decodes gold spans from a JSON document of the form
//
//	{"entities": [[42, 48, "PERSON"], [49, 62, "PERSON"], ...]}
//
// Every record must be a 3-element array of integer start, integer end and
// string label. Anything else is ErrMalformedAnnotation: annotations are
// ground truth, so a bad record is never clamped or dropped. Offset range
// checks against the reference text happen later, in Evaluate, because the
// annotation file alone does not know the text length.
func ParseAnnotations(data []byte) ([]Span, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrMalformedAnnotation)
	}
	entities := gjson.GetBytes(data, "entities")
	if !entities.Exists() {
		return nil, fmt.Errorf("%w: missing %q key", ErrMalformedAnnotation, "entities")
	}
	if !entities.IsArray() {
		return nil, fmt.Errorf("%w: %q is not an array", ErrMalformedAnnotation, "entities")
	}

	records := entities.Array()
	spans := make([]Span, 0, len(records))
	for i, rec := range records {
		if !rec.IsArray() {
			return nil, fmt.Errorf("%w: record %d is not an array", ErrMalformedAnnotation, i)
		}
		fields := rec.Array()
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: record %d has %d fields, want 3", ErrMalformedAnnotation, i, len(fields))
		}
		start, err := intField(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: record %d start: %v", ErrMalformedAnnotation, i, err)
		}
		end, err := intField(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: record %d end: %v", ErrMalformedAnnotation, i, err)
		}
		if fields[2].Type != gjson.String {
			return nil, fmt.Errorf("%w: record %d label is not a string", ErrMalformedAnnotation, i)
		}
		spans = append(spans, Span{Start: start, End: end, Label: fields[2].String()})
	}
	return spans, nil
}

// LoadAnnotations reads and parses a gold annotation file.
func LoadAnnotations(path string) ([]Span, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading annotations: %w", err)
	}
	spans, err := ParseAnnotations(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spans, nil
}

func intField(r gjson.Result) (int, error) {
	if r.Type != gjson.Number {
		return 0, fmt.Errorf("not a number")
	}
	if r.Num != math.Trunc(r.Num) {
		return 0, fmt.Errorf("not an integer: %v", r.Num)
	}
	return int(r.Num), nil
}
