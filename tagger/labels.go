package tagger

import (
	"fmt"
	"os"
	"strconv"

	"github.com/tidwall/gjson"
)

// LabelMap maps model class ids to tag strings ("O", "B-PER", "I-PER", ...).
type LabelMap struct {
	tags []string
}

// LoadLabels reads a label map from a JSON file. Both a HuggingFace config
// carrying an "id2label" object and a bare {"0": "O", "1": "B-PER", ...}
// object are accepted. Ids must form a dense range starting at 0.
func LoadLabels(path string) (*LabelMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading labels: %w", err)
	}
	return ParseLabels(data)
}

// ParseLabels decodes a label map from JSON bytes.
func ParseLabels(data []byte) (*LabelMap, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("labels: not valid JSON")
	}
	obj := gjson.GetBytes(data, "id2label")
	if !obj.Exists() {
		obj = gjson.ParseBytes(data)
	}
	if !obj.IsObject() {
		return nil, fmt.Errorf("labels: expected an id-to-tag object")
	}

	byID := make(map[int]string)
	var parseErr error
	obj.ForEach(func(key, value gjson.Result) bool {
		id, err := strconv.Atoi(key.String())
		if err != nil {
			parseErr = fmt.Errorf("labels: class id %q is not an integer", key.String())
			return false
		}
		if value.Type != gjson.String {
			parseErr = fmt.Errorf("labels: tag for class %d is not a string", id)
			return false
		}
		byID[id] = value.String()
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(byID) == 0 {
		return nil, fmt.Errorf("labels: empty label map")
	}

	tags := make([]string, len(byID))
	for id, tag := range byID {
		if id < 0 || id >= len(tags) {
			return nil, fmt.Errorf("labels: class ids are not dense, found %d among %d classes", id, len(tags))
		}
		tags[id] = tag
	}
	for id, tag := range tags {
		if tag == "" {
			return nil, fmt.Errorf("labels: missing tag for class %d", id)
		}
	}

	return &LabelMap{tags: tags}, nil
}

// Tag returns the tag string for a class id, or "O" for out-of-range ids.
func (m *LabelMap) Tag(id int) string {
	if id < 0 || id >= len(m.tags) {
		return "O"
	}
	return m.tags[id]
}

// Size returns the number of classes.
func (m *LabelMap) Size() int {
	return len(m.tags)
}
