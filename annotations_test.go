package nerval

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseAnnotations(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Span
		wantErr bool
	}{
		{
			name:  "valid",
			input: `{"entities": [[42, 48, "PERSON"], [49, 62, "ORG"]]}`,
			want:  []Span{{42, 48, "PERSON"}, {49, 62, "ORG"}},
		},
		{
			name:  "empty list",
			input: `{"entities": []}`,
			want:  []Span{},
		},
		{
			name:    "invalid json",
			input:   `{"entities": [[1, 2`,
			wantErr: true,
		},
		{
			name:    "missing key",
			input:   `{"spans": [[1, 2, "X"]]}`,
			wantErr: true,
		},
		{
			name:    "entities not an array",
			input:   `{"entities": {"a": 1}}`,
			wantErr: true,
		},
		{
			name:    "wrong arity",
			input:   `{"entities": [[1, 2]]}`,
			wantErr: true,
		},
		{
			name:    "extra field",
			input:   `{"entities": [[1, 2, "X", "Y"]]}`,
			wantErr: true,
		},
		{
			name:    "non-integer offset",
			input:   `{"entities": [[1.5, 2, "X"]]}`,
			wantErr: true,
		},
		{
			name:    "string offset",
			input:   `{"entities": [["1", 2, "X"]]}`,
			wantErr: true,
		},
		{
			name:    "numeric label",
			input:   `{"entities": [[1, 2, 3]]}`,
			wantErr: true,
		},
		{
			name:    "record not an array",
			input:   `{"entities": ["1,2,X"]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnnotations([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, ErrMalformedAnnotation) {
					t.Errorf("expected ErrMalformedAnnotation, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAnnotations() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d spans, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("span %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoadAnnotations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gold.json")
	if err := os.WriteFile(path, []byte(`{"entities": [[0, 3, "LOC"]]}`), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	spans, err := LoadAnnotations(path)
	if err != nil {
		t.Fatalf("LoadAnnotations() error = %v", err)
	}
	if len(spans) != 1 || spans[0] != (Span{0, 3, "LOC"}) {
		t.Errorf("spans = %v, want [{0 3 LOC}]", spans)
	}
}

func TestLoadAnnotations_Missing(t *testing.T) {
	_, err := LoadAnnotations(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
