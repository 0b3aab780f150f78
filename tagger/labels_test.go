package tagger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseLabels(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{
			name:  "bare object",
			input: `{"0": "O", "1": "B-PER", "2": "I-PER"}`,
			want:  []string{"O", "B-PER", "I-PER"},
		},
		{
			name:  "huggingface config",
			input: `{"model_type": "bert", "id2label": {"0": "O", "1": "B-LOC"}}`,
			want:  []string{"O", "B-LOC"},
		},
		{
			name:    "invalid json",
			input:   `{"0": "O"`,
			wantErr: true,
		},
		{
			name:    "not an object",
			input:   `["O", "B-PER"]`,
			wantErr: true,
		},
		{
			name:    "non-integer id",
			input:   `{"zero": "O"}`,
			wantErr: true,
		},
		{
			name:    "non-string tag",
			input:   `{"0": 1}`,
			wantErr: true,
		},
		{
			name:    "sparse ids",
			input:   `{"0": "O", "5": "B-PER"}`,
			wantErr: true,
		},
		{
			name:    "empty",
			input:   `{}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseLabels([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLabels() error = %v", err)
			}
			if m.Size() != len(tt.want) {
				t.Fatalf("Size() = %d, want %d", m.Size(), len(tt.want))
			}
			for id, tag := range tt.want {
				if got := m.Tag(id); got != tag {
					t.Errorf("Tag(%d) = %q, want %q", id, got, tag)
				}
			}
		})
	}
}

func TestLabelMap_TagOutOfRange(t *testing.T) {
	m := &LabelMap{tags: []string{"O", "B-PER"}}
	if got := m.Tag(-1); got != "O" {
		t.Errorf("Tag(-1) = %q, want O", got)
	}
	if got := m.Tag(99); got != "O" {
		t.Errorf("Tag(99) = %q, want O", got)
	}
}

func TestLoadLabels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.json")
	if err := os.WriteFile(path, []byte(`{"0": "O", "1": "B-PER"}`), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	m, err := LoadLabels(path)
	if err != nil {
		t.Fatalf("LoadLabels() error = %v", err)
	}
	if m.Size() != 2 {
		t.Errorf("Size() = %d, want 2", m.Size())
	}
}

func TestLoadLabels_Missing(t *testing.T) {
	if _, err := LoadLabels(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
