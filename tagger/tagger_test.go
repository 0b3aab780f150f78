package tagger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	nerval "github.com/jamesainslie/go-nerval"
)

const (
	testModelPath     = "../testdata/ner_model.onnx"
	testTokenizerPath = "../testdata/tokenizer.json"
	testLabelsPath    = "../testdata/labels.json"
)

// skipIfNoModel skips the test if the ONNX model files are not available.
func skipIfNoModel(t *testing.T) {
	t.Helper()
	for _, p := range []string{testModelPath, testTokenizerPath, testLabelsPath} {
		if _, err := os.Stat(p); err != nil {
			t.Skipf("Skipping: model asset not available at %s", p)
		}
	}
}

func TestNew_ModelNotFound(t *testing.T) {
	_, err := New("nonexistent/model.onnx", testTokenizerPath, testLabelsPath)
	if err == nil {
		t.Fatal("expected error for nonexistent model")
	}
	if !errors.Is(err, nerval.ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got: %v", err)
	}
}

func TestNew_TokenizerNotFound(t *testing.T) {
	// A temp file stands in for the model so the model check passes.
	dir := t.TempDir()
	fakeModel := filepath.Join(dir, "model.onnx")
	if err := os.WriteFile(fakeModel, []byte("fake"), 0o644); err != nil {
		t.Fatalf("writing fake model: %v", err)
	}

	_, err := New(fakeModel, filepath.Join(dir, "missing.json"), testLabelsPath)
	if err == nil {
		t.Fatal("expected error for nonexistent tokenizer")
	}
	if !errors.Is(err, nerval.ErrTokenizerFailed) {
		t.Errorf("expected ErrTokenizerFailed, got: %v", err)
	}
}

func TestNew(t *testing.T) {
	skipIfNoModel(t)

	tg, err := New(testModelPath, testTokenizerPath, testLabelsPath)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = tg.Close() }()

	if tg.tk == nil {
		t.Error("expected non-nil tokenizer")
	}
	if tg.pool == nil {
		t.Error("expected non-nil pool")
	}
}

func TestNew_WithOptions(t *testing.T) {
	skipIfNoModel(t)

	tg, err := New(testModelPath, testTokenizerPath, testLabelsPath,
		WithThreshold(0.8),
		WithPoolSize(2),
		WithMaxSeqLen(256),
	)
	if err != nil {
		t.Fatalf("New() with options failed: %v", err)
	}
	defer func() { _ = tg.Close() }()

	if tg.threshold != 0.8 {
		t.Errorf("expected threshold 0.8, got %f", tg.threshold)
	}
	if tg.maxSeqLen != 256 {
		t.Errorf("expected maxSeqLen 256, got %d", tg.maxSeqLen)
	}
}

func TestTagger_RecognizeEmpty(t *testing.T) {
	skipIfNoModel(t)

	tg, err := New(testModelPath, testTokenizerPath, testLabelsPath)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = tg.Close() }()

	spans, err := tg.Recognize(context.Background(), "")
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if len(spans) != 0 {
		t.Errorf("expected no spans for empty text, got %v", spans)
	}
}

func TestTagger_Recognize(t *testing.T) {
	skipIfNoModel(t)

	tg, err := New(testModelPath, testTokenizerPath, testLabelsPath)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = tg.Close() }()

	text := "Barack Obama visited Paris last spring."
	spans, err := tg.Recognize(context.Background(), text)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}

	// Exact predictions depend on the model; the contract is that offsets
	// are valid against the input text.
	if err := nerval.ValidateSpans(spans, len(text)); err != nil {
		t.Errorf("invalid spans from Recognize: %v", err)
	}
}
