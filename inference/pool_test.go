package inference

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

const testModelPath = "../testdata/ner_model.onnx"

// skipIfNoModel skips tests that need a real ONNX model on disk.
func skipIfNoModel(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(testModelPath); err != nil {
		t.Skipf("Skipping: model not available at %s", testModelPath)
	}
}

func TestNewPool_MissingModel(t *testing.T) {
	_, err := NewPool("nonexistent/model.onnx", 1)
	if err == nil {
		t.Fatal("expected error for missing model")
	}
}

func TestNewPool_InvalidSize(t *testing.T) {
	skipIfNoModel(t)

	// Size <= 0 should default to 1
	pool, err := NewPool(testModelPath, 0)
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	defer func() { _ = pool.Close() }()

	if pool.Size() != 1 {
		t.Errorf("expected size 1 for invalid input, got %d", pool.Size())
	}
}

func TestPool_AcquireRelease(t *testing.T) {
	skipIfNoModel(t)

	pool, err := NewPool(testModelPath, 2)
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	defer func() { _ = pool.Close() }()

	ctx := context.Background()
	s1, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	s2, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	// Pool exhausted: Acquire must respect cancellation.
	cancelCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	if _, err := pool.Acquire(cancelCtx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded from exhausted pool, got: %v", err)
	}

	pool.Release(s1)
	pool.Release(s2)

	s3, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire after release failed: %v", err)
	}
	pool.Release(s3)
}

func TestPool_AcquireAfterClose(t *testing.T) {
	skipIfNoModel(t)

	pool, err := NewPool(testModelPath, 1)
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := pool.Acquire(context.Background()); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("expected ErrPoolClosed, got: %v", err)
	}
}

func TestPool_CloseTwice(t *testing.T) {
	skipIfNoModel(t)

	pool, err := NewPool(testModelPath, 1)
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
