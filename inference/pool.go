package inference

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPoolClosed is returned by Acquire after the pool has been closed.
var ErrPoolClosed = errors.New("inference: pool is closed")

// Pool holds a fixed set of sessions over the same model so that documents
// can be tagged concurrently without serializing on a single ONNX session.
// Sessions are checked out with Acquire and must be returned with Release.
type Pool struct {
	free chan *Session

	mu     sync.Mutex
	all    []*Session
	closed bool
}

// NewPool opens size sessions over the model at modelPath. A size below 1 is
// treated as 1. If any session fails to open, the ones already opened are
// closed and the error is returned.
func NewPool(modelPath string, size int) (*Pool, error) {
	if size < 1 {
		size = 1
	}

	p := &Pool{
		free: make(chan *Session, size),
		all:  make([]*Session, 0, size),
	}

	for i := 0; i < size; i++ {
		s, err := NewSession(modelPath)
		if err != nil {
			_ = p.Close()
			return nil, fmt.Errorf("opening session %d of %d: %w", i+1, size, err)
		}
		p.all = append(p.all, s)
		p.free <- s
	}

	return p, nil
}

// Acquire checks a session out of the pool, blocking until one is free or
// ctx is done. After Close it returns ErrPoolClosed.
func (p *Pool) Acquire(ctx context.Context) (*Session, error) {
	select {
	case s, ok := <-p.free:
		if !ok {
			return nil, ErrPoolClosed
		}
		return s, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a checked-out session to the pool. Releasing into a closed
// pool is a no-op; Close already tears the session down.
func (p *Pool) Release(s *Session) {
	if s == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.free <- s
}

// Close tears down every session, including ones currently checked out.
// In-flight Infer calls finish first; Session.Close waits on the session
// mutex. Close is idempotent.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.free)
	// Drain so a racing Acquire sees the closed channel, not a dead session.
	for range p.free {
	}
	sessions := p.all
	p.all = nil
	p.mu.Unlock()

	var errs []error
	for _, s := range sessions {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the number of sessions the pool was opened with.
func (p *Pool) Size() int {
	return cap(p.free)
}
