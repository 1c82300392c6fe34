// Package tee splits one pull-based source into two independently paced
// branches.
//
// Values are pulled from the source lazily, by whichever branch has nothing
// left in its backlog. Every pulled value is returned to that branch and
// queued for the other one, so both branches observe every value exactly
// once and in source order, without having to be read in lockstep. The
// terminal error of the source (io.EOF for a clean end) reaches each branch
// after its backlog.
//
// A branch that is never read keeps growing its backlog for as long as the
// other branch is read. Close the branch when its values are not needed, or
// bound the backlog with WithMaxBacklog.
package tee

import (
	"errors"
	"sync"
)

var (
	// ErrClosed is returned by Next on a branch after its Close.
	ErrClosed = errors.New("tee: branch closed")

	// ErrBacklogExceeded is returned by Next on a branch that fell further
	// behind than the configured maximum backlog and was dropped.
	ErrBacklogExceeded = errors.New("tee: branch backlog exceeded")
)

// Source is a pull-based sequence that returns io.EOF after its last value.
type Source[T any] interface {
	Next() (T, error)
}

// Option configures a tee.
type Option func(*config)

type config struct {
	maxBacklog int
}

// WithMaxBacklog bounds how many values may be queued for a branch that is
// not being read. A branch that would exceed it is dropped: its backlog is
// released and its Next returns ErrBacklogExceeded. The other branch is
// unaffected. Zero means unbounded.
func WithMaxBacklog(n int) Option {
	return func(c *config) { c.maxBacklog = n }
}

// New splits src into two branches. The branches may be read from
// different goroutines. The source is only ever called by one branch at a
// time.
func New[T any](src Source[T], opts ...Option) (*Branch[T], *Branch[T]) {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	t := &tee[T]{src: src, maxBacklog: cfg.maxBacklog}
	return &Branch[T]{t: t, id: 0}, &Branch[T]{t: t, id: 1}
}

// tee is the state shared by both branches.
type tee[T any] struct {
	mu         sync.Mutex
	src        Source[T]
	maxBacklog int
	queues     [2][]T
	errs       [2]error // per-branch detach reason
	err        error    // terminal source error
}

// Branch is one of the two outputs of New.
type Branch[T any] struct {
	t  *tee[T]
	id int
}

// Next returns the next value for this branch, or the terminal error once
// the branch's backlog is drained.
func (b *Branch[T]) Next() (T, error) {
	t := b.t
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	if err := t.errs[b.id]; err != nil {
		return zero, err
	}
	if q := t.queues[b.id]; len(q) > 0 {
		v := q[0]
		q[0] = zero
		t.queues[b.id] = q[1:]
		return v, nil
	}
	if t.err != nil {
		return zero, t.err
	}

	v, err := t.src.Next()
	if err != nil {
		t.err = err
		return zero, err
	}
	other := 1 - b.id
	if t.errs[other] == nil {
		if t.maxBacklog > 0 && len(t.queues[other]) >= t.maxBacklog {
			t.errs[other] = ErrBacklogExceeded
			t.queues[other] = nil
		} else {
			t.queues[other] = append(t.queues[other], v)
		}
	}
	return v, nil
}

// Backlog returns the number of values queued for this branch.
func (b *Branch[T]) Backlog() int {
	b.t.mu.Lock()
	defer b.t.mu.Unlock()
	return len(b.t.queues[b.id])
}

// Close detaches the branch. Its backlog is released and no further values
// are queued for it. Close does not affect the other branch or the source.
func (b *Branch[T]) Close() error {
	b.t.mu.Lock()
	defer b.t.mu.Unlock()
	if b.t.errs[b.id] == nil {
		b.t.errs[b.id] = ErrClosed
	}
	b.t.queues[b.id] = nil
	return nil
}
