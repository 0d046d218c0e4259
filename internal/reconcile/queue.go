package reconcile

import "sync"

// Patch is a not-yet-confirmed local transform applied to a display list.
// Patches stay queued until the next authoritative refresh, after which
// server truth wins unconditionally.
type Patch[T any] func([]T) []T

// Queue owns the ordered list of pending patches. All methods are safe for
// concurrent use and none of them block.
type Queue[T any] struct {
	mu      sync.Mutex
	patches []Patch[T]
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Enqueue appends a patch; it is not executed until Materialize.
func (q *Queue[T]) Enqueue(p Patch[T]) {
	q.mu.Lock()
	q.patches = append(q.patches, p)
	q.mu.Unlock()
}

// Materialize folds the queued patches over base in insertion order and
// returns the result. base itself is never mutated; patches receive a copy.
func (q *Queue[T]) Materialize(base []T) []T {
	q.mu.Lock()
	patches := make([]Patch[T], len(q.patches))
	copy(patches, q.patches)
	q.mu.Unlock()

	out := make([]T, len(base))
	copy(out, base)
	for _, p := range patches {
		out = p(out)
	}
	return out
}

// Reset drops every queued patch. Called after each successful refresh.
func (q *Queue[T]) Reset() {
	q.mu.Lock()
	q.patches = nil
	q.mu.Unlock()
}

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.patches)
}
