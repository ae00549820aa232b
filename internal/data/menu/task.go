package menu

import "context"

// Task is the pending result of a store call started in the background.
type Task[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func startTask[T any](ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.val, t.err = fn(ctx)
	}()
	return t
}

// Done is closed once the result is available.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Await blocks until the task finishes or ctx ends. A ctx that ends first
// does not stop the underlying call; it only stops waiting for it.
func (t *Task[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.val, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
