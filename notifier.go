package flowkit

import (
	"fmt"

	"go.uber.org/multierr"
)

// Handler receives one notification. A non-nil return is collected by Fire
// and reported to its caller after the full round has run.
type Handler[T any] func(T) error

// Notifier is an ordered multicast dispatcher. Handlers fire synchronously
// in subscription order, on the caller's goroutine. The zero value is ready
// to use.
//
// A Notifier is part of the single-threaded runtime and must not be shared
// across goroutines; feed external input through Machine.Enqueue instead.
type Notifier[T any] struct {
	entries []notifierEntry[T]
	lastID  uint64
}

type notifierEntry[T any] struct {
	id uint64
	fn Handler[T]
}

// Subscription identifies one Subscribe call. Go functions are not
// comparable, so removal is by handle rather than by handler value;
// subscribing the same function twice yields two independent entries.
type Subscription struct {
	cancel func()
}

// Unsubscribe removes the subscribed handler. Calling it more than once,
// or on a zero Subscription, is a no-op.
func (s Subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Subscribe appends h to the handler list and returns its handle.
// Duplicates are allowed.
func (n *Notifier[T]) Subscribe(h Handler[T]) Subscription {
	n.lastID++
	id := n.lastID
	n.entries = append(n.entries, notifierEntry[T]{id: id, fn: h})
	return Subscription{cancel: func() { n.remove(id) }}
}

// Len returns the number of currently subscribed handlers.
func (n *Notifier[T]) Len() int {
	return len(n.entries)
}

// Fire invokes every currently subscribed handler with v, in subscription
// order. The handler list is snapshotted at entry: handlers may subscribe
// or unsubscribe during the round without affecting it. A handler error or
// panic does not stop the round; all failures are combined and returned
// once the round completes.
func (n *Notifier[T]) Fire(v T) error {
	// remove always reallocates and Subscribe only appends past our
	// length, so the slice header is a stable snapshot.
	snapshot := n.entries
	var errs error
	for _, e := range snapshot {
		errs = multierr.Append(errs, invoke(e.fn, v))
	}
	return errs
}

func invoke[T any](h Handler[T], v T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("flowkit: notifier handler panicked: %v", r)
		}
	}()
	return h(v)
}

func (n *Notifier[T]) remove(id uint64) {
	for i, e := range n.entries {
		if e.id != id {
			continue
		}
		next := make([]notifierEntry[T], 0, len(n.entries)-1)
		next = append(next, n.entries[:i]...)
		next = append(next, n.entries[i+1:]...)
		n.entries = next
		return
	}
}
