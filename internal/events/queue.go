package events

import "sync"

// Handler consumes dispatched signals on the queue's own goroutine.
type Handler func(sig any)

// ConfirmFunc answers a blocking ConfirmRequest.
type ConfirmFunc func(req ConfirmRequest) bool

// Queue is a buffered fire-and-forget Emitter. Signals are dispatched in
// emission order on a single goroutine; a full queue drops the signal
// rather than block the launch sequence.
type Queue struct {
	ch      chan any
	confirm ConfirmFunc

	closeOnce sync.Once
	done      chan struct{}
}

// NewQueue starts a queue dispatching to handler. confirm may be nil, in
// which case every ConfirmRequest is answered false.
func NewQueue(handler Handler, confirm ConfirmFunc, size int) *Queue {
	if size <= 0 {
		size = 16
	}
	q := &Queue{
		ch:      make(chan any, size),
		confirm: confirm,
		done:    make(chan struct{}),
	}
	go func() {
		defer close(q.done)
		for sig := range q.ch {
			handler(sig)
		}
	}()
	return q
}

// Emit queues sig without blocking. Signals emitted after Close, or when
// the buffer is full, are dropped.
func (q *Queue) Emit(sig any) {
	defer func() {
		// Send on closed channel: emit raced Close, drop the signal.
		_ = recover()
	}()
	select {
	case q.ch <- sig:
	default:
	}
}

// Confirm answers synchronously via the configured ConfirmFunc.
func (q *Queue) Confirm(req ConfirmRequest) bool {
	if q.confirm == nil {
		return false
	}
	return q.confirm(req)
}

// Close stops dispatch after draining queued signals.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		close(q.ch)
	})
	<-q.done
}
