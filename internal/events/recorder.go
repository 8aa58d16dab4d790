package events

import "sync"

// Recorder is an Emitter that captures signals for assertions in tests
// and answers Confirm with a canned value.
type Recorder struct {
	mu            sync.Mutex
	signals       []any
	ConfirmAnswer bool
	confirms      []ConfirmRequest
}

// Emit implements Emitter.
func (r *Recorder) Emit(sig any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signals = append(r.signals, sig)
}

// Confirm implements Emitter.
func (r *Recorder) Confirm(req ConfirmRequest) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.confirms = append(r.confirms, req)
	return r.ConfirmAnswer
}

// Signals returns a copy of everything emitted so far.
func (r *Recorder) Signals() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]any, len(r.signals))
	copy(out, r.signals)
	return out
}

// Confirms returns every ConfirmRequest asked so far.
func (r *Recorder) Confirms() []ConfirmRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ConfirmRequest, len(r.confirms))
	copy(out, r.confirms)
	return out
}
