package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue_DispatchesInOrder(t *testing.T) {
	var mu sync.Mutex
	var got []any
	q := NewQueue(func(sig any) {
		mu.Lock()
		got = append(got, sig)
		mu.Unlock()
	}, nil, 8)

	q.Emit(StatusUpdate{Status: "one"})
	q.Emit(OpenSettings{})
	q.Emit(StartAndInject{ExePath: "/g/game.exe"})
	q.Close()

	assert.Equal(t, []any{
		StatusUpdate{Status: "one"},
		OpenSettings{},
		StartAndInject{ExePath: "/g/game.exe"},
	}, got)
}

func TestQueue_ConfirmDefaultsFalse(t *testing.T) {
	q := NewQueue(func(any) {}, nil, 1)
	defer q.Close()
	assert.False(t, q.Confirm(ConfirmRequest{Message: "restore?"}))
}

func TestQueue_ConfirmDelegates(t *testing.T) {
	var asked ConfirmRequest
	q := NewQueue(func(any) {}, func(req ConfirmRequest) bool {
		asked = req
		return true
	}, 1)
	defer q.Close()

	ok := q.Confirm(ConfirmRequest{Message: "restore?", ConfirmText: "Restore"})
	assert.True(t, ok)
	assert.Equal(t, "restore?", asked.Message)
}

func TestQueue_EmitAfterCloseIsDropped(t *testing.T) {
	q := NewQueue(func(any) {}, nil, 1)
	q.Close()
	assert.NotPanics(t, func() {
		q.Emit(StatusUpdate{Status: "late"})
	})
}
