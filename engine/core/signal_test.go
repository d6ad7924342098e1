package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalStopsAtFirstHandler(t *testing.T) {
	var sig Signal[int]
	var got []string
	sig.Connect(func(v int) bool { got = append(got, "a"); return false })
	sig.Connect(func(v int) bool { got = append(got, "b"); return v > 0 })
	sig.Connect(func(v int) bool { got = append(got, "c"); return false })

	assert.True(t, sig.Emit(1))
	assert.Equal(t, []string{"a", "b"}, got)

	got = nil
	assert.False(t, sig.Emit(0))
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestSignalDisconnect(t *testing.T) {
	var sig Signal[string]
	calls := 0
	id := sig.ConnectFunc(func(string) { calls++ })
	other := sig.ConnectFunc(func(string) { calls += 10 })

	assert.True(t, sig.Disconnect(id))
	assert.False(t, sig.Disconnect(id))
	sig.Emit("x")
	assert.Equal(t, 10, calls)
	assert.Equal(t, 1, sig.Len())

	assert.True(t, sig.Disconnect(other))
	assert.False(t, sig.Emit("y"))
}

func TestSignalSlotMayDisconnectItself(t *testing.T) {
	var sig Signal[int]
	var id Subscription
	calls := 0
	id = sig.Connect(func(int) bool {
		calls++
		sig.Disconnect(id)
		return false
	})
	sig.Emit(1)
	sig.Emit(2)
	assert.Equal(t, 1, calls)
}
