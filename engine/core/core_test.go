package core

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockLap(t *testing.T) {
	src := NewManualTime(time.Unix(100, 0))
	c := NewClockWithSource(src.Now)
	assert.False(t, c.Running())
	assert.Zero(t, c.Lap())
	assert.True(t, c.Running())

	src.AdvanceSeconds(0.5)
	assert.InDelta(t, 0.5, c.Lap(), 1e-9)
	src.AdvanceSeconds(0.25)
	c.Update()
	assert.InDelta(t, 0.75, c.Elapsed(), 1e-9)
	assert.InDelta(t, 0.25, c.Lap(), 1e-9)

	c.Stop()
	src.AdvanceSeconds(1)
	c.Update()
	assert.InDelta(t, 0.75, c.Elapsed(), 1e-9)
}

func TestMetricsFPS(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < 120; i++ {
		m.Update(1.0 / 60.0)
	}
	fps, ms := m.Frame()
	assert.InDelta(t, 60, fps, 1)
	assert.InDelta(t, 1000.0/60.0, ms, 1e-6)
}

func TestIdentifierPoolReusesReleasedIDs(t *testing.T) {
	p := NewIdentifierPool(4)
	a := p.Acquire("a")
	b := p.Acquire("b")
	assert.Equal(t, uint32(0), a)
	assert.Equal(t, uint32(1), b)

	require.NoError(t, p.Release(a))
	assert.Nil(t, p.Owner(a))
	assert.Equal(t, a, p.Acquire("c"))
	assert.Equal(t, "c", p.Owner(a))
	assert.Equal(t, 2, p.Live())

	assert.ErrorIs(t, p.Release(99), ErrInvalidIdentifier)
}

func TestInputKeyTransitions(t *testing.T) {
	in := NewInput()
	var events []KeyEvent
	in.Key.ConnectFunc(func(e KeyEvent) { events = append(events, e) })

	in.ProcessKey(KEY_SPACE, true)
	assert.True(t, in.IsKeyPressed(KEY_SPACE))
	in.Update()
	assert.True(t, in.IsKeyDown(KEY_SPACE))
	assert.False(t, in.IsKeyPressed(KEY_SPACE))

	in.ProcessKey(KEY_SPACE, false)
	assert.True(t, in.IsKeyReleased(KEY_SPACE))
	require.Len(t, events, 2)
	assert.True(t, events[0].Pressed)
	assert.False(t, events[1].Pressed)
}

func TestInputMouse(t *testing.T) {
	in := NewInput()
	moved := 0
	in.Moved.ConnectFunc(func(MouseEvent) { moved++ })
	in.ProcessMouseMove(10, 20)
	in.ProcessMouseMove(10, 20)
	assert.Equal(t, 1, moved)

	in.ProcessButton(BUTTON_LEFT, true)
	assert.True(t, in.IsButtonDown(BUTTON_LEFT))
	x, y := in.MousePosition()
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.0, y)
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	t.Cleanup(func() {
		SetLogOutput(nopWriter{})
		_ = SetLogLevel("info")
	})

	require.NoError(t, SetLogLevel("warn"))
	LogInfo("hidden %d", 1)
	assert.Empty(t, buf.String())
	LogWarn("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")

	assert.Error(t, SetLogLevel("loud"))
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
