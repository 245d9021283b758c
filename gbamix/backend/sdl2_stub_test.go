//go:build !sdl2

package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSDL2Stub(t *testing.T) {
	sink, err := NewSDL2Sink(Config{SampleRate: 18157, FrameSamples: 304})
	require.NoError(t, err, "constructing the stub must succeed so backend selection can report a clean error")

	assert.ErrorIs(t, sink.Start(), ErrUnavailable)
	assert.ErrorIs(t, sink.Queue(make([]int8, 608)), ErrUnavailable)
	assert.NoError(t, sink.Close())
}
