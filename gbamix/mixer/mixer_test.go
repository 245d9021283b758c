package mixer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbamix/go-gbamix/gbamix/fixed"
)

// testSound returns a finite mono asset at the mixer's own rate, so unit
// speed maps one source sample to one output sample.
func testSound(n int, freq Frequency) *SoundData {
	samples := make([]int8, n)
	for i := range samples {
		samples[i] = int8(i%200 - 100)
	}
	return NewSoundData(samples, freq.Hz())
}

func TestMixer_PlaySoundClaimsFreeSlot(t *testing.T) {
	m := New(Freq18157)
	snd := testSound(100, Freq18157)

	id, ok := m.PlaySound(NewSoundConfig(snd))
	require.True(t, ok, "claim on an empty pool should succeed")
	assert.Equal(t, 1, m.ActiveChannels())

	ch, ok := m.Channel(id)
	require.True(t, ok, "fresh handle should resolve")
	assert.True(t, ch.Playing())
	assert.Equal(t, 0, ch.Position(), "cursor should start at the source start")
}

func TestMixer_LowPriorityDroppedWhenFull(t *testing.T) {
	m := New(Freq18157)
	snd := testSound(100, Freq18157)

	for range NumChannels {
		_, ok := m.PlaySound(NewSoundConfig(snd))
		require.True(t, ok)
	}

	_, ok := m.PlaySound(NewSoundConfig(snd))
	assert.False(t, ok, "low priority request on a full pool should be dropped, not played")
	assert.Equal(t, NumChannels, m.ActiveChannels())
}

func TestMixer_HighPriorityEvictsLow(t *testing.T) {
	m := New(Freq18157)
	snd := testSound(100, Freq18157)

	ids := make([]ChannelID, NumChannels)
	for i := range ids {
		var ok bool
		ids[i], ok = m.PlaySound(NewSoundConfig(snd))
		require.True(t, ok)
	}

	cfg := NewSoundConfig(snd)
	cfg.Priority = PriorityHigh
	id, ok := m.PlaySound(cfg)
	require.True(t, ok, "high priority should claim a slot by evicting")
	assert.Equal(t, NumChannels, m.ActiveChannels(), "eviction should not change occupancy")

	_, ok = m.Channel(ids[0])
	assert.False(t, ok, "the evicted channel's handle should be stale")

	ch, ok := m.Channel(id)
	require.True(t, ok)
	assert.True(t, ch.Playing())
}

func TestMixer_AllHighPriorityIsFatal(t *testing.T) {
	m := New(Freq18157)
	snd := testSound(100, Freq18157)

	cfg := NewSoundConfig(snd)
	cfg.Priority = PriorityHigh
	for range NumChannels {
		_, ok := m.PlaySound(cfg)
		require.True(t, ok)
	}

	assert.Panics(t, func() { m.PlaySound(cfg) },
		"a high priority request with every slot high priority cannot be honored")

	low := NewSoundConfig(snd)
	assert.NotPanics(t, func() {
		_, ok := m.PlaySound(low)
		assert.False(t, ok, "a low priority request should still just be dropped")
	})
}

func TestMixer_PlaySoundNilSoundPanics(t *testing.T) {
	m := New(Freq18157)
	assert.Panics(t, func() { m.PlaySound(SoundConfig{}) })
}

func TestMixer_PlaySoundInvalidSpeedPanics(t *testing.T) {
	m := New(Freq18157)
	snd := testSound(100, Freq18157)

	// A bare struct literal has Speed zero; accepting it would freeze the
	// cursor and leak the slot forever.
	assert.Panics(t, func() { m.PlaySound(SoundConfig{Sound: snd, Volume: fixed.One}) })

	cfg := NewSoundConfig(snd)
	cfg.Speed = -fixed.One
	assert.Panics(t, func() { m.PlaySound(cfg) })

	assert.Equal(t, 0, m.ActiveChannels(), "rejected requests should claim nothing")
}

func TestChannel_SetSpeedInvalidPanics(t *testing.T) {
	m := New(Freq18157)
	snd := testSound(100, Freq18157)

	id, ok := m.PlaySound(NewSoundConfig(snd))
	require.True(t, ok)
	ch, ok := m.Channel(id)
	require.True(t, ok)

	assert.Panics(t, func() { ch.SetSpeed(0) })
	assert.Panics(t, func() { ch.SetSpeed(-fixed.One) })
	assert.Equal(t, fixed.One, ch.speed, "a rejected SetSpeed should leave the channel untouched")
}

func TestMixer_StaleHandleAfterStop(t *testing.T) {
	m := New(Freq18157)
	snd := testSound(100, Freq18157)

	id, ok := m.PlaySound(NewSoundConfig(snd))
	require.True(t, ok)

	ch, ok := m.Channel(id)
	require.True(t, ok)
	ch.Stop()

	_, ok = m.Channel(id)
	assert.False(t, ok, "stopped channel's handle should report no such channel")

	// The slot gets reused; the old handle must not alias the new sound.
	id2, ok := m.PlaySound(NewSoundConfig(snd))
	require.True(t, ok)
	_, ok = m.Channel(id)
	assert.False(t, ok, "old handle should stay stale after the slot is reused")
	_, ok = m.Channel(id2)
	assert.True(t, ok)
}

func TestMixer_ZeroHandleIsStale(t *testing.T) {
	m := New(Freq18157)
	_, ok := m.Channel(ChannelID{})
	assert.False(t, ok)
}

func TestMixer_PauseHoldsSlotAndPosition(t *testing.T) {
	m := New(Freq10512)
	b := m.BufferSize()
	snd := testSound(10*b, Freq10512)

	id, ok := m.PlaySound(NewSoundConfig(snd))
	require.True(t, ok)

	m.Frame()
	ch, ok := m.Channel(id)
	require.True(t, ok)
	pos := ch.Position()
	assert.Equal(t, b, pos, "unit speed should advance one source frame per output sample")

	ch.Pause()
	out := m.Frame()
	for _, s := range out {
		require.Zero(t, s, "paused channel should contribute silence")
	}

	ch, ok = m.Channel(id)
	require.True(t, ok, "paused channel should keep its slot")
	assert.True(t, ch.Paused())
	assert.Equal(t, pos, ch.Position(), "pause should hold the cursor in place")

	ch.Resume()
	m.Frame()
	ch, ok = m.Channel(id)
	require.True(t, ok)
	assert.True(t, ch.Playing())
	assert.Equal(t, pos+b, ch.Position(), "resume should continue from the held position")
}

func TestMixer_DoubleBufferAlternates(t *testing.T) {
	m := New(Freq10512)
	b := m.BufferSize()

	assert.Equal(t, 0, m.LiveIndex())

	f1 := m.Frame()
	assert.Equal(t, 1, m.LiveIndex(), "first frame should flip the live index")
	assert.Len(t, f1, 2*b)

	f2 := m.Frame()
	assert.Equal(t, 0, m.LiveIndex())
	assert.NotSame(t, &f1[0], &f2[0], "consecutive frames should fill alternate buffers")

	f3 := m.Frame()
	assert.Same(t, &f1[0], &f3[0], "the two buffers should alternate")

	live, back := m.Buffers()
	assert.Same(t, &f3[0], &live[0], "Buffers should report the newly live buffer first")
	assert.Same(t, &f2[0], &back[0])

	assert.Equal(t, uint64(3), m.FrameCount())
}

func TestMixer_ServiceGapLeavesStateIntact(t *testing.T) {
	m := New(Freq10512)
	b := m.BufferSize()
	snd := testSound(10*b, Freq10512)

	id, ok := m.PlaySound(NewSoundConfig(snd))
	require.True(t, ok)

	// A missed service call is nothing but elapsed wall time: the mixer
	// holds no clocks, so state only moves inside Frame.
	m.Frame()
	ch, _ := m.Channel(id)
	posBefore := ch.Position()
	volBefore := ch.volume

	m.Frame()
	ch, ok = m.Channel(id)
	require.True(t, ok)
	assert.Equal(t, posBefore+b, ch.Position(), "each frame should advance exactly one buffer of source")
	assert.Equal(t, volBefore, ch.volume, "gain state should be untouched by servicing")
}

func TestMixer_Snapshot(t *testing.T) {
	m := New(Freq18157)
	snd := testSound(500, Freq18157)

	cfg := NewSoundConfig(snd)
	cfg.Priority = PriorityHigh
	cfg.Volume = fixed.One / 2
	_, ok := m.PlaySound(cfg)
	require.True(t, ok)

	id2, ok := m.PlaySound(NewSoundConfig(snd))
	require.True(t, ok)
	ch, _ := m.Channel(id2)
	ch.Pause()

	snap := m.Snapshot()
	assert.True(t, snap[0].Active)
	assert.False(t, snap[0].Paused)
	assert.Equal(t, PriorityHigh, snap[0].Priority)
	assert.Equal(t, fixed.One/2, snap[0].Volume)
	assert.Equal(t, 500, snap[0].Length)

	assert.True(t, snap[1].Active)
	assert.True(t, snap[1].Paused)
	assert.Equal(t, PriorityLow, snap[1].Priority)
	assert.Equal(t, id2, snap[1].ID, "snapshot should carry the occupant's handle")

	got, ok := m.Channel(snap[0].ID)
	require.True(t, ok, "snapshot handles should resolve like PlaySound handles")
	assert.True(t, got.Playing())

	for i := 2; i < NumChannels; i++ {
		assert.False(t, snap[i].Active, "slot %d should be free", i)
	}
}

func TestFrequency_Table(t *testing.T) {
	tests := []struct {
		freq Frequency
		hz   int
		size int
	}{
		{Freq10512, 10512, 176},
		{Freq18157, 18157, 304},
		{Freq32768, 32768, 560},
	}

	for _, tt := range tests {
		t.Run(tt.freq.String(), func(t *testing.T) {
			assert.Equal(t, tt.hz, tt.freq.Hz())
			assert.Equal(t, tt.size, tt.freq.BufferSize())
		})
	}

	assert.Panics(t, func() { Frequency(99).Hz() })
}
