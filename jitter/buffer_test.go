package jitter

import (
	"testing"
	"time"

	"github.com/sentiric/sentiric-rtp-core/rtpwire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyPacket(seq uint16) rtpwire.Packet {
	return rtpwire.NewPacket(0, seq, 0, 1234, nil)
}

func TestBufferReordersOutOfOrderArrivals(t *testing.T) {
	b := New(10, 50*time.Millisecond)

	b.Push(dummyPacket(1))
	b.Push(dummyPacket(3))
	b.Push(dummyPacket(2))

	_, ok := b.Pop()
	assert.False(t, ok, "pop before the startup delay elapses must return nothing")

	time.Sleep(60 * time.Millisecond)

	p1, ok := b.Pop()
	require.True(t, ok)
	assert.Equal(t, uint16(1), p1.Header.SequenceNumber)

	p2, ok := b.Pop()
	require.True(t, ok)
	assert.Equal(t, uint16(2), p2.Header.SequenceNumber)

	p3, ok := b.Pop()
	require.True(t, ok)
	assert.Equal(t, uint16(3), p3.Header.SequenceNumber)

	_, ok = b.Pop()
	assert.False(t, ok)
}

func TestBufferGapSkipOnLoss(t *testing.T) {
	b := New(10, 10*time.Millisecond)

	b.Push(dummyPacket(100))
	time.Sleep(15 * time.Millisecond)
	_, _ = b.Pop() // consumes 100; expected is now 101

	b.Push(dummyPacket(106))
	for seq := 107; seq < 115; seq++ {
		b.Push(dummyPacket(uint16(seq)))
	}

	p, ok := b.Pop()
	require.True(t, ok, "pop should skip the lost 101-105 run")
	assert.Equal(t, uint16(106), p.Header.SequenceNumber)
}

func TestBufferRejectsLateArrivalAcrossWrapSafeThreshold(t *testing.T) {
	b := New(10, 0)
	b.Push(dummyPacket(10)) // initializes expectedSeq = 10

	b.Push(dummyPacket(65530))

	assert.Equal(t, 1, b.Len(), "the wrap-unsafe-late packet must be discarded, not buffered")
}

func TestBufferResetClearsState(t *testing.T) {
	b := New(10, 0)
	b.Push(dummyPacket(5))
	b.Reset()

	_, ok := b.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, b.Len())
}
