package mediasession

import (
	"net"
	"testing"

	"github.com/sentiric/sentiric-rtp-core/codec"
	"github.com/sentiric/sentiric-rtp-core/profile"
	"github.com/sentiric/sentiric-rtp-core/rtpwire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() *profile.AudioProfile {
	return profile.New()
}

func TestEncodeFrameAdvancesSeqAndTimestamp(t *testing.T) {
	s, err := New(codec.PayloadTypePCMU, 0xABCD1234, testProfile(), nil)
	require.NoError(t, err)
	defer s.Close()

	pcm := make([]int16, 160) // 20ms at 8kHz
	pkt1, err := s.EncodeFrame(pcm)
	require.NoError(t, err)
	pkt2, err := s.EncodeFrame(pcm)
	require.NoError(t, err)

	assert.Equal(t, uint16(0), pkt1.Header.SequenceNumber)
	assert.Equal(t, uint16(1), pkt2.Header.SequenceNumber)
	assert.Equal(t, uint32(0), pkt1.Header.Timestamp)
	assert.Equal(t, uint32(160), pkt2.Header.Timestamp)
	assert.Equal(t, uint32(0xABCD1234), pkt1.Header.SSRC)
	assert.Len(t, pkt1.Payload, 160)
}

func TestHandleInboundLatchesAndBuffersForPop(t *testing.T) {
	s, err := New(codec.PayloadTypePCMU, 1, testProfile(), nil)
	require.NoError(t, err)
	defer s.Close()

	pcm := make([]int16, 160)
	payload, err := s.cdc.Encode(pcm)
	require.NoError(t, err)
	raw, err := rtpwire.NewPacket(codec.PayloadTypePCMU, 0, 0, 99, payload).Marshal()
	require.NoError(t, err)

	src, err := net.ResolveUDPAddr("udp", "198.51.100.5:6000")
	require.NoError(t, err)

	assert.Nil(t, s.Endpoint.Target())
	require.NoError(t, s.HandleInbound(raw, src))
	assert.Equal(t, src, s.Endpoint.Target())

	decoded, ok, err := s.Pop()
	require.NoError(t, err)
	assert.False(t, ok, "pop should not deliver before the jitter buffer's startup delay elapses")
	assert.Nil(t, decoded)
}

func TestNewRejectsPayloadTypeNotInProfile(t *testing.T) {
	_, err := New(99, 1, testProfile(), nil)
	assert.ErrorIs(t, err, ErrPayloadTypeNotNegotiated)
}

func TestHandleInboundRejectsMalformedPacket(t *testing.T) {
	s, err := New(codec.PayloadTypePCMU, 1, testProfile(), nil)
	require.NoError(t, err)
	defer s.Close()

	err = s.HandleInbound(make([]byte, 3), nil)
	assert.ErrorIs(t, err, rtpwire.ErrFraming)
}

func TestSenderReportUsesSessionSSRC(t *testing.T) {
	s, err := New(codec.PayloadTypePCMU, 0x11223344, testProfile(), nil)
	require.NoError(t, err)
	defer s.Close()

	sr := s.SenderReport()
	require.Len(t, sr, 8)
	assert.Equal(t, byte(0x11), sr[4])
}
