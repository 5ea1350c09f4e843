package mediasession

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/sentiric/sentiric-rtp-core/codec"
	"github.com/sentiric/sentiric-rtp-core/endpoint"
	"github.com/sentiric/sentiric-rtp-core/jitter"
	"github.com/sentiric/sentiric-rtp-core/pacer"
	"github.com/sentiric/sentiric-rtp-core/profile"
	"github.com/sentiric/sentiric-rtp-core/rtpwire"
	"github.com/sirupsen/logrus"
)

// ErrPayloadTypeNotNegotiated is returned by New when payloadType is not
// one of the codecs carried by the supplied AudioProfile.
var ErrPayloadTypeNotNegotiated = errors.New("mediasession: payload type not in audio profile")

// defaultJitterCapacity is roughly one second of audio at 20ms ptime.
const defaultJitterCapacity = 50

// defaultStartupDelay is the default jitter-buffer warm-up before the
// first pop(), long enough to absorb typical reordering without adding
// noticeable latency.
const defaultStartupDelay = 50 * time.Millisecond

// Session is one call leg's media plane: a negotiated codec, an RTP
// sequence/timestamp generator, a transmit pacer, a symmetric-RTP
// endpoint, and a receive jitter buffer. Each Session owns its own codec
// instance and is not safe to share across call legs.
type Session struct {
	ID uuid.UUID

	codecCfg profile.CodecConfig
	ptimeMS  int
	cdc      codec.Codec

	ssrc      uint32
	seq       uint16
	timestamp uint32

	Endpoint *endpoint.Endpoint
	Jitter   *jitter.Buffer
	Pacer    *pacer.Pacer
}

// New constructs a Session for payloadType, resolved against prof. ssrc
// identifies this session's outbound RTP stream; initialTarget is the
// SDP-advertised remote address, or nil if the endpoint should only latch
// from inbound traffic.
func New(payloadType uint8, ssrc uint32, prof *profile.AudioProfile, initialTarget net.Addr) (*Session, error) {
	codecCfg, ok := prof.ByPayloadType(payloadType)
	if !ok {
		logrus.WithFields(logrus.Fields{
			"function":     "mediasession.New",
			"payload_type": payloadType,
		}).Error("Requested payload type is not in the negotiated audio profile")
		return nil, fmt.Errorf("%w: %d", ErrPayloadTypeNotNegotiated, payloadType)
	}

	cdc, err := codec.NewCodec(payloadType)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:       uuid.New(),
		codecCfg: codecCfg,
		ptimeMS:  prof.PtimeMS,
		cdc:      cdc,
		ssrc:     ssrc,
		Endpoint: endpoint.New(initialTarget),
		Jitter:   jitter.New(defaultJitterCapacity, defaultStartupDelay),
		Pacer:    pacer.New(time.Duration(prof.PtimeMS) * time.Millisecond),
	}

	logrus.WithFields(logrus.Fields{
		"function":     "mediasession.New",
		"session_id":   s.ID.String(),
		"payload_type": payloadType,
		"ssrc":         ssrc,
	}).Info("Media session created")
	return s, nil
}

// EncodeFrame encodes one frame of linear PCM and assembles it into an
// outbound RTP packet, advancing this session's sequence number and
// timestamp by one frame's worth.
func (s *Session) EncodeFrame(pcm []int16) (rtpwire.Packet, error) {
	payload, err := s.cdc.Encode(pcm)
	if err != nil {
		return rtpwire.Packet{}, err
	}

	pkt := rtpwire.NewPacket(s.cdc.PayloadType(), s.seq, s.timestamp, s.ssrc, payload)
	s.seq++
	s.timestamp += uint32(s.codecCfg.SamplesPerFrame(s.ptimeMS))
	return pkt, nil
}

// HandleInbound parses a raw datagram as an RTP packet, latches the
// endpoint to src, and pushes the packet into the jitter buffer. Framing
// errors are returned to the caller to count and drop; late or duplicate
// packets are absorbed silently by the jitter buffer and not reported as
// errors.
func (s *Session) HandleInbound(raw []byte, src net.Addr) error {
	pkt, err := rtpwire.Unmarshal(raw)
	if err != nil {
		return err
	}
	s.Endpoint.Latch(src)
	s.Jitter.Push(pkt)
	return nil
}

// Pop drains the next deliverable packet from the jitter buffer and
// decodes it to linear PCM. ok is false if nothing is ready to play out
// yet.
func (s *Session) Pop() (pcm []int16, ok bool, err error) {
	pkt, ok := s.Jitter.Pop()
	if !ok {
		return nil, false, nil
	}
	pcm, err = s.cdc.Decode(pkt.Payload)
	if err != nil {
		return nil, false, err
	}
	return pcm, true, nil
}

// SenderReport builds the minimal RTCP sender-report stub for this
// session's SSRC.
func (s *Session) SenderReport() []byte {
	return rtpwire.SenderReport(s.ssrc)
}

// Close releases the underlying codec's resources (a no-op for G.711/DTMF,
// releases the bcg729 contexts for G.729).
func (s *Session) Close() error {
	return s.cdc.Close()
}
