package rtpwire

import (
	"fmt"

	"github.com/pion/rtp"
	"github.com/sirupsen/logrus"
)

// Packet is a Header plus its opaque payload bytes. It is produced by the
// codec/packetization path and consumed by the jitter buffer or the
// transmit path; it is owned exclusively while in flight and is not safe
// to mutate concurrently.
type Packet struct {
	Header  Header
	Payload []byte
}

// NewPacket builds an outbound packet with a fresh header.
func NewPacket(payloadType uint8, seq uint16, ts uint32, ssrc uint32, payload []byte) Packet {
	return Packet{
		Header:  NewHeader(payloadType, seq, ts, ssrc),
		Payload: payload,
	}
}

// Marshal concatenates the header bytes with the payload bytes.
func (p Packet) Marshal() ([]byte, error) {
	pkt := rtp.Packet{
		Header:  p.Header.toPion(),
		Payload: p.Payload,
	}
	buf, err := pkt.Marshal()
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":     "Packet.Marshal",
			"payload_size": len(p.Payload),
			"error":        err.Error(),
		}).Error("Failed to marshal RTP packet")
		return nil, fmt.Errorf("%w: %v", ErrFraming, err)
	}
	return buf, nil
}

// Unmarshal parses raw bytes into a Packet. Returns ErrFraming if the
// header is short or the declared structure doesn't fit the available
// bytes.
func Unmarshal(raw []byte) (Packet, error) {
	if len(raw) < HeaderSize {
		return Packet{}, fmt.Errorf("%w: packet is %d bytes, need at least %d", ErrFraming, len(raw), HeaderSize)
	}
	var pkt rtp.Packet
	if err := pkt.Unmarshal(raw); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Unmarshal",
			"length":   len(raw),
			"error":    err.Error(),
		}).Warn("Rejected malformed RTP packet")
		return Packet{}, fmt.Errorf("%w: %v", ErrFraming, err)
	}
	return Packet{
		Header:  fromPion(pkt.Header),
		Payload: pkt.Payload,
	}, nil
}
