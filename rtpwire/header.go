package rtpwire

import (
	"errors"
	"fmt"

	"github.com/pion/rtp"
	"github.com/sirupsen/logrus"
)

// ErrFraming is returned when raw bytes cannot be parsed as a well-formed
// RTP packet: a header shorter than 12 bytes, or a payload that was
// truncated in flight. Per-packet framing errors never propagate beyond
// the caller that fed them in; the caller counts and drops the datagram.
var ErrFraming = errors.New("rtpwire: framing error")

// HeaderSize is the fixed on-wire size of an RTP header with no CSRC
// list, no extension, and no padding.
const HeaderSize = 12

// Header is the 12-byte RTP header described in RFC 3550 §5.1, restricted
// to the fields this core ever populates: no CSRC entries, no header
// extension, no padding.
//
// Invariant: within one session, SSRC is constant; SequenceNumber advances
// monotonically modulo 2^16; Timestamp advances by the codec's
// samples-per-frame count on every packet.
type Header struct {
	Version        uint8
	Padding        bool
	Extension      bool
	Marker         bool
	PayloadType    uint8
	SequenceNumber uint16
	Timestamp      uint32
	SSRC           uint32
}

// NewHeader builds a Header for a fresh outbound packet. Version is
// always 2, CSRC count is always 0 per this core's scope.
func NewHeader(payloadType uint8, seq uint16, ts uint32, ssrc uint32) Header {
	return Header{
		Version:        2,
		PayloadType:    payloadType & 0x7F,
		SequenceNumber: seq,
		Timestamp:      ts,
		SSRC:           ssrc,
	}
}

// toPion converts to the pion/rtp representation used for marshaling.
func (h Header) toPion() rtp.Header {
	return rtp.Header{
		Version:        h.Version,
		Padding:        h.Padding,
		Extension:      h.Extension,
		Marker:         h.Marker,
		PayloadType:    h.PayloadType,
		SequenceNumber: h.SequenceNumber,
		Timestamp:      h.Timestamp,
		SSRC:           h.SSRC,
	}
}

func fromPion(h rtp.Header) Header {
	return Header{
		Version:        h.Version,
		Padding:        h.Padding,
		Extension:      h.Extension,
		Marker:         h.Marker,
		PayloadType:    h.PayloadType,
		SequenceNumber: h.SequenceNumber,
		Timestamp:      h.Timestamp,
		SSRC:           h.SSRC,
	}
}

// Marshal serializes the header to exactly HeaderSize bytes, network byte
// order: byte 0 = (V<<6)|(P<<5)|(X<<4)|CC, byte 1 = (M<<7)|PT, bytes 2-3 =
// sequence number, bytes 4-7 = timestamp, bytes 8-11 = SSRC.
func (h Header) Marshal() ([]byte, error) {
	buf, err := h.toPion().Marshal()
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Header.Marshal",
			"error":    err.Error(),
		}).Error("Failed to marshal RTP header")
		return nil, fmt.Errorf("%w: %v", ErrFraming, err)
	}
	return buf, nil
}

// UnmarshalHeader parses the first HeaderSize bytes of raw as a Header.
// Returns ErrFraming if raw is shorter than HeaderSize.
func UnmarshalHeader(raw []byte) (Header, error) {
	if len(raw) < HeaderSize {
		logrus.WithFields(logrus.Fields{
			"function": "UnmarshalHeader",
			"length":   len(raw),
		}).Warn("RTP header shorter than minimum size")
		return Header{}, fmt.Errorf("%w: header is %d bytes, need %d", ErrFraming, len(raw), HeaderSize)
	}
	var ph rtp.Header
	if _, err := ph.Unmarshal(raw); err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrFraming, err)
	}
	return fromPion(ph), nil
}
