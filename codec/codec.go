package codec

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Well-known RTP payload types this core resolves. PCMU, PCMA and G.729
// use their RFC 3551 static numbers; the telephone-event payload uses the
// dynamic number 101 that the profile package advertises.
const (
	PayloadTypePCMU          uint8 = 0
	PayloadTypePCMA          uint8 = 8
	PayloadTypeG729          uint8 = 18
	PayloadTypeTelephoneEvent uint8 = 101
)

// Encoder turns linear PCM samples into a codec's wire payload.
type Encoder interface {
	// Encode converts one frame of 16-bit linear PCM samples into the
	// codec's payload bytes. The number of input samples must match the
	// codec's frame size; callers that buffer arbitrary-length audio are
	// responsible for chunking it first.
	Encode(pcm []int16) ([]byte, error)
	// PayloadType reports the RTP payload type this encoder produces.
	PayloadType() uint8
}

// Decoder turns a codec's wire payload back into linear PCM samples.
type Decoder interface {
	Decode(payload []byte) ([]int16, error)
	// PayloadType reports the RTP payload type this decoder consumes.
	PayloadType() uint8
}

// Codec bundles a matched Encoder/Decoder pair plus lifecycle. G.711 and
// DTMF codecs have nothing to release and implement Close as a no-op;
// G.729 releases its C context.
type Codec interface {
	Encoder
	Decoder
	// Close releases any resources held by the codec. It is safe to call
	// more than once.
	Close() error
}

// NewCodec resolves payloadType to a Codec instance from this core's fixed
// codec set. Any payload type outside that closed set — including the
// recognized-but-unimplemented G.722 — panics rather than silently
// degrading, since a caller that negotiated a codec and received PCM
// garbage or a nil Codec would be far harder to diagnose than an
// immediate, loud failure at construction time.
func NewCodec(payloadType uint8) (Codec, error) {
	switch payloadType {
	case PayloadTypePCMU:
		return newULawCodec(), nil
	case PayloadTypePCMA:
		return newALawCodec(), nil
	case PayloadTypeG729:
		return newG729Codec(), nil
	case PayloadTypeTelephoneEvent:
		return newDTMFCodec(), nil
	case 9: // G.722, RFC 3551 static payload type
		logrus.WithFields(logrus.Fields{
			"function":     "NewCodec",
			"payload_type": payloadType,
		}).Error("G.722 negotiated but not implemented by this core")
		panic("codec: G.722 is not implemented")
	default:
		logrus.WithFields(logrus.Fields{
			"function":     "NewCodec",
			"payload_type": payloadType,
		}).Warn("Rejected unsupported payload type")
		panic(fmt.Sprintf("codec: unsupported payload type %d", payloadType))
	}
}
