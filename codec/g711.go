package codec

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// ErrEmptyFrame is returned when Encode is given zero samples or Decode is
// given zero payload bytes.
var ErrEmptyFrame = errors.New("codec: empty frame")

// alawSegmentEnd and ulawSegmentEnd are the classic ITU-T segment boundary
// tables used to find a sample's exponent during encoding: the segment is
// the index of the first boundary the scaled magnitude doesn't exceed.
var (
	alawSegmentEnd = [8]int{0x1F, 0x3F, 0x7F, 0xFF, 0x1FF, 0x3FF, 0x7FF, 0xFFF}
	ulawSegmentEnd = [8]int{0xFF, 0x1FF, 0x3FF, 0x7FF, 0xFFF, 0x1FFF, 0x3FFF, 0x7FFF}
)

func findSegment(v int, ends [8]int) int {
	for i, end := range ends {
		if v <= end {
			return i
		}
	}
	return len(ends)
}

// linearToALaw encodes one 16-bit linear sample to an A-law octet. The
// input is scaled by >>3, the sign captured as a mask (0xD5 for
// non-negative samples, 0x55 for negative — the ITU-T reference
// convention, not a simple sign bit), negative magnitudes folded through a
// one's-complement approximation, and the segment/mantissa assembled and
// XORed with the mask. Positive zero therefore encodes to 0xD5, negative
// zero to 0x55.
func linearToALaw(pcmVal int16) byte {
	v := int(pcmVal) >> 3

	var mask int
	if v >= 0 {
		mask = 0xD5
	} else {
		mask = 0x55
		v = -v - 1
	}
	if v > 0xFFF {
		v = 0xFFF
	}

	seg := findSegment(v, alawSegmentEnd)
	if seg >= 8 {
		return byte(0x7F ^ mask)
	}

	aval := seg << 4
	if seg < 2 {
		aval |= (v >> 1) & 0x0F
	} else {
		aval |= (v >> uint(seg)) & 0x0F
	}
	return byte(aval ^ mask)
}

// linearToULaw encodes one 16-bit linear sample to a µ-law octet: take the
// magnitude (i16::MIN is clamped to i16::MAX before negation, since its
// true magnitude doesn't fit in int16), clip to 32635, add the 0x84 bias,
// find the segment by the same boundary search as A-law, extract the
// mantissa, assemble [sign|exponent|mantissa], and invert every bit.
func linearToULaw(pcmVal int16) byte {
	const bias = 0x84
	const clip = 32635

	sample := int(pcmVal)
	sign := 0
	if sample < 0 {
		if pcmVal == math.MinInt16 {
			sample = math.MaxInt16
		} else {
			sample = -sample
		}
		sign = 0x80
	}
	if sample > clip {
		sample = clip
	}
	sample += bias

	seg := findSegment(sample, ulawSegmentEnd)
	if seg >= 8 {
		seg = 7
	}
	mantissa := (sample >> uint(seg+3)) & 0x0F
	val := byte(sign | (seg << 4) | mantissa)
	return ^val
}

// aLawCodec implements Codec for RTP payload type 8 (PCMA).
type aLawCodec struct{}

func newALawCodec() *aLawCodec { return &aLawCodec{} }

func (c *aLawCodec) PayloadType() uint8 { return PayloadTypePCMA }

func (c *aLawCodec) Encode(pcm []int16) ([]byte, error) {
	if len(pcm) == 0 {
		return nil, fmt.Errorf("%w: A-law encode", ErrEmptyFrame)
	}
	out := make([]byte, len(pcm))
	for i, sample := range pcm {
		out[i] = linearToALaw(sample)
	}
	return out, nil
}

func (c *aLawCodec) Decode(payload []byte) ([]int16, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: A-law decode", ErrEmptyFrame)
	}
	out := make([]int16, len(payload))
	for i, octet := range payload {
		out[i] = alawDecodeTable[octet]
	}
	return out, nil
}

func (c *aLawCodec) Close() error { return nil }

// uLawCodec implements Codec for RTP payload type 0 (PCMU).
type uLawCodec struct{}

func newULawCodec() *uLawCodec { return &uLawCodec{} }

func (c *uLawCodec) PayloadType() uint8 { return PayloadTypePCMU }

func (c *uLawCodec) Encode(pcm []int16) ([]byte, error) {
	if len(pcm) == 0 {
		return nil, fmt.Errorf("%w: µ-law encode", ErrEmptyFrame)
	}
	out := make([]byte, len(pcm))
	for i, sample := range pcm {
		out[i] = linearToULaw(sample)
	}
	return out, nil
}

func (c *uLawCodec) Decode(payload []byte) ([]int16, error) {
	if len(payload) == 0 {
		logrus.WithFields(logrus.Fields{"function": "uLawCodec.Decode"}).Warn("Rejected empty µ-law payload")
		return nil, fmt.Errorf("%w: µ-law decode", ErrEmptyFrame)
	}
	out := make([]int16, len(payload))
	for i, octet := range payload {
		out[i] = ulawDecodeTable[octet]
	}
	return out, nil
}

func (c *uLawCodec) Close() error { return nil }
