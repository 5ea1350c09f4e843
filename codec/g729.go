package codec

/*
#cgo LDFLAGS: -lbcg729
#include <bcg729/decoder.h>
#include <bcg729/encoder.h>
#include <stdlib.h>
*/
import "C"

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

// g729FrameSamples is the number of linear samples per G.729 frame: 10ms
// at an 8kHz sample rate.
const g729FrameSamples = 80

// g729MaxBitstreamBytes is large enough for any bcg729 frame type (a
// plain 10-byte frame, a 2-byte SID frame, or a comfort-noise frame);
// bcg729Encoder reports the actual length it wrote.
const g729MaxBitstreamBytes = 10

// ErrG729Closed is returned when Encode/Decode is called after Close.
var ErrG729Closed = errors.New("codec: g729 context closed")

// g729Codec wraps a pair of bcg729 channel contexts behind Go's
// encoder/decoder interfaces. bcg729's contexts are not safe for
// concurrent use from multiple goroutines, so each call leg must own an
// exclusive instance; mu exists only to keep a single instance's own
// Encode and Decode calls from interleaving unsafely across goroutines,
// not to allow sharing.
type g729Codec struct {
	mu      sync.Mutex
	encoder *C.bcg729EncoderChannelContextStruct
	decoder *C.bcg729DecoderChannelContextStruct
	closed  bool
}

// newG729Codec initializes a fresh pair of bcg729 channel contexts. A
// context-init failure means the linked bcg729 library is broken or out
// of memory; there is no degraded mode to fall back to, so this panics
// rather than forcing every call site to handle an error that a healthy
// process should never see.
func newG729Codec() *g729Codec {
	enc := C.initBcg729EncoderChannel(0) // VAD/DTX disabled
	if enc == nil {
		logrus.WithFields(logrus.Fields{
			"function": "newG729Codec",
		}).Error("Failed to initialize bcg729 encoder channel")
		panic("codec: failed to initialize bcg729 encoder channel")
	}
	dec := C.initBcg729DecoderChannel()
	if dec == nil {
		C.closeBcg729EncoderChannel(enc)
		logrus.WithFields(logrus.Fields{
			"function": "newG729Codec",
		}).Error("Failed to initialize bcg729 decoder channel")
		panic("codec: failed to initialize bcg729 decoder channel")
	}

	c := &g729Codec{encoder: enc, decoder: dec}
	runtime.SetFinalizer(c, (*g729Codec).finalize)
	return c
}

func (c *g729Codec) PayloadType() uint8 { return PayloadTypeG729 }

// Encode accepts exactly one or more whole 80-sample frames; any trailing
// partial frame is discarded, matching the reference encoder's
// chunk-and-drop behavior rather than padding with silence a caller never
// asked for.
func (c *g729Codec) Encode(pcm []int16) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrG729Closed
	}
	if len(pcm) == 0 {
		return nil, fmt.Errorf("%w: g729 encode", ErrEmptyFrame)
	}

	frameCount := len(pcm) / g729FrameSamples
	if frameCount == 0 {
		logrus.WithFields(logrus.Fields{
			"function": "g729Codec.Encode",
			"samples":  len(pcm),
		}).Warn("Discarding incomplete G.729 frame: fewer than 80 samples")
		return nil, nil
	}

	out := make([]byte, 0, frameCount*g729MaxBitstreamBytes)
	bitstream := make([]C.uint8_t, g729MaxBitstreamBytes)

	for f := 0; f < frameCount; f++ {
		frame := pcm[f*g729FrameSamples : (f+1)*g729FrameSamples]
		var cFrame [g729FrameSamples]C.int16_t
		for i, s := range frame {
			cFrame[i] = C.int16_t(s)
		}

		var bitstreamLength C.uint8_t
		C.bcg729Encoder(c.encoder, &cFrame[0], &bitstream[0], &bitstreamLength)
		out = append(out, cBytesToGo(bitstream[:int(bitstreamLength)])...)
	}
	return out, nil
}

// Decode splits payload into consecutive G.729 bitstream frames (10 bytes
// for a full-rate frame; a trailing chunk of 2 bytes or fewer is decoded
// as a SID comfort-noise frame) and decodes each into g729FrameSamples
// synthesized samples.
func (c *g729Codec) Decode(payload []byte) ([]int16, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrG729Closed
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: g729 decode", ErrEmptyFrame)
	}

	out := make([]int16, 0, (len(payload)+g729MaxBitstreamBytes-1)/g729MaxBitstreamBytes*g729FrameSamples)
	for off := 0; off < len(payload); off += g729MaxBitstreamBytes {
		frame := payload[off:min(off+g729MaxBitstreamBytes, len(payload))]
		cBitstream := make([]C.uint8_t, g729MaxBitstreamBytes)
		for i, b := range frame {
			cBitstream[i] = C.uint8_t(b)
		}

		var synth [g729FrameSamples]C.int16_t
		sidFrameFlag := C.uint8_t(0)
		if len(frame) <= 2 {
			sidFrameFlag = 1
		}
		C.bcg729Decoder(c.decoder, &cBitstream[0], C.uint8_t(0), sidFrameFlag, 0, &synth[0])

		for _, s := range synth {
			out = append(out, int16(s))
		}
	}
	return out, nil
}

// Close releases the bcg729 channel contexts. Safe to call more than
// once; the finalizer calls it again defensively if the caller forgot,
// but code should not rely on the finalizer for timely release since GC
// timing is not deterministic.
func (c *g729Codec) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	C.closeBcg729EncoderChannel(c.encoder)
	C.closeBcg729DecoderChannel(c.decoder)
	c.encoder = nil
	c.decoder = nil
	c.closed = true
	runtime.SetFinalizer(c, nil)
	return nil
}

func (c *g729Codec) finalize() {
	if err := c.Close(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "g729Codec.finalize",
			"error":    err.Error(),
		}).Error("Failed to release g729 context from finalizer")
	}
}

func cBytesToGo(cs []C.uint8_t) []byte {
	out := make([]byte, len(cs))
	for i, b := range cs {
		out[i] = byte(b)
	}
	return out
}
