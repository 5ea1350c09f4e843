package codec

// dtmfCodec implements Codec for the RFC 4733 telephone-event payload
// type. Telephone events carry no linear PCM to transcode: the
// event/volume/duration payload is built and parsed by the caller, so
// this codec's Encode and Decode are true no-ops rather than a pass-through
// reinterpretation of the samples. It exists only so the factory can hand
// callers a uniform Codec regardless of payload type.
type dtmfCodec struct{}

func newDTMFCodec() *dtmfCodec { return &dtmfCodec{} }

func (c *dtmfCodec) PayloadType() uint8 { return PayloadTypeTelephoneEvent }

// Encode ignores pcm and returns no bytes; a telephone-event packet's
// payload is assembled by the caller, not produced by this codec.
func (c *dtmfCodec) Encode(pcm []int16) ([]byte, error) {
	return nil, nil
}

// Decode ignores payload and returns no samples; telephone events carry
// no linear PCM for this codec to reconstruct.
func (c *dtmfCodec) Decode(payload []byte) ([]int16, error) {
	return nil, nil
}

func (c *dtmfCodec) Close() error { return nil }
