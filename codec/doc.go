// Package codec implements the narrowband speech codecs this core carries
// over RTP: G.711 A-law and µ-law (full encode/decode, no external
// dependency), G.729 (encode/decode via the bcg729 C library through cgo),
// and the RFC 4733 telephone-event payload (a no-op codec: no transcoding,
// no bytes or samples produced).
// It also provides the two audio resamplers used when a call's codec rate
// doesn't match its RTP clock rate: a stateless linear resampler and a
// stateful cubic resampler that carries interpolation history across
// calls.
//
// # Architecture
//
// Encoder and Decoder are the two narrow interfaces every codec
// implements. NewCodec resolves a payload type to a matched Encoder/Decoder
// pair from the fixed set this core supports; there is no dynamic
// registration, mirroring the closed codec list a telephony media core is
// built against.
//
// # Thread Safety
//
// G.711 and DTMF codecs are stateless and safe for concurrent use. The
// Resampler carries mutable interpolation state behind a mutex and is safe
// for concurrent use but serializes callers. The G.729 codec wraps a
// non-reentrant C context and must not be shared across goroutines without
// external synchronization; each call leg should own its own instance.
package codec
