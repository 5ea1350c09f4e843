// Package rtpwire provides RTP packet framing and a minimal RTCP
// sender-report stub for the media-plane core.
//
// Header and packet serialization wrap github.com/pion/rtp, which already
// produces the exact RFC 3550 byte layout this package's wire format
// requires: a fixed 12-byte header (no CSRC, no extension, no padding)
// followed by the opaque payload. The RTCP sender report implemented here
// is intentionally NOT standards-complete: it emits the 8-byte stub
// (version/type/length/SSRC only, no NTP/packet/octet counters) that
// keeps NAT bindings open without committing to the full 28-byte SR
// wire format, so it is hand-rolled rather than built on an RTCP library.
//
// # Building a packet
//
//	pkt := rtpwire.NewPacket(codec.PayloadTypePCMU, seq, ts, ssrc, payload)
//	raw, err := pkt.Marshal()
//
// # Parsing inbound bytes
//
//	pkt, err := rtpwire.Unmarshal(raw)
//	if err != nil {
//	    // framing error: header too short or payload truncated
//	}
//
// # Sequence/timestamp progression
//
// Callers step a session's sequence number and timestamp themselves
// (typically via profile.CodecConfig.SamplesPerFrame); this package only
// frames what it is given, it does not own session state.
package rtpwire
