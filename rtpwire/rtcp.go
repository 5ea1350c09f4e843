package rtpwire

import "encoding/binary"

// senderReportStubLength is the size in bytes of this core's minimal
// RTCP sender-report stub: version/padding/count byte, packet type byte,
// a two-byte length field, and the four-byte SSRC. A standards-complete
// RFC 3550 sender report additionally carries a 20-byte sender-info
// block (NTP timestamp, RTP timestamp, packet count, octet count); this
// core defers that, matching spec-mandated behavior — the stub exists
// only to keep NAT bindings open and satisfy peers expecting periodic SR
// traffic.
const senderReportStubLength = 8

// SenderReport builds the minimal RTCP sender-report stub for ssrc:
// byte 0 = 0x80 (version 2, padding 0, report count 0), byte 1 = 200
// (SR packet type), bytes 2-3 = length in 32-bit words minus one, bytes
// 4-7 = SSRC, big-endian.
func SenderReport(ssrc uint32) []byte {
	buf := make([]byte, senderReportStubLength)
	buf[0] = 0x80
	buf[1] = 200
	binary.BigEndian.PutUint16(buf[2:4], uint16(senderReportStubLength/4-1))
	binary.BigEndian.PutUint32(buf[4:8], ssrc)
	return buf
}
