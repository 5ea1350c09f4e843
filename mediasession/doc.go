// Package mediasession is the integration surface tying together codec,
// rtpwire, pacer, endpoint, jitter, and profile into the two call legs a
// caller actually drives: EncodeFrame for transmit, HandleInbound plus
// Pop for receive. It owns no socket and schedules nothing on its own;
// the caller's TX loop calls pacer.Wait() itself and the caller's RX loop
// feeds HandleInbound raw datagrams as they arrive.
package mediasession
