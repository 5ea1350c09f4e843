// Package pacer implements the hybrid sleep-then-spin transmit scheduler
// that gates outbound RTP packet emission to exactly one packet per
// ptime. A pure OS sleep has 10-15ms granularity on common platforms,
// which is too coarse for 20ms packetization, so Pacer sleeps for the
// bulk of the interval and busy-spins the last couple of milliseconds to
// land on the tick with sub-millisecond precision.
package pacer
