// Package jitter implements a sequence-number-keyed jitter buffer:
// packets are reordered by RTP sequence number, held for a startup delay
// before the first pop, and late arrivals beyond a wrap-safe threshold
// are discarded. When the expected packet never arrives and the buffer
// has accumulated either a gap wider than 5 sequence numbers or more than
// half its capacity, the buffer treats the missing run as lost and skips
// ahead rather than stalling forever.
package jitter
