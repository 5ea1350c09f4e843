package jitter

import (
	"sort"
	"sync"
	"time"

	"github.com/sentiric/sentiric-rtp-core/rtpwire"
	"github.com/sirupsen/logrus"
)

// lateThreshold is the wrap-safe cutoff used to distinguish a genuinely
// late packet from one that arrived after a 16-bit sequence number wrap.
const lateThreshold = 30000

// gapSkipThreshold is how many sequence numbers may be missing before the
// buffer gives up waiting for reorder and treats them as lost.
const gapSkipThreshold = 5

type entry struct {
	seq    uint16
	packet rtpwire.Packet
}

// Buffer reorders inbound RTP packets by sequence number. It holds at
// most capacity packets; a sorted slice (rather than a balanced tree)
// backs it, since typical occupancy is small enough that binary-search
// insertion is both simpler and faster than a tree in practice. Safe for
// concurrent use: a receive goroutine pushes while a separate decode
// goroutine pops on its own cadence.
type Buffer struct {
	mu              sync.Mutex
	entries         []entry
	expectedSeq     uint16
	capacity        int
	startupDelay    time.Duration
	firstPacketTime time.Time
	initialized     bool
}

// New constructs a Buffer with the given capacity (max packets held) and
// startupDelay (how long pop() stays empty after the first push, to let
// reordered packets arrive before playout begins).
func New(capacity int, startupDelay time.Duration) *Buffer {
	return &Buffer{
		entries:      make([]entry, 0, capacity),
		capacity:     capacity,
		startupDelay: startupDelay,
	}
}

// Push admits a packet into the buffer. The first call initializes
// expectedSeq to that packet's sequence number and starts the startup
// timer. Late packets (per the wrap-safe threshold) are silently
// discarded. If the buffer is already at capacity, the lowest-sequence
// entry is evicted to make room; if that entry was the expected one,
// expectedSeq advances past it.
func (b *Buffer) Push(pkt rtpwire.Packet) {
	b.mu.Lock()
	defer b.mu.Unlock()

	seq := pkt.Header.SequenceNumber

	if !b.initialized {
		b.expectedSeq = seq
		b.firstPacketTime = time.Now()
		b.initialized = true
	}

	if b.isLate(seq) {
		logrus.WithFields(logrus.Fields{
			"function":     "Buffer.Push",
			"seq":          seq,
			"expected_seq": b.expectedSeq,
		}).Debug("Discarding late RTP packet")
		return
	}

	if len(b.entries) >= b.capacity {
		evicted := b.entries[0]
		b.entries = b.entries[1:]
		if evicted.seq == b.expectedSeq {
			b.expectedSeq++
		}
	}

	b.insert(seq, pkt)
}

// Pop removes and returns the next packet in delivery order. It returns
// (Packet{}, false) if the buffer isn't initialized yet, the startup
// delay hasn't elapsed, or the expected packet hasn't arrived and no
// gap-skip condition is met.
func (b *Buffer) Pop() (rtpwire.Packet, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return rtpwire.Packet{}, false
	}
	if time.Since(b.firstPacketTime) < b.startupDelay {
		return rtpwire.Packet{}, false
	}

	if idx, found := b.find(b.expectedSeq); found {
		pkt := b.entries[idx].packet
		b.removeAt(idx)
		b.expectedSeq++
		return pkt, true
	}

	if len(b.entries) == 0 {
		return rtpwire.Packet{}, false
	}

	lowest := b.entries[0]
	gap := lowest.seq - b.expectedSeq // uint16 wraps the same way the wire sequence does

	if gap > gapSkipThreshold || len(b.entries) > b.capacity/2 {
		logrus.WithFields(logrus.Fields{
			"function":     "Buffer.Pop",
			"expected_seq": b.expectedSeq,
			"skipped_to":   lowest.seq,
			"gap":          gap,
		}).Warn("Jitter buffer gap-skip: treating missing packets as lost")
		b.expectedSeq = lowest.seq
		b.removeAt(0)
		b.expectedSeq++
		return lowest.packet, true
	}

	return rtpwire.Packet{}, false
}

// Reset clears the buffer and its initialization state, as if no packets
// had ever been pushed.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = b.entries[:0]
	b.initialized = false
	b.firstPacketTime = time.Time{}
}

// Len reports the number of packets currently buffered.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

func (b *Buffer) isLate(seq uint16) bool {
	if seq == b.expectedSeq {
		return false
	}
	if seq < b.expectedSeq {
		return b.expectedSeq-seq < lateThreshold
	}
	return seq-b.expectedSeq > lateThreshold
}

func (b *Buffer) find(seq uint16) (int, bool) {
	idx := sort.Search(len(b.entries), func(i int) bool { return b.entries[i].seq >= seq })
	if idx < len(b.entries) && b.entries[idx].seq == seq {
		return idx, true
	}
	return idx, false
}

func (b *Buffer) insert(seq uint16, pkt rtpwire.Packet) {
	idx, found := b.find(seq)
	if found {
		b.entries[idx].packet = pkt
		return
	}
	b.entries = append(b.entries, entry{})
	copy(b.entries[idx+1:], b.entries[idx:])
	b.entries[idx] = entry{seq: seq, packet: pkt}
}

func (b *Buffer) removeAt(idx int) {
	b.entries = append(b.entries[:idx], b.entries[idx+1:]...)
}
