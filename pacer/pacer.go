package pacer

import (
	"time"

	"github.com/sirupsen/logrus"
)

// spinGuard is the slice of the remaining interval handed to the busy
// spin rather than to the OS sleep, since the OS scheduler's wakeup
// granularity cannot be trusted for the final couple of milliseconds.
const spinGuard = 2 * time.Millisecond

// Pacer emits a tick at most once per interval, with no catch-up bursts:
// if a caller stalls past one interval, the next Wait returns immediately
// and the schedule slips forward to the current time rather than firing
// repeatedly to make up for lost ticks.
//
// Pacer is not safe for concurrent use by multiple goroutines; one
// transmit loop owns one Pacer.
type Pacer struct {
	interval time.Duration
	nextTick time.Time
}

// New constructs a Pacer for the given interval (typically the session's
// ptime) with its first tick scheduled at interval from now.
func New(interval time.Duration) *Pacer {
	return &Pacer{
		interval: interval,
		nextTick: time.Now().Add(interval),
	}
}

// Wait blocks until the next scheduled tick, then advances the schedule
// by one interval. If the tick has already passed (the caller fell
// behind), Wait returns immediately and slips the schedule to now plus
// one interval rather than trying to catch up.
func (p *Pacer) Wait() {
	now := time.Now()
	remaining := p.nextTick.Sub(now)

	if remaining <= 0 {
		logrus.WithFields(logrus.Fields{
			"function": "Pacer.Wait",
			"overrun":  (-remaining).String(),
		}).Debug("Pacer tick missed; slipping schedule forward")
		p.nextTick = now.Add(p.interval)
		return
	}

	if sleepFor := remaining - spinGuard; sleepFor > 0 {
		time.Sleep(sleepFor)
	}
	for time.Now().Before(p.nextTick) {
		// busy-spin through the last sub-millisecond gap; an OS sleep
		// here would routinely overshoot by several milliseconds.
	}

	p.nextTick = p.nextTick.Add(p.interval)
}

// Reset re-anchors the schedule to now: the next Wait returns right away
// and later ticks follow at one interval apart from that point. Use this
// after a deliberate pause (e.g. a call placed on hold) where the elapsed
// time should not count as overrun.
func (p *Pacer) Reset() {
	p.nextTick = time.Now()
}
