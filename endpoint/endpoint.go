package endpoint

import (
	"net"
	"sync"

	"github.com/sirupsen/logrus"
)

// Endpoint holds the current transmit target for one RTP session and
// latches it to the source of inbound traffic. Safe for concurrent use: a
// receive goroutine calls Latch while a transmit goroutine calls Target,
// and a reader may observe any target from the window of concurrent
// latches.
type Endpoint struct {
	mu      sync.Mutex
	target  net.Addr
	latched bool
}

// New constructs an Endpoint. initial is the SDP-advertised remote
// address if one is known, or nil if the target is only discoverable
// from inbound traffic.
func New(initial net.Addr) *Endpoint {
	return &Endpoint{target: initial}
}

// Latch is invoked on every successfully parsed inbound packet. If the
// endpoint is already latched to src, it's a no-op and Latch returns
// false. Otherwise it sets the target to src, marks the endpoint latched,
// and returns true. No IP-class filtering is performed: src is accepted
// regardless of whether it is a public or private address.
func (e *Endpoint) Latch(src net.Addr) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.latched && addrEqual(e.target, src) {
		return false
	}

	first := !e.latched
	e.target = src
	e.latched = true

	fields := logrus.Fields{
		"function": "Endpoint.Latch",
		"source":   src.String(),
	}
	if first {
		logrus.WithFields(fields).Info("RTP endpoint latched to initial source")
	} else {
		logrus.WithFields(fields).Debug("RTP endpoint re-latched to new source")
	}
	return true
}

// Target returns the current transmit target, or nil if none is known
// yet.
func (e *Endpoint) Target() net.Addr {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.target
}

// Reset clears the latched target, e.g. when a call is placed on hold and
// the next inbound packet should re-establish the binding fresh.
func (e *Endpoint) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.target = nil
	e.latched = false
}

func addrEqual(a, b net.Addr) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Network() == b.Network() && a.String() == b.String()
}
