// Package endpoint implements symmetric-RTP target latching: the
// transmit target address starts out optionally known from signalling and
// then latches to the source address of the first accepted inbound
// packet, re-latching silently whenever the source changes (mobile
// roaming, a renegotiated NAT binding). Deliberately, no IP-class
// filtering is applied — container gateways and local test rigs
// legitimately present private addresses as the source, and refusing to
// latch onto them would break exactly the deployments that most need
// symmetric RTP.
package endpoint
