// Package profile defines the audio media policy this core negotiates
// against: the ordered codec priority list, ptime, and per-codec fmtp
// strings callers advertise in SDP. The default priority list is
// overridable via the PREFERRED_AUDIO_CODEC environment variable, which
// promotes a matching entry to the front without altering the rest of
// the list's order.
package profile
