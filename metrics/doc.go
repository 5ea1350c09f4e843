// Package metrics exposes Prometheus instrumentation for the media-plane
// components: packets encoded/decoded per codec, inbound packets
// discarded by reason (late, gap_skip, framing_error), current jitter
// buffer depth, and pacer scheduling drift. Callers register a
// *Registry's collectors with their own prometheus.Registerer (or rely on
// the default global one) at process startup.
package metrics
