// Package wav provides a minimal RIFF/WAVE loader for the 16-bit signed
// mono PCM at 8kHz this core's examples use as test input. It is not a
// general WAV decoder — no format conversion, no multi-channel support,
// no sample-rate detection — only enough to get a PCM sample vector out
// of a file a test harness or demo produced.
package wav
