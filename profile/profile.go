package profile

import (
	"os"
	"strings"

	"github.com/sentiric/sentiric-rtp-core/codec"
	"github.com/sirupsen/logrus"
)

// DefaultPtimeMS is the fixed packetization interval this core uses:
// 20ms, the telecom-standard framing size for narrowband audio.
const DefaultPtimeMS = 20

// preferredAudioCodecEnvVar names the environment variable that overrides
// the default codec priority order.
const preferredAudioCodecEnvVar = "PREFERRED_AUDIO_CODEC"

// CodecConfig describes one entry in a profile's codec priority list.
type CodecConfig struct {
	PayloadType uint8
	Name        string
	Rate        int
	FMTP        string // empty if the codec has no fmtp attribute
}

// AudioProfile is the ordered codec list (highest priority first) plus
// the session ptime. The first non-DTMF entry is the preferred audio
// codec.
type AudioProfile struct {
	Codecs []CodecConfig
	PtimeMS int
}

func defaultCodecs() []CodecConfig {
	return []CodecConfig{
		{PayloadType: codec.PayloadTypeG729, Name: "G729", Rate: 8000, FMTP: "annexb=no"},
		{PayloadType: codec.PayloadTypePCMU, Name: "PCMU", Rate: 8000},
		{PayloadType: codec.PayloadTypePCMA, Name: "PCMA", Rate: 8000},
		{PayloadType: codec.PayloadTypeTelephoneEvent, Name: "telephone-event", Rate: 8000, FMTP: "0-16"},
	}
}

// New builds the default AudioProfile, honoring PREFERRED_AUDIO_CODEC if
// set: when its value (case-insensitively) names an entry in the default
// list, that entry is moved to the front without reordering the rest.
// Unknown or unset values fall back to the static default order.
func New() *AudioProfile {
	codecs := defaultCodecs()

	if preferred := os.Getenv(preferredAudioCodecEnvVar); preferred != "" {
		for i, c := range codecs {
			if strings.EqualFold(c.Name, preferred) {
				promoted := codecs[i]
				codecs = append(codecs[:i], codecs[i+1:]...)
				codecs = append([]CodecConfig{promoted}, codecs...)
				logrus.WithFields(logrus.Fields{
					"function": "profile.New",
					"codec":    preferred,
				}).Info("Promoted preferred codec to front of priority list")
				break
			}
		}
	}

	return &AudioProfile{Codecs: codecs, PtimeMS: DefaultPtimeMS}
}

// PreferredAudioCodec returns the first entry that isn't the DTMF
// telephone-event payload, falling back to PCMU if the list is somehow
// empty of audio codecs.
func (p *AudioProfile) PreferredAudioCodec() CodecConfig {
	for _, c := range p.Codecs {
		if c.PayloadType != codec.PayloadTypeTelephoneEvent {
			return c
		}
	}
	return CodecConfig{PayloadType: codec.PayloadTypePCMU, Name: "PCMU", Rate: 8000}
}

// ByPayloadType looks up a codec's configuration by its RTP payload type.
func (p *AudioProfile) ByPayloadType(pt uint8) (CodecConfig, bool) {
	for _, c := range p.Codecs {
		if c.PayloadType == pt {
			return c, true
		}
	}
	return CodecConfig{}, false
}

// SamplesPerFrame returns the number of linear PCM samples one frame of
// this codec carries at the given ptime: rate * ptimeMS / 1000.
func (c CodecConfig) SamplesPerFrame(ptimeMS int) int {
	return c.Rate * ptimeMS / 1000
}

// HasFmtp reports whether this codec carries an fmtp attribute to
// advertise alongside its rtpmap line in SDP.
func (c CodecConfig) HasFmtp() bool {
	return c.FMTP != ""
}

// PayloadSizeBytes returns the on-wire payload size in bytes for one
// frame at the given ptime: G.711 is one byte per sample, G.729 is one
// byte per millisecond (10-byte 10ms subframes), and the telephone-event
// payload is always 4 bytes regardless of ptime.
func (c CodecConfig) PayloadSizeBytes(ptimeMS int) int {
	switch c.PayloadType {
	case codec.PayloadTypeG729:
		return ptimeMS
	case codec.PayloadTypeTelephoneEvent:
		return 4
	default:
		return c.SamplesPerFrame(ptimeMS)
	}
}
