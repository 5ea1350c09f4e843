package profile

import (
	"os"
	"testing"

	"github.com/sentiric/sentiric-rtp-core/codec"
	"github.com/stretchr/testify/assert"
)

func TestDefaultOrderIsG729PCMUPCMATelephoneEvent(t *testing.T) {
	os.Unsetenv("PREFERRED_AUDIO_CODEC")
	p := New()

	require := assert.New(t)
	require.Len(p.Codecs, 4)
	require.Equal(codec.PayloadTypeG729, p.Codecs[0].PayloadType)
	require.Equal(codec.PayloadTypePCMU, p.Codecs[1].PayloadType)
	require.Equal(codec.PayloadTypePCMA, p.Codecs[2].PayloadType)
	require.Equal(codec.PayloadTypeTelephoneEvent, p.Codecs[3].PayloadType)
}

func TestPreferredAudioCodecEnvOverridePromotesEntry(t *testing.T) {
	os.Setenv("PREFERRED_AUDIO_CODEC", "pcma")
	defer os.Unsetenv("PREFERRED_AUDIO_CODEC")

	p := New()
	assert.Equal(t, codec.PayloadTypePCMA, p.Codecs[0].PayloadType)
	assert.Equal(t, codec.PayloadTypeG729, p.Codecs[1].PayloadType)
}

func TestUnknownEnvOverrideFallsBackToDefault(t *testing.T) {
	os.Setenv("PREFERRED_AUDIO_CODEC", "OPUS")
	defer os.Unsetenv("PREFERRED_AUDIO_CODEC")

	p := New()
	assert.Equal(t, codec.PayloadTypeG729, p.Codecs[0].PayloadType)
}

func TestPreferredAudioCodecSkipsDTMF(t *testing.T) {
	os.Setenv("PREFERRED_AUDIO_CODEC", "telephone-event")
	defer os.Unsetenv("PREFERRED_AUDIO_CODEC")

	p := New()
	assert.NotEqual(t, codec.PayloadTypeTelephoneEvent, p.PreferredAudioCodec().PayloadType)
}

func TestByPayloadType(t *testing.T) {
	p := New()
	c, ok := p.ByPayloadType(codec.PayloadTypePCMA)
	assert.True(t, ok)
	assert.Equal(t, "PCMA", c.Name)

	_, ok = p.ByPayloadType(99)
	assert.False(t, ok)
}

func TestHasFmtp(t *testing.T) {
	p := New()
	g729, _ := p.ByPayloadType(codec.PayloadTypeG729)
	assert.True(t, g729.HasFmtp())

	pcmu, _ := p.ByPayloadType(codec.PayloadTypePCMU)
	assert.False(t, pcmu.HasFmtp())
}

func TestPayloadSizeBytes(t *testing.T) {
	p := New()
	g729, _ := p.ByPayloadType(codec.PayloadTypeG729)
	assert.Equal(t, 20, g729.PayloadSizeBytes(20))

	pcmu, _ := p.ByPayloadType(codec.PayloadTypePCMU)
	assert.Equal(t, 160, pcmu.PayloadSizeBytes(20))

	dtmf, _ := p.ByPayloadType(codec.PayloadTypeTelephoneEvent)
	assert.Equal(t, 4, dtmf.PayloadSizeBytes(20))
}
