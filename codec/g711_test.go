package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestALawZeroInvariant(t *testing.T) {
	assert.Equal(t, byte(0xD5), linearToALaw(0))
	assert.Equal(t, byte(0x55), linearToALaw(-1))
}

func TestALawDecodeSymmetry(t *testing.T) {
	pos := alawDecodeTable[0xD5]
	neg := alawDecodeTable[0x55]
	assert.Equal(t, pos, -neg)
}

func TestALawAllCodesRoundTripThroughTable(t *testing.T) {
	// Every one of the 256 wire octets must decode to a finite sample and,
	// when re-encoded, land on an octet that decodes to the same value
	// (the segmented encoder may not reproduce the original octet at
	// quantization boundaries, but decode(encode(decode(x))) == decode(x)
	// must hold).
	for i := 0; i < 256; i++ {
		sample := alawDecodeTable[byte(i)]
		reencoded := linearToALaw(sample)
		assert.Equal(t, sample, alawDecodeTable[reencoded], "octet %d", i)
	}
}

func TestULawZeroInvariant(t *testing.T) {
	assert.Equal(t, byte(0xFF), linearToULaw(0))
}

func TestULawMinInt16DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		linearToULaw(math.MinInt16)
	})
}

func TestULawAllCodesRoundTripThroughTable(t *testing.T) {
	for i := 0; i < 256; i++ {
		sample := ulawDecodeTable[byte(i)]
		reencoded := linearToULaw(sample)
		assert.Equal(t, sample, ulawDecodeTable[reencoded], "octet %d", i)
	}
}

func sineTone(freq, sampleRate, amplitude float64, n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate))
	}
	return out
}

func snr(original, reconstructed []int16) float64 {
	var signal, noise float64
	for i := range original {
		signal += float64(original[i]) * float64(original[i])
		diff := float64(original[i]) - float64(reconstructed[i])
		noise += diff * diff
	}
	if noise == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(signal/noise)
}

func TestALawRoundTripSNR(t *testing.T) {
	tone := sineTone(440, 8000, 28000, 8000) // 1s at 8kHz, near full-scale amplitude
	c := newALawCodec()

	encoded, err := c.Encode(tone)
	require.NoError(t, err)
	decoded, err := c.Decode(encoded)
	require.NoError(t, err)

	require.Len(t, decoded, len(tone))
	assert.Greater(t, snr(tone, decoded), 35.0)
}

func TestULawRoundTripSNR(t *testing.T) {
	tone := sineTone(440, 8000, 28000, 8000) // 1s at 8kHz, near full-scale amplitude
	c := newULawCodec()

	encoded, err := c.Encode(tone)
	require.NoError(t, err)
	decoded, err := c.Decode(encoded)
	require.NoError(t, err)

	require.Len(t, decoded, len(tone))
	assert.Greater(t, snr(tone, decoded), 35.0)
}

func TestG711RejectsEmptyFrames(t *testing.T) {
	a := newALawCodec()
	_, err := a.Encode(nil)
	assert.ErrorIs(t, err, ErrEmptyFrame)
	_, err = a.Decode(nil)
	assert.ErrorIs(t, err, ErrEmptyFrame)

	u := newULawCodec()
	_, err = u.Encode(nil)
	assert.ErrorIs(t, err, ErrEmptyFrame)
	_, err = u.Decode(nil)
	assert.ErrorIs(t, err, ErrEmptyFrame)
}

func TestG711PayloadTypes(t *testing.T) {
	assert.Equal(t, PayloadTypePCMA, newALawCodec().PayloadType())
	assert.Equal(t, PayloadTypePCMU, newULawCodec().PayloadType())
}
