package wav

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildWav(samples []int16, fmtChunkPadded bool) []byte {
	dataBytes := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(dataBytes[i*2:], uint16(s))
	}

	fmtPayload := make([]byte, 16)
	if fmtChunkPadded {
		fmtPayload = append(fmtPayload, 0) // force an odd-sized fmt chunk
	}

	var buf []byte
	buf = append(buf, []byte("RIFF")...)
	buf = append(buf, make([]byte, 4)...) // overall size, unused by the parser
	buf = append(buf, []byte("WAVE")...)

	buf = append(buf, []byte("fmt ")...)
	sizeField := make([]byte, 4)
	binary.LittleEndian.PutUint32(sizeField, uint32(len(fmtPayload)))
	buf = append(buf, sizeField...)
	buf = append(buf, fmtPayload...)
	if len(fmtPayload)%2 == 1 {
		buf = append(buf, 0) // RIFF pad byte after an odd-sized chunk
	}

	buf = append(buf, []byte("data")...)
	sizeField = make([]byte, 4)
	binary.LittleEndian.PutUint32(sizeField, uint32(len(dataBytes)))
	buf = append(buf, sizeField...)
	buf = append(buf, dataBytes...)

	return buf
}

func TestParseFindsDataChunkAfterFmt(t *testing.T) {
	samples := []int16{100, -200, 300, -400}
	buf := buildWav(samples, false)

	audio, err := Parse(buf)
	require.NoError(t, err)
	assert.Equal(t, samples, audio.Samples)
	assert.Equal(t, assumedSampleRate, audio.SampleRate)
}

func TestParseHandlesOddLengthChunkPadding(t *testing.T) {
	samples := []int16{42, -42}
	buf := buildWav(samples, true)

	audio, err := Parse(buf)
	require.NoError(t, err)
	assert.Equal(t, samples, audio.Samples)
}

func TestParseFallsBackToFixedHeaderWhenNoDataChunk(t *testing.T) {
	buf := make([]byte, 0, 60)
	buf = append(buf, []byte("RIFF")...)
	buf = append(buf, make([]byte, 4)...)
	buf = append(buf, []byte("WAVE")...)
	buf = append(buf, make([]byte, 32)...) // pad out to 44 bytes without a real chunk layout

	dataBytes := make([]byte, 4)
	binary.LittleEndian.PutUint16(dataBytes[0:], uint16(int16(7)))
	binary.LittleEndian.PutUint16(dataBytes[2:], uint16(int16(-7)))
	buf = append(buf, dataBytes...)

	audio, err := Parse(buf)
	require.NoError(t, err)
	assert.Equal(t, []int16{7, -7}, audio.Samples)
}

func TestParseRejectsNonRIFF(t *testing.T) {
	_, err := Parse([]byte("not a wav file at all"))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
