package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// ErrInvalidFormat is returned when the input isn't a RIFF/WAVE container.
var ErrInvalidFormat = errors.New("wav: invalid RIFF/WAVE format")

// defaultHeaderSize is the fallback data offset used when no "data"
// subchunk is found by scanning: the size of a minimal canonical
// RIFF/WAVE header (12-byte RIFF chunk + 24-byte fmt chunk + 8-byte data
// chunk header).
const defaultHeaderSize = 44

// assumedSampleRate is this core's fixed narrowband assumption: inputs
// are expected to already be 8kHz mono. Nothing here inspects the fmt
// subchunk to discover the true rate; a caller feeding a mismatched file
// gets silently-wrong playback speed, not an error — the same contract
// the reference loader this package is descended from made.
const assumedSampleRate = 8000

// Audio is a loaded WAV file's linear PCM samples plus its assumed
// sample rate.
type Audio struct {
	Samples    []int16
	SampleRate int
}

// ReadFile loads and parses path.
func ReadFile(path string) (*Audio, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wav: read %s: %w", path, err)
	}
	return Parse(buf)
}

// Parse extracts 16-bit signed mono PCM samples from a RIFF/WAVE
// container. It scans subchunk headers looking for "data", honoring
// odd-length padding between chunks; if no data subchunk is found it
// falls back to assuming a minimal 44-byte fixed header.
func Parse(buf []byte) (*Audio, error) {
	if len(buf) < 12 || string(buf[0:4]) != "RIFF" || string(buf[8:12]) != "WAVE" {
		return nil, fmt.Errorf("%w: missing RIFF/WAVE markers", ErrInvalidFormat)
	}

	dataStart, dataLen, found := findDataChunk(buf)
	if !found {
		logrus.WithFields(logrus.Fields{
			"function": "wav.Parse",
		}).Warn("No data subchunk found; falling back to fixed 44-byte header assumption")
		if len(buf) < defaultHeaderSize {
			return nil, fmt.Errorf("%w: shorter than fallback header size", ErrInvalidFormat)
		}
		dataStart = defaultHeaderSize
		dataLen = len(buf) - defaultHeaderSize
	}

	if dataStart+dataLen > len(buf) {
		dataLen = len(buf) - dataStart
	}
	data := buf[dataStart : dataStart+dataLen]

	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*2 : i*2+2]))
	}

	return &Audio{Samples: samples, SampleRate: assumedSampleRate}, nil
}

// findDataChunk scans RIFF subchunks starting after the 12-byte RIFF/WAVE
// header looking for "data". Each subchunk is [4-byte ID][4-byte
// little-endian size][payload], padded with one byte if size is odd.
func findDataChunk(buf []byte) (start, length int, found bool) {
	pos := 12
	for pos+8 <= len(buf) {
		id := string(buf[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(buf[pos+4 : pos+8]))
		payloadStart := pos + 8

		if id == "data" {
			end := payloadStart + size
			if end > len(buf) {
				end = len(buf)
			}
			return payloadStart, end - payloadStart, true
		}

		advance := size
		if advance%2 == 1 {
			advance++ // odd-length chunks are padded to an even boundary
		}
		pos = payloadStart + advance
	}
	return 0, 0, false
}
