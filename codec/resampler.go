package codec

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrInvalidSampleRate is returned when a resampler is constructed with a
// non-positive sample rate.
var ErrInvalidSampleRate = errors.New("codec: invalid sample rate")

// cubicHistoryLen is the number of trailing input samples a Resampler
// carries from one call to the next so that cubic interpolation across a
// call boundary doesn't reset to a flat run-in, matching how a streaming
// resampler's interpolation window must span packet boundaries.
const cubicHistoryLen = 4

// CalculateOutputSize returns the number of output samples
// LinearResample/Resample will produce for inputLen input samples
// resampled from inputRate to outputRate.
func CalculateOutputSize(inputLen, inputRate, outputRate int) int {
	if inputRate == outputRate {
		return inputLen
	}
	return (inputLen * outputRate) / inputRate
}

func validateRates(inputRate, outputRate int) error {
	if inputRate <= 0 || outputRate <= 0 {
		return fmt.Errorf("%w: input=%d output=%d", ErrInvalidSampleRate, inputRate, outputRate)
	}
	return nil
}

// LinearResample performs stateless linear interpolation, supporting
// exactly the three ratios this core's audio profile ever needs: unity,
// 8kHz-to-16kHz upsampling, and 16kHz-to-8kHz downsampling. It has no
// memory of prior calls, making it the right tool for one-shot
// conversions (loading a WAV file, transcoding a standalone buffer) where
// call-boundary continuity doesn't matter; use Resampler instead for a
// live stream.
//
// Upsampling inserts the arithmetic mean of each adjacent input pair
// between them, repeating the final sample once there is no successor to
// average against: [100, 200] becomes [100, 150, 200, 200]. Downsampling
// averages each non-overlapping input pair: [100, 150, 200, 220] becomes
// [125, 210]; a trailing unpaired sample is dropped.
func LinearResample(samples []int16, inputRate, outputRate int) ([]int16, error) {
	if err := validateRates(inputRate, outputRate); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: linear resample", ErrEmptyFrame)
	}

	switch {
	case inputRate == outputRate:
		out := make([]int16, len(samples))
		copy(out, samples)
		return out, nil
	case outputRate == inputRate*2:
		return upsampleLinear(samples), nil
	case inputRate == outputRate*2:
		return downsampleLinear(samples), nil
	default:
		return nil, fmt.Errorf("%w: unsupported rate pair %d->%d, only unity/2x/0.5x are defined",
			ErrInvalidSampleRate, inputRate, outputRate)
	}
}

func upsampleLinear(samples []int16) []int16 {
	n := len(samples)
	out := make([]int16, 2*n)
	for i := 0; i < n; i++ {
		out[2*i] = samples[i]
		if i+1 < n {
			out[2*i+1] = int16((int(samples[i]) + int(samples[i+1])) / 2)
		} else {
			out[2*i+1] = samples[i]
		}
	}
	return out
}

func downsampleLinear(samples []int16) []int16 {
	n := len(samples) / 2
	out := make([]int16, n)
	for i := 0; i < n; i++ {
		a := int(samples[2*i])
		b := int(samples[2*i+1])
		out[i] = int16((a + b) / 2)
	}
	return out
}

// Resampler performs stateful cubic (Catmull-Rom) interpolation between a
// fixed input and output rate, carrying a short history of trailing input
// samples across calls so that successive packets interpolate smoothly
// rather than restarting cold at every call boundary. It is safe for
// concurrent use; callers are expected to serialize calls per stream
// anyway, but the mutex protects the shared history slice from a racy
// caller.
type Resampler struct {
	mu         sync.Mutex
	inputRate  int
	outputRate int
	history    [cubicHistoryLen]float64
	primed     bool
}

// NewResampler constructs a Resampler for a fixed inputRate/outputRate
// pair. Construct one per stream direction; it is not safe to share one
// instance across unrelated audio streams since history belongs to a
// single continuous signal.
func NewResampler(inputRate, outputRate int) (*Resampler, error) {
	if err := validateRates(inputRate, outputRate); err != nil {
		return nil, err
	}
	return &Resampler{inputRate: inputRate, outputRate: outputRate}, nil
}

// Reset discards the carried history, as if this Resampler had never
// processed a sample. Call this after a discontinuity (a jitter buffer
// gap-skip, a stream restart) where interpolating against stale history
// would produce an audible click rather than prevent one.
func (r *Resampler) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = [cubicHistoryLen]float64{}
	r.primed = false
}

// Resample converts samples from r.inputRate to r.outputRate, interpolating
// against the trailing history of the previous call (if any) for the first
// few output samples.
func (r *Resampler) Resample(samples []int16) ([]int16, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: cubic resample", ErrEmptyFrame)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.inputRate == r.outputRate {
		out := make([]int16, len(samples))
		copy(out, samples)
		r.updateHistory(samples)
		return out, nil
	}

	extended := make([]float64, 0, cubicHistoryLen+len(samples))
	if r.primed {
		extended = append(extended, r.history[:]...)
	} else {
		for i := 0; i < cubicHistoryLen; i++ {
			extended = append(extended, float64(samples[0]))
		}
	}
	for _, s := range samples {
		extended = append(extended, float64(s))
	}

	outLen := CalculateOutputSize(len(samples), r.inputRate, r.outputRate)
	out := make([]int16, outLen)
	ratio := float64(r.inputRate) / float64(r.outputRate)
	offset := cubicHistoryLen // index in `extended` of samples[0]

	for i := range out {
		srcPos := float64(i)*ratio + float64(offset)
		idx := int(srcPos)
		t := srcPos - float64(idx)

		p0 := sampleAt(extended, idx-1)
		p1 := sampleAt(extended, idx)
		p2 := sampleAt(extended, idx+1)
		p3 := sampleAt(extended, idx+2)

		out[i] = int16(clampSample(catmullRom(p0, p1, p2, p3, t)))
	}

	r.updateHistory(samples)
	logrus.WithFields(logrus.Fields{
		"function":    "Resampler.Resample",
		"input_rate":  r.inputRate,
		"output_rate": r.outputRate,
		"input_len":   len(samples),
		"output_len":  len(out),
	}).Debug("Resampled audio frame")
	return out, nil
}

func (r *Resampler) updateHistory(samples []int16) {
	n := len(samples)
	if r.primed && n < cubicHistoryLen {
		copy(r.history[:], r.history[n:])
	}
	for i := 0; i < cubicHistoryLen; i++ {
		srcIdx := n - cubicHistoryLen + i
		if srcIdx < 0 {
			if r.primed {
				// not enough new samples to fill the window; the
				// existing history was shifted left above, so only the
				// tail is replaced.
				continue
			}
			srcIdx = 0
		}
		r.history[i] = float64(samples[srcIdx])
	}
	r.primed = true
}

func sampleAt(buf []float64, idx int) float64 {
	if idx < 0 {
		return buf[0]
	}
	if idx >= len(buf) {
		return buf[len(buf)-1]
	}
	return buf[idx]
}

// catmullRom evaluates the Catmull-Rom cubic spline through p0..p3 at
// parameter t in [0,1), where p1 and p2 are the two samples t lies
// between.
func catmullRom(p0, p1, p2, p3, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	a := -0.5*p0 + 1.5*p1 - 1.5*p2 + 0.5*p3
	b := p0 - 2.5*p1 + 2*p2 - 0.5*p3
	c := -0.5*p0 + 0.5*p2
	d := p1
	return a*t3 + b*t2 + c*t + d
}

func clampSample(v float64) float64 {
	const maxVal = 32767
	const minVal = -32768
	if v > maxVal {
		return maxVal
	}
	if v < minVal {
		return minVal
	}
	return v
}
