package analysis

import (
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Spectrum is the one-sided magnitude spectrum of a real signal.
type Spectrum struct {
	BinWidth   float64 // Hz
	Magnitudes []float64
}

type Peak struct {
	Frequency float64
	Magnitude float64
}

// NewSpectrum windows samples with a Hann window and transforms them. Any
// length works; go-dsp pads non powers of two internally.
func NewSpectrum(samples []float64, sampleRate int) Spectrum {
	n := len(samples)
	if n < 2 || sampleRate <= 0 {
		return Spectrum{}
	}

	x := make([]float64, n)
	copy(x, samples)
	window.Apply(x, window.Hann)

	bins := fft.FFTReal(x)
	mags := make([]float64, n/2)
	for i := range mags {
		mags[i] = cmplx.Abs(bins[i]) * 2 / float64(n)
	}
	return Spectrum{BinWidth: float64(sampleRate) / float64(n), Magnitudes: mags}
}

func (s Spectrum) Frequency(bin int) float64 { return float64(bin) * s.BinWidth }

// Peaks returns up to n local maxima, strongest first. The DC bin is
// skipped.
func (s Spectrum) Peaks(n int) []Peak {
	var peaks []Peak
	m := s.Magnitudes
	for i := 1; i < len(m)-1; i++ {
		if m[i] > m[i-1] && m[i] >= m[i+1] {
			peaks = append(peaks, Peak{Frequency: s.Frequency(i), Magnitude: m[i]})
		}
	}
	sort.Slice(peaks, func(i, j int) bool { return peaks[i].Magnitude > peaks[j].Magnitude })
	if len(peaks) > n {
		peaks = peaks[:n]
	}
	return peaks
}

// Band returns the magnitudes between lo and hi Hz, for plotting.
func (s Spectrum) Band(lo, hi float64) []float64 {
	if s.BinWidth == 0 {
		return nil
	}
	from := max(int(lo/s.BinWidth), 0)
	to := min(int(hi/s.BinWidth)+1, len(s.Magnitudes))
	if from >= to {
		return nil
	}
	return s.Magnitudes[from:to]
}
