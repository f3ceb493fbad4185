package metrics

import "github.com/san-kum/maxwell/internal/sim"

// Recorder keeps a Summary every Every frames, plus the last frame seen.
type Recorder struct {
	Every     int
	Summaries []Summary
	last      Summary
	seen      int
}

func NewRecorder(every int) *Recorder {
	if every <= 0 {
		every = 1
	}
	return &Recorder{Every: every}
}

func (r *Recorder) OnFrame(f *sim.Frame) {
	r.seen++
	r.last = FromFrame(f)
	if f.Index%r.Every == 0 {
		r.Summaries = append(r.Summaries, r.last)
	}
}

// Final returns the summaries with the last frame appended when it fell
// between samples.
func (r *Recorder) Final() []Summary {
	if r.seen == 0 {
		return r.Summaries
	}
	n := len(r.Summaries)
	if n > 0 && r.Summaries[n-1].Frame == r.last.Frame {
		return r.Summaries
	}
	return append(r.Summaries, r.last)
}

// Energies returns the total energy column, for charts.
func (r *Recorder) Energies() []float64 {
	out := make([]float64, len(r.Summaries))
	for i, s := range r.Summaries {
		out[i] = s.TotalEnergy
	}
	return out
}
