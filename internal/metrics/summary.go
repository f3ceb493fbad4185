package metrics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/physics"
	"github.com/san-kum/maxwell/internal/sim"
)

// Summary is one row of a run report.
type Summary struct {
	Frame          int     `csv:"frame" json:"frame"`
	Time           float64 `csv:"time_ms" json:"time_ms"`
	Particles      int     `csv:"particles" json:"particles"`
	TotalEnergy    float64 `csv:"total_energy" json:"total_energy"`
	MeanEnergy     float64 `csv:"mean_energy" json:"mean_energy"`
	P10Energy      float64 `csv:"p10_energy" json:"p10_energy"`
	MedianEnergy   float64 `csv:"p50_energy" json:"p50_energy"`
	P90Energy      float64 `csv:"p90_energy" json:"p90_energy"`
	HotFraction    float64 `csv:"hot_fraction" json:"hot_fraction"`
	SortedFraction float64 `csv:"sorted_fraction" json:"sorted_fraction"`
}

// Summarize reports the energy distribution of lobes and how well the
// demon has separated it.
func Summarize(frame int, time float64, lobes []dynamo.Lobe, threshold float64) Summary {
	var energies []float64
	hot, sorted := 0, 0
	for _, l := range lobes {
		for _, p := range l.Particles {
			energies = append(energies, p.KineticEnergy())
			if physics.Hot(p, threshold) {
				hot++
			}
			if physics.Sorted(p, threshold) {
				sorted++
			}
		}
	}
	return build(frame, time, energies, hot, sorted)
}

// FromFrame summarizes a composed frame. A dot counts as sorted when it
// sits on its lobe's side for its temperature.
func FromFrame(f *sim.Frame) Summary {
	energies := make([]float64, 0, f.Info.Particles)
	hot, sorted := 0, 0
	for _, l := range f.Lobes {
		for _, d := range l.Dots {
			energies = append(energies, d.Energy)
			side := d.Pos.X - l.Center.X
			if d.Hot {
				hot++
				if side >= 0 {
					sorted++
				}
			} else if side <= 0 {
				sorted++
			}
		}
	}
	return build(f.Index, f.Time, energies, hot, sorted)
}

func build(frame int, time float64, energies []float64, hot, sorted int) Summary {
	s := Summary{Frame: frame, Time: time, Particles: len(energies)}
	if len(energies) == 0 {
		return s
	}

	sort.Float64s(energies)
	for _, e := range energies {
		s.TotalEnergy += e
	}
	n := float64(len(energies))
	s.MeanEnergy = stat.Mean(energies, nil)
	s.P10Energy = stat.Quantile(0.1, stat.Empirical, energies, nil)
	s.MedianEnergy = stat.Quantile(0.5, stat.Empirical, energies, nil)
	s.P90Energy = stat.Quantile(0.9, stat.Empirical, energies, nil)
	s.HotFraction = float64(hot) / n
	s.SortedFraction = float64(sorted) / n
	return s
}
