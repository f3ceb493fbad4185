package sim

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/san-kum/maxwell/internal/audio"
	"github.com/san-kum/maxwell/internal/config"
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/physics"
)

// Scene composes one frame at a time: spinner transforms, physics, the
// demon, then drawing and sound. It is driven by an external loop and is
// not safe for concurrent use.
type Scene struct {
	cfg       *config.Config
	tree      *physics.Tree
	lobes     []dynamo.Lobe
	lobeNodes []int
	armNodes  []int
	xf        []physics.Transform
	seed      int64
	rng       *rand.Rand
	params    physics.StepParams
	surface   Surface
	sonifier  *audio.Sonifier

	time    float64
	frames  int
	dropped int
	frame   Frame
}

// New validates cfg and builds the spinner, lobes and particles. surface
// and sonifier may be nil; the sonifier is ignored when cfg disables audio.
func New(cfg *config.Config, surface Surface, sonifier *audio.Sonifier) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tree, specs := physics.BuildTree(cfg.Layout())
	s := &Scene{
		cfg:       cfg,
		tree:      tree,
		lobes:     make([]dynamo.Lobe, len(specs)),
		lobeNodes: make([]int, len(specs)),
		seed:      cfg.ResolveSeed(),
		params:    cfg.StepParams(),
		surface:   surface,
	}
	if cfg.Audio {
		s.sonifier = sonifier
	}

	for i, spec := range specs {
		s.lobes[i] = dynamo.Lobe{
			Radius:        spec.Radius,
			BaseFrequency: cfg.Sound.BaseFrequencies[spec.Arm],
			Pan:           cfg.Sound.Pans[spec.Arm],
			Arm:           spec.Arm,
			Level:         spec.Level,
		}
	}
	for idx, n := range tree.Nodes {
		if n.Lobe >= 0 {
			s.lobeNodes[n.Lobe] = idx
		}
		if n.ArmLength > 0 {
			s.armNodes = append(s.armNodes, idx)
		}
	}

	s.seedParticles()
	s.frame.Extent = s.reach(0)
	s.frame.Arms = make([]Arm, len(s.armNodes))
	s.frame.Lobes = make([]LobeView, len(s.lobes))
	for i := range s.lobes {
		s.frame.Lobes[i].Dots = make([]Dot, cfg.ParticlesPerLobe)
	}
	s.xf = tree.Resolve(0, nil)
	s.compose()

	slog.Debug("scene built",
		"variant", cfg.Variant,
		"lobes", len(s.lobes),
		"particles", len(s.lobes)*cfg.ParticlesPerLobe,
		"seed", s.seed,
		"audio", s.sonifier != nil)
	return s, nil
}

func (s *Scene) seedParticles() {
	s.rng = rand.New(rand.NewSource(s.seed))
	for i := range s.lobes {
		physics.Seed(&s.lobes[i], s.cfg.ParticlesPerLobe, s.rng, s.cfg.Physics.InitialSpeed)
	}
}

// reach is the farthest distance from node's anchor that its subtree can
// cover.
func (s *Scene) reach(node int) float64 {
	n := &s.tree.Nodes[node]
	var far float64
	if n.Lobe >= 0 {
		far = s.lobes[n.Lobe].Radius
	}
	for _, c := range n.Children {
		far = math.Max(far, s.reach(c))
	}
	return n.ArmLength + far
}

// StartAudio opens the audio sink. A failure leaves the scene silent; the
// error is returned for reporting only.
func (s *Scene) StartAudio() error {
	if s.sonifier == nil {
		return nil
	}
	return s.sonifier.Start()
}

// Step advances the scene by dt and returns the composed frame. The frame
// is reused by the next call.
func (s *Scene) Step(dt float64) *Frame {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	s.time += dt
	s.frames++
	s.xf = s.tree.Resolve(s.time, s.xf)

	threshold := s.cfg.Physics.Threshold
	for i := range s.lobes {
		l := &s.lobes[i]
		for j := range l.Particles {
			physics.Step(&l.Particles[j], l.Radius, dt, s.rng, s.params)
		}
		physics.Sort(l, threshold)
	}

	s.compose()
	s.emit()
	return &s.frame
}

// compose writes the current state into the reusable frame.
func (s *Scene) compose() {
	f := &s.frame
	f.Index = s.frames
	f.Time = s.time

	for i, n := range s.armNodes {
		f.Arms[i] = Arm{From: s.xf[n].Anchor, To: s.xf[n].Position}
	}

	threshold := s.cfg.Physics.Threshold
	info := Info{Dropped: s.dropped}
	for i := range s.lobes {
		l := &s.lobes[i]
		center := s.xf[s.lobeNodes[i]].Position
		view := &f.Lobes[i]
		view.Center = center
		view.Radius = l.Radius
		view.Level = l.Level
		view.Color = LobeColors[l.Arm]
		for j, p := range l.Particles {
			ke := p.KineticEnergy()
			hot := physics.Hot(p, threshold)
			view.Dots[j] = Dot{Pos: center.Add(p.Pos), Radius: p.Radius, Energy: ke, Hot: hot}
			info.Energy += ke
			if hot {
				info.Hot++
			}
		}
		info.Particles += len(l.Particles)
	}
	f.Info = info
}

// emit hands the frame to the surface and the tones to the sonifier. A
// failed draw is counted and skipped; particle state is already committed.
func (s *Scene) emit() {
	if s.surface != nil {
		if err := s.surface.Draw(&s.frame); err != nil {
			s.dropped++
			if s.dropped == 1 {
				slog.Warn("frame dropped", "frame", s.frames, "err", err)
			} else {
				slog.Debug("frame dropped", "frame", s.frames, "dropped", s.dropped, "err", err)
			}
		}
	}

	if s.sonifier == nil {
		return
	}
	slot := 0
	for i := range s.lobes {
		l := &s.lobes[i]
		for _, p := range l.Particles {
			s.sonifier.Update(slot, p, l)
			slot++
		}
	}
}

// Reset reseeds the particles from the original seed and rewinds time.
func (s *Scene) Reset() {
	s.time = 0
	s.frames = 0
	s.seedParticles()
	s.xf = s.tree.Resolve(0, s.xf)
	s.compose()
}

// Close releases the audio resources. Safe to call more than once.
func (s *Scene) Close() {
	if s.sonifier != nil {
		s.sonifier.Close()
	}
}

func (s *Scene) Frame() *Frame             { return &s.frame }
func (s *Scene) Lobes() []dynamo.Lobe      { return s.lobes }
func (s *Scene) Config() *config.Config    { return s.cfg }
func (s *Scene) Seed() int64               { return s.seed }
func (s *Scene) Time() float64             { return s.time }
func (s *Scene) Frames() int               { return s.frames }
func (s *Scene) Dropped() int              { return s.dropped }
func (s *Scene) Sonifier() *audio.Sonifier { return s.sonifier }
