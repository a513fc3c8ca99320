package world

const (
	colorSleep   = "#60a5fa"
	colorGood    = "#22c55e"
	colorDim     = "gray"
	colorPlain   = "white"
	colorDeliver = "#3b82f6"
)

// Particle is a floating text label that rises and fades.
type Particle struct {
	Pos    Vec2
	Text   string
	Color  string
	Life   int
	Offset float64
}

// ShowFloatingText spawns a particle at (x, y).
func (w *World) ShowFloatingText(x, y float64, text, color string) {
	w.particles = append(w.particles, &Particle{
		Pos:   Vec2{X: x, Y: y},
		Text:  text,
		Color: color,
		Life:  w.cfg.Particles.LifeTicks,
	})
}

func (w *World) ageParticles() {
	kept := w.particles[:0]
	for _, p := range w.particles {
		p.Life--
		p.Offset += w.cfg.Particles.RisePerTick
		if p.Life > 0 {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(w.particles); i++ {
		w.particles[i] = nil
	}
	w.particles = kept
}
