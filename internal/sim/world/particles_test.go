package world

import "testing"

func TestParticles_RiseAndExpire(t *testing.T) {
	w := newTestWorld(t)
	w.ShowFloatingText(3, 4, "hello", "white")
	w.ShowFloatingText(3, 4, "later", "white")
	w.particles[1].Life = 120

	stepN(w, 59)
	if len(w.particles) != 2 {
		t.Fatalf("particles=%d", len(w.particles))
	}
	pt := w.particles[0]
	if pt.Life != 1 || !near(pt.Offset, 59*0.02) {
		t.Fatalf("particle=%+v", pt)
	}
	w.Step()
	if len(w.particles) != 1 || w.particles[0].Text != "later" {
		t.Fatalf("expired particle kept: %+v", w.particles)
	}
}
