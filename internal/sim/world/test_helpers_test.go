package world

import (
	"testing"

	"tinycolony.dev/internal/sim/catalogs"
	"tinycolony.dev/internal/sim/tuning"
)

func testTuning() tuning.Tuning {
	cfg := tuning.Defaults()
	cfg.Pawn.WanderChance = 0
	return cfg
}

func newTestWorld(t *testing.T) *World {
	t.Helper()
	return newTestWorldWith(t, testTuning())
}

func newTestWorldWith(t *testing.T, cfg tuning.Tuning) *World {
	t.Helper()
	cats, err := catalogs.Load("../../../configs")
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	w, err := New(cfg, cats)
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	return w
}

func stepN(w *World, n int) {
	for i := 0; i < n; i++ {
		w.Step()
	}
}

// stepUntil steps until cond holds and returns the number of steps taken.
func stepUntil(t *testing.T, w *World, max int, cond func() bool) int {
	t.Helper()
	for i := 1; i <= max; i++ {
		w.Step()
		if cond() {
			return i
		}
	}
	t.Fatalf("condition not reached within %d ticks", max)
	return 0
}

func hasParticle(w *World, text string) bool {
	for _, p := range w.particles {
		if p.Text == text {
			return true
		}
	}
	return false
}

type recordingJournal struct {
	entries []JournalEntry
}

func (r *recordingJournal) WriteEvent(e JournalEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *recordingJournal) count(kind string) int {
	n := 0
	for _, e := range r.entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
