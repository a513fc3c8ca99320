package worldtest

import (
	"testing"

	"tinycolony.dev/internal/protocol"
	"tinycolony.dev/internal/sim/bootstrap"
	world "tinycolony.dev/internal/sim/world"
)

func TestDeterminism_FixedCommandsSameDigest(t *testing.T) {
	cats := LoadCatalogs(t)
	cfg := Tuning(42)

	w1, err := bootstrap.NewColony(cfg, cats)
	if err != nil {
		t.Fatalf("world1: %v", err)
	}
	w2, err := bootstrap.NewColony(cfg, cats)
	if err != nil {
		t.Fatalf("world2: %v", err)
	}
	if w1.StateDigest() != w2.StateDigest() {
		t.Fatalf("bootstrap digests differ")
	}

	cmd := func(tool string, x, y int) []world.CommandEnvelope {
		return []world.CommandEnvelope{{Cmd: protocol.CmdMsg{Type: protocol.TypeCmd, ProtocolVersion: protocol.Version, Tool: tool, X: x, Y: y}}}
	}
	script := map[uint64][]world.CommandEnvelope{
		0:  cmd("build_tent", 27, 21),
		30: cmd("chop", 5, 5),
		31: cmd("mine", 44, 40),
		90: cmd("harvest", 10, 40),
	}

	for i := uint64(0); i < 2000; i++ {
		t1, d1 := w1.StepOnce(nil, nil, script[i])
		t2, d2 := w2.StepOnce(nil, nil, script[i])
		if t1 != i || t2 != i {
			t.Fatalf("tick mismatch: got w1=%d w2=%d want %d", t1, t2, i)
		}
		if d1 != d2 {
			t.Fatalf("digest mismatch at tick %d: %s vs %s", i, d1, d2)
		}
	}
}

func TestDeterminism_ViewersDoNotAffectState(t *testing.T) {
	cats := LoadCatalogs(t)
	cfg := Tuning(5)

	plain, err := bootstrap.NewColony(cfg, cats)
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	h := NewHarness(t, cfg)

	// The harness already spent one tick joining.
	_, _ = plain.StepOnce(nil, nil, nil)
	for i := 0; i < 300; i++ {
		_, d1 := plain.StepOnce(nil, nil, nil)
		_, d2 := h.W.StepOnce(nil, nil, nil)
		h.drain()
		if d1 != d2 {
			t.Fatalf("viewer changed the simulation at step %d", i)
		}
	}
}
