package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ShippedConfigMatchesDefaults(t *testing.T) {
	got, err := Load(filepath.Join("..", "..", "..", "configs", "tuning.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Digest() != Defaults().Digest() {
		t.Fatalf("configs/tuning.yaml drifted from Defaults()")
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(p, []byte("map_width: 12\npawn:\n  speed: 0.5\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.MapWidth != 12 || got.MapHeight != 50 {
		t.Fatalf("map size: got %dx%d", got.MapWidth, got.MapHeight)
	}
	if got.Pawn.Speed != 0.5 || got.Pawn.HungerDecay != 0.02 {
		t.Fatalf("pawn overlay: speed=%v hunger_decay=%v", got.Pawn.Speed, got.Pawn.HungerDecay)
	}
	if got.Jobs.HaulBatch != 10 {
		t.Fatalf("jobs.haul_batch: got %d want 10", got.Jobs.HaulBatch)
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(p, []byte("map_width: 0\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(p); err == nil {
		t.Fatalf("expected error for zero map width")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestPawnName(t *testing.T) {
	tu := Defaults()
	if got := tu.PawnName(0); got != "Alex" {
		t.Fatalf("slot 0: got %q", got)
	}
	if got := tu.PawnName(9); got != "Pawn 10" {
		t.Fatalf("slot 9: got %q", got)
	}
}
