package bootstrap

import (
	"math"
	"testing"

	"tinycolony.dev/internal/sim/catalogs"
	"tinycolony.dev/internal/sim/tuning"
	"tinycolony.dev/internal/sim/world"
)

func loadCatalogs(t *testing.T) *catalogs.Catalogs {
	t.Helper()
	cats, err := catalogs.Load("../../../configs")
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	return cats
}

func TestNewColony_Layout(t *testing.T) {
	cfg := tuning.Defaults()
	w, err := NewColony(cfg, loadCatalogs(t))
	if err != nil {
		t.Fatalf("NewColony: %v", err)
	}
	g := w.Grid()

	counts := map[world.TerrainObject]int{}
	g.Each(func(tile *world.Tile) {
		counts[tile.Object]++
		inCore := math.Abs(float64(tile.X)-25) <= 4 && math.Abs(float64(tile.Y)-25) <= 4
		if inCore && tile.Object != world.ObjectNone {
			t.Fatalf("object in clear core at (%d,%d)", tile.X, tile.Y)
		}
		if tile.Object == world.ObjectRock && tile.Walkable {
			t.Fatalf("walkable rock at (%d,%d)", tile.X, tile.Y)
		}
	})
	if counts[world.ObjectTree] == 0 || counts[world.ObjectRock] == 0 || counts[world.ObjectBerryBush] == 0 {
		t.Fatalf("terrain mix: %v", counts)
	}
	if counts[world.ObjectTree] < counts[world.ObjectRock] {
		t.Fatalf("expected trees to outnumber rocks: %v", counts)
	}

	if got := g.At(25, 25).Amount(world.MaterialFood); got != 20 {
		t.Fatalf("starter food=%d", got)
	}
	if got := g.At(25, 26).Amount(world.MaterialWood); got != 50 {
		t.Fatalf("starter wood=%d", got)
	}
	if w.Ledger().Get(world.MaterialFood) != 20 || w.Ledger().Get(world.MaterialWood) != 50 {
		t.Fatalf("ledger: %v", w.Ledger().Snapshot())
	}

	pawns := w.Pawns()
	if len(pawns) != 3 {
		t.Fatalf("pawns=%d", len(pawns))
	}
	for i, p := range pawns {
		if p.Name != cfg.PawnNames[i] || p.State != world.StateIdle || p.Hunger != 100 || p.Rest != 100 {
			t.Fatalf("pawn %d: %+v", i, p)
		}
		if p.Pos.X < 22 || p.Pos.X > 27 || p.Pos.Y < 22 || p.Pos.Y > 27 {
			t.Fatalf("pawn %d spawned at %+v", i, p.Pos)
		}
	}
}

func TestNewColony_SameSeedSameMap(t *testing.T) {
	cats := loadCatalogs(t)
	cfg := tuning.Defaults()
	a, err := NewColony(cfg, cats)
	if err != nil {
		t.Fatalf("a: %v", err)
	}
	b, err := NewColony(cfg, cats)
	if err != nil {
		t.Fatalf("b: %v", err)
	}
	if a.StateDigest() != b.StateDigest() {
		t.Fatalf("same seed, different colonies")
	}

	cfg.Seed++
	c, err := NewColony(cfg, cats)
	if err != nil {
		t.Fatalf("c: %v", err)
	}
	if a.StateDigest() == c.StateDigest() {
		t.Fatalf("different seeds, same colony")
	}
}

func TestSpawnPawns_NoRoom(t *testing.T) {
	cfg := tuning.Defaults()
	cfg.MapWidth, cfg.MapHeight = 4, 4
	cfg.WorldGen.ClearRadius = -1
	cfg.WorldGen.TreeChance = 1
	_, err := NewColony(cfg, loadCatalogs(t))
	if err == nil {
		t.Fatalf("expected spawn failure on a map full of trees")
	}
}
