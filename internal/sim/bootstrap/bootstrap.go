// Package bootstrap builds a fresh colony: terrain, starter stock and the pawn roster.
package bootstrap

import (
	"fmt"
	"math"

	"tinycolony.dev/internal/sim/catalogs"
	"tinycolony.dev/internal/sim/tuning"
	"tinycolony.dev/internal/sim/world"
)

// maxSpawnAttempts bounds the random search for a free spawn tile.
const maxSpawnAttempts = 1000

// NewColony creates a world and runs Generate, StockStarter and SpawnPawns on it.
func NewColony(cfg tuning.Tuning, cats *catalogs.Catalogs) (*world.World, error) {
	w, err := world.New(cfg, cats)
	if err != nil {
		return nil, err
	}
	Generate(w)
	StockStarter(w)
	if err := SpawnPawns(w); err != nil {
		return nil, err
	}
	return w, nil
}

// Center returns the tile the colony starts around.
func Center(w *world.World) (int, int) {
	g := w.Grid()
	return g.W / 2, g.H / 2
}

// Generate scatters trees, rocks and berry bushes outside the clear core
// around the map center. Rolls come from the world RNG so the seed fixes the map.
func Generate(w *world.World) {
	g := w.Grid()
	gen := w.Tuning().WorldGen
	rng := w.Rand()
	hw, hh := float64(g.W)/2, float64(g.H)/2
	r := float64(gen.ClearRadius)

	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			if math.Abs(float64(x)-hw) <= r && math.Abs(float64(y)-hh) <= r {
				continue
			}
			roll := rng.Float64()
			switch {
			case roll < gen.TreeChance:
				g.SetObject(x, y, world.ObjectTree)
			case roll < gen.TreeChance+gen.RockChance:
				g.SetObject(x, y, world.ObjectRock)
			case roll < gen.TreeChance+gen.RockChance+gen.BerryChance:
				g.SetObject(x, y, world.ObjectBerryBush)
			}
		}
	}
}

// StockStarter drops the starting food on the center tile and wood just south of it.
func StockStarter(w *world.World) {
	cx, cy := Center(w)
	gen := w.Tuning().WorldGen
	w.DropItem(cx, cy, world.MaterialFood, gen.StarterFood)
	w.DropItem(cx, cy+1, world.MaterialWood, gen.StarterWood)
}

// SpawnPawns places pawn_count pawns on free tiles near the center.
func SpawnPawns(w *world.World) error {
	cfg := w.Tuning()
	g := w.Grid()
	rng := w.Rand()
	cx, cy := Center(w)
	r := float64(cfg.WorldGen.SpawnRadius)

	for i := 0; i < cfg.PawnCount; i++ {
		placed := false
		for attempt := 0; attempt < maxSpawnAttempts; attempt++ {
			x := cx + int(math.Floor(rng.Float64()*2*r-r))
			y := cy + int(math.Floor(rng.Float64()*2*r-r))
			if t := g.At(x, y); t != nil && free(t) {
				w.SpawnPawn(cfg.PawnName(i), float64(x), float64(y))
				placed = true
				break
			}
		}
		if !placed {
			return fmt.Errorf("bootstrap: no free tile for pawn %d near (%d,%d)", i, cx, cy)
		}
	}
	return nil
}

func free(t *world.Tile) bool {
	return t.Walkable && t.Object == world.ObjectNone && t.Building == nil
}
