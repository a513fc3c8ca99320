package world

// Job finder queries. Scans run x outer, y inner, and keep the first tile
// found at the smallest distance.

// NearestItem returns the closest tile holding material m.
func (w *World) NearestItem(from Vec2, m Material) *Tile {
	return w.nearestTile(from, func(t *Tile) bool { return t.HasItem(m) })
}

// NearestObject returns the closest tile holding terrain object o.
func (w *World) NearestObject(from Vec2, o TerrainObject) *Tile {
	return w.nearestTile(from, func(t *Tile) bool { return t.Object == o })
}

// NearestOpenDesignation returns the closest designated tile that no other
// pawn's current job references.
func (w *World) NearestOpenDesignation(p *Pawn) *Tile {
	return w.nearestTile(p.Pos, func(t *Tile) bool {
		return t.Designation != DesignationNone && !w.claimedByOther(t, p)
	})
}

func (w *World) nearestTile(from Vec2, match func(t *Tile) bool) *Tile {
	var best *Tile
	bestDist := 0.0
	w.grid.Each(func(t *Tile) {
		if !match(t) {
			return
		}
		d := from.Dist(t.Pos())
		if best == nil || d < bestDist {
			best, bestDist = t, d
		}
	})
	return best
}

// claimedByOther is the soft claim check: a tile is taken while another
// pawn's job references it.
func (w *World) claimedByOther(t *Tile, self *Pawn) bool {
	for _, o := range w.pawns {
		if o == self || o.Job == nil {
			continue
		}
		if JobTile(o.Job) == t {
			return true
		}
	}
	return false
}

// NearestSleepBuilding returns the closest finished building pawns sleep in.
func (w *World) NearestSleepBuilding(from Vec2) *Building {
	var best *Building
	bestDist := 0.0
	for _, b := range w.buildings {
		if b.Blueprint || !b.def.Sleep {
			continue
		}
		d := from.Dist(Vec2{X: float64(b.X), Y: float64(b.Y)})
		if best == nil || d < bestDist {
			best, bestDist = b, d
		}
	}
	return best
}

// BlueprintNeedingMaterial returns the first blueprint, in placement order,
// still short of some material, and that material.
func (w *World) BlueprintNeedingMaterial() (*Building, Material, bool) {
	for _, b := range w.buildings {
		if !b.Blueprint {
			continue
		}
		for _, m := range Materials {
			if b.NeedsMaterial(m) {
				return b, m, true
			}
		}
	}
	return nil, "", false
}

// BlueprintReadyToBuild returns the first blueprint with all materials delivered.
func (w *World) BlueprintReadyToBuild() *Building {
	for _, b := range w.buildings {
		if b.IsReadyToBuild() {
			return b
		}
	}
	return nil
}
