package world

import "math"

type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Dist(o Vec2) float64 { return math.Hypot(o.X-v.X, o.Y-v.Y) }

// Material is a stockpiled resource kind.
type Material string

const (
	MaterialWood  Material = "wood"
	MaterialStone Material = "stone"
	MaterialFood  Material = "food"
)

// Materials lists every material in the fixed order used for scans and digests.
var Materials = []Material{MaterialWood, MaterialStone, MaterialFood}

func (m Material) Valid() bool {
	switch m {
	case MaterialWood, MaterialStone, MaterialFood:
		return true
	}
	return false
}

func (m Material) Title() string {
	switch m {
	case MaterialWood:
		return "Wood"
	case MaterialStone:
		return "Stone"
	case MaterialFood:
		return "Food"
	}
	return string(m)
}

// TerrainObject is the natural feature standing on a tile.
type TerrainObject uint8

const (
	ObjectNone TerrainObject = iota
	ObjectTree
	ObjectRock
	ObjectBerryBush
)

func (o TerrainObject) String() string {
	switch o {
	case ObjectTree:
		return "tree"
	case ObjectRock:
		return "rock"
	case ObjectBerryBush:
		return "berry_bush"
	}
	return "none"
}

// Walkable reports whether a pawn may stand on a tile holding this object.
func (o TerrainObject) Walkable() bool { return o != ObjectRock }

// Designation is a player-issued labor order on a tile.
type Designation uint8

const (
	DesignationNone Designation = iota
	DesignationChop
	DesignationMine
	DesignationHarvest
)

func (d Designation) String() string {
	switch d {
	case DesignationChop:
		return "chop"
	case DesignationMine:
		return "mine"
	case DesignationHarvest:
		return "harvest"
	}
	return "none"
}

// Object returns the terrain object a designation acts on.
func (d Designation) Object() TerrainObject {
	switch d {
	case DesignationChop:
		return ObjectTree
	case DesignationMine:
		return ObjectRock
	case DesignationHarvest:
		return ObjectBerryBush
	}
	return ObjectNone
}

// jsRound rounds half up, matching how click and drop coordinates snap to tiles.
func jsRound(v float64) int { return int(math.Floor(v + 0.5)) }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampNeed(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
