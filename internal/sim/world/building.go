package world

import (
	"fmt"

	"github.com/google/uuid"

	"tinycolony.dev/internal/sim/catalogs"
)

// Building is a placed structure. While Blueprint is set it collects
// materials and construction progress; it is never removed once placed.
type Building struct {
	ID   string
	Type string
	X    int
	Y    int
	W    int
	H    int

	Blueprint bool
	Progress  int
	Needed    map[Material]int
	Delivered map[Material]int

	def catalogs.BuildingDef
}

// Center is where haulers drop off materials.
func (b *Building) Center() Vec2 {
	return Vec2{X: float64(b.X) + 0.5, Y: float64(b.Y) + 0.5}
}

func (b *Building) NeedsMaterial(m Material) bool {
	if !b.Blueprint {
		return false
	}
	return b.Delivered[m] < b.Needed[m]
}

func (b *Building) AddMaterial(m Material, amount int) {
	b.Delivered[m] += amount
}

func (b *Building) IsReadyToBuild() bool {
	if !b.Blueprint {
		return false
	}
	for m, n := range b.Needed {
		if b.Delivered[m] < n {
			return false
		}
	}
	return b.Progress < 100
}

// PlaceBuilding validates the footprint of typ at (x, y) and registers the
// building. finalized skips the blueprint phase. Every footprint tile stops
// being walkable immediately.
func (w *World) PlaceBuilding(typ string, x, y int, finalized bool) bool {
	def, ok := w.catalogs.Buildings.ByID[typ]
	if !ok {
		return false
	}
	for dx := 0; dx < def.W; dx++ {
		for dy := 0; dy < def.H; dy++ {
			t := w.grid.At(x+dx, y+dy)
			if t == nil || !t.Walkable || t.Object != ObjectNone || t.Building != nil {
				return false
			}
		}
	}

	b := &Building{
		ID:        w.newBuildingID(),
		Type:      typ,
		X:         x,
		Y:         y,
		W:         def.W,
		H:         def.H,
		Needed:    map[Material]int{},
		Delivered: map[Material]int{},
		def:       def,
	}
	if finalized {
		b.Progress = 100
	} else {
		b.Blueprint = true
		for k, n := range def.Cost {
			if m := Material(k); m.Valid() && n > 0 {
				b.Needed[m] = n
			}
		}
	}
	w.buildings = append(w.buildings, b)
	for dx := 0; dx < def.W; dx++ {
		for dy := 0; dy < def.H; dy++ {
			t := w.grid.At(x+dx, y+dy)
			t.Building = b
			t.Walkable = false
		}
	}

	w.journalEvent(JournalEntry{Kind: JournalPlaced, Building: b.ID, BuildingType: typ, X: x, Y: y, Detail: placedDetail(finalized)})
	w.refresh()
	return true
}

func placedDetail(finalized bool) string {
	if finalized {
		return "finalized"
	}
	return "blueprint"
}

// advanceConstruction applies one construction step to a blueprint.
func (w *World) advanceConstruction(b *Building, at Vec2) {
	if !b.Blueprint {
		return
	}
	b.Progress += w.cfg.Jobs.ConstructStep
	w.ShowFloatingText(at.X, at.Y, fmt.Sprintf("%d%%", minInt(b.Progress, 100)), "#10b981")
	if b.Progress >= 100 {
		w.finishBuilding(b)
	}
}

func (w *World) finishBuilding(b *Building) {
	b.Blueprint = false
	b.Progress = 100
	for dx := 0; dx < b.W; dx++ {
		for dy := 0; dy < b.H; dy++ {
			if t := w.grid.At(b.X+dx, b.Y+dy); t != nil {
				t.Walkable = false
			}
		}
	}
	w.journalEvent(JournalEntry{Kind: JournalBuilt, Building: b.ID, BuildingType: b.Type, X: b.X, Y: b.Y})
	if w.logger != nil {
		w.logger.Printf("building finished: %s %s at (%d,%d)", b.Type, b.ID, b.X, b.Y)
	}
}

// BuildingAt returns the building covering (x, y), if any.
func (w *World) BuildingAt(x, y int) *Building {
	if t := w.grid.At(x, y); t != nil {
		return t.Building
	}
	return nil
}

func (w *World) newBuildingID() string {
	id, err := uuid.NewRandomFromReader(w.rng)
	if err != nil {
		w.nextBuildingNum++
		return fmt.Sprintf("B%06d", w.nextBuildingNum)
	}
	return id.String()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
