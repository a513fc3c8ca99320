package world

import (
	"testing"

	"tinycolony.dev/internal/sim/catalogs"
)

func TestPlaceBuilding_FootprintValidation(t *testing.T) {
	w := newTestWorld(t)
	w.grid.SetObject(10, 11, ObjectTree)

	cases := []struct {
		name string
		typ  string
		x, y int
		want bool
	}{
		{"unknown type", "castle", 5, 5, false},
		{"past east edge", "tent", w.grid.W - 1, 5, false},
		{"past south edge", "tent", 5, w.grid.H - 1, false},
		{"negative origin", "tent", -1, 5, false},
		{"tree in footprint", "tent", 9, 10, false},
		{"fits at corner", "tent", w.grid.W - 2, w.grid.H - 2, true},
	}
	for _, tc := range cases {
		if got := w.PlaceBuilding(tc.typ, tc.x, tc.y, false); got != tc.want {
			t.Fatalf("%s: PlaceBuilding=%v want %v", tc.name, got, tc.want)
		}
	}
}

func TestPlaceBuilding_MarksTilesAndRejectsOverlap(t *testing.T) {
	w := newTestWorld(t)
	if !w.PlaceBuilding("tent", 20, 20, false) {
		t.Fatalf("place tent")
	}
	b := w.buildings[0]
	if !b.Blueprint || b.Progress != 0 || b.Needed[MaterialWood] != 30 {
		t.Fatalf("blueprint state: %+v", b)
	}
	for dx := 0; dx < 2; dx++ {
		for dy := 0; dy < 2; dy++ {
			tile := w.grid.At(20+dx, 20+dy)
			if tile.Building != b || tile.Walkable {
				t.Fatalf("tile (%d,%d) not claimed by building", tile.X, tile.Y)
			}
		}
	}
	if w.PlaceBuilding("tent", 21, 21, false) {
		t.Fatalf("overlap accepted")
	}
	if w.BuildingAt(21, 21) != b || w.BuildingAt(22, 22) != nil {
		t.Fatalf("BuildingAt lookup wrong")
	}
}

func TestPlaceBuilding_Finalized(t *testing.T) {
	w := newTestWorld(t)
	if !w.PlaceBuilding("base_camp", 5, 5, true) {
		t.Fatalf("place base camp")
	}
	b := w.buildings[0]
	if b.Blueprint || b.Progress != 100 || len(b.Needed) != 0 {
		t.Fatalf("finalized state: %+v", b)
	}
	if b.IsReadyToBuild() || b.NeedsMaterial(MaterialWood) {
		t.Fatalf("finished building should not want work")
	}
}

func TestPlaceBuilding_IDsAreUnique(t *testing.T) {
	w := newTestWorld(t)
	w.PlaceBuilding("tent", 1, 1, false)
	w.PlaceBuilding("tent", 4, 1, false)
	if w.buildings[0].ID == "" || w.buildings[0].ID == w.buildings[1].ID {
		t.Fatalf("ids: %q %q", w.buildings[0].ID, w.buildings[1].ID)
	}
}

func TestConstruction_StepsToCompletion(t *testing.T) {
	w := newTestWorld(t)
	w.PlaceBuilding("base_camp", 10, 10, false)
	b := w.buildings[0]

	if b.IsReadyToBuild() {
		t.Fatalf("ready before delivery")
	}
	b.AddMaterial(MaterialWood, 60)
	if b.IsReadyToBuild() {
		t.Fatalf("ready without stone")
	}
	b.AddMaterial(MaterialStone, 25)
	if !b.IsReadyToBuild() {
		t.Fatalf("not ready after full delivery")
	}

	for i := 1; i <= 5; i++ {
		w.advanceConstruction(b, Vec2{X: 10, Y: 10})
		if i < 5 && (b.Progress != 20*i || !b.Blueprint) {
			t.Fatalf("step %d: progress=%d blueprint=%v", i, b.Progress, b.Blueprint)
		}
	}
	if b.Blueprint || b.Progress != 100 {
		t.Fatalf("not finished: %+v", b)
	}
	if b.IsReadyToBuild() {
		t.Fatalf("finished building still ready to build")
	}
	for dx := 0; dx < b.W; dx++ {
		for dy := 0; dy < b.H; dy++ {
			if w.grid.At(10+dx, 10+dy).Walkable {
				t.Fatalf("footprint tile walkable after finish")
			}
		}
	}

	w.advanceConstruction(b, Vec2{})
	if b.Progress != 100 {
		t.Fatalf("construct on finished building changed progress: %d", b.Progress)
	}
}

func TestPlaceBuilding_IgnoresUnknownCostMaterials(t *testing.T) {
	w := newTestWorld(t)
	w.catalogs.Buildings.ByID["shrine"] = catalogs.BuildingDef{
		ID: "shrine", Name: "Shrine", W: 1, H: 1,
		Cost: map[string]int{"wood": 5, "gold": 3, "stone": 0},
	}
	if !w.PlaceBuilding("shrine", 12, 12, false) {
		t.Fatalf("place shrine")
	}
	b := w.buildings[0]
	if len(b.Needed) != 1 || b.Needed[MaterialWood] != 5 {
		t.Fatalf("needed=%v", b.Needed)
	}
	b.AddMaterial(MaterialWood, 5)
	if !b.IsReadyToBuild() {
		t.Fatalf("shrine should be ready once wood is in: %+v", b)
	}
}
