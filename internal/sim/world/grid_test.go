package world

import "testing"

func TestDropItem_MergesStacksAndCreditsLedger(t *testing.T) {
	w := newTestWorld(t)

	w.DropItem(3, 4, MaterialWood, 10)
	w.DropItem(3, 4, MaterialWood, 5)
	w.DropItem(3, 4, MaterialStone, 2)

	tile := w.grid.At(3, 4)
	if len(tile.Items) != 2 {
		t.Fatalf("expected 2 stacks, got %+v", tile.Items)
	}
	if tile.Items[0] != (ItemStack{Material: MaterialWood, Amount: 15}) {
		t.Fatalf("wood stack: %+v", tile.Items[0])
	}
	if tile.Items[1] != (ItemStack{Material: MaterialStone, Amount: 2}) {
		t.Fatalf("stone stack: %+v", tile.Items[1])
	}
	if got := w.ledger.Get(MaterialWood); got != 15 {
		t.Fatalf("ledger wood=%d", got)
	}
	if got := w.ledger.Get(MaterialStone); got != 2 {
		t.Fatalf("ledger stone=%d", got)
	}
}

func TestDropItem_OutOfBoundsIsNoop(t *testing.T) {
	w := newTestWorld(t)
	w.DropItem(-1, 0, MaterialFood, 5)
	w.DropItem(0, w.grid.H, MaterialFood, 5)
	if got := w.ledger.Get(MaterialFood); got != 0 {
		t.Fatalf("ledger food=%d", got)
	}
}

func TestTakeItem_RemovesExhaustedStack(t *testing.T) {
	w := newTestWorld(t)
	w.DropItem(1, 1, MaterialFood, 7)
	tile := w.grid.At(1, 1)

	if got := w.takeItem(tile, MaterialFood, 5); got != 5 {
		t.Fatalf("first take=%d", got)
	}
	if got := w.takeItem(tile, MaterialFood, 5); got != 2 {
		t.Fatalf("second take=%d", got)
	}
	if len(tile.Items) != 0 {
		t.Fatalf("stack not removed: %+v", tile.Items)
	}
	if tile.HasItem(MaterialFood) {
		t.Fatalf("tile still has food")
	}
	if got := w.takeItem(tile, MaterialFood, 5); got != 0 {
		t.Fatalf("take from empty=%d", got)
	}
	if got := w.ledger.Get(MaterialFood); got != 0 {
		t.Fatalf("ledger food=%d", got)
	}
}

func TestLedgerMatchesItemsOnMap(t *testing.T) {
	w := newTestWorld(t)
	w.DropItem(2, 2, MaterialWood, 30)
	w.DropItem(9, 9, MaterialWood, 12)
	w.DropItem(9, 9, MaterialFood, 4)
	w.takeItem(w.grid.At(2, 2), MaterialWood, 10)

	sums := map[Material]int{}
	w.grid.Each(func(t *Tile) {
		for _, it := range t.Items {
			sums[it.Material] += it.Amount
		}
	})
	for _, m := range Materials {
		if sums[m] != w.ledger.Get(m) {
			t.Fatalf("%s: map=%d ledger=%d", m, sums[m], w.ledger.Get(m))
		}
	}
}

func TestSetObject_Walkability(t *testing.T) {
	g := NewGrid(4, 4)
	g.SetObject(1, 1, ObjectRock)
	if g.At(1, 1).Walkable {
		t.Fatalf("rock tile should not be walkable")
	}
	g.SetObject(2, 2, ObjectTree)
	if !g.At(2, 2).Walkable {
		t.Fatalf("tree tile should stay walkable")
	}
	g.At(1, 1).Designation = DesignationMine
	g.SetObject(1, 1, ObjectNone)
	if !g.At(1, 1).Walkable || g.At(1, 1).Designation != DesignationNone {
		t.Fatalf("cleared rock tile: %+v", g.At(1, 1))
	}
	if g.At(4, 0) != nil || g.At(0, -1) != nil {
		t.Fatalf("At outside the map should be nil")
	}
}

func TestGridEach_XMajorOrder(t *testing.T) {
	g := NewGrid(2, 3)
	var order [][2]int
	g.Each(func(t *Tile) { order = append(order, [2]int{t.X, t.Y}) })
	want := [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order[%d]=%v want %v", i, order[i], want[i])
		}
	}
}
