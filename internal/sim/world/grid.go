package world

// ItemStack is an amount of one material lying on a tile or carried by a pawn.
type ItemStack struct {
	Material Material
	Amount   int
}

type Tile struct {
	X int
	Y int

	Object      TerrainObject
	Designation Designation
	// Items holds at most one stack per material, in drop order.
	Items    []ItemStack
	Building *Building
	Walkable bool
}

func (t *Tile) Amount(m Material) int {
	for _, it := range t.Items {
		if it.Material == m {
			return it.Amount
		}
	}
	return 0
}

func (t *Tile) HasItem(m Material) bool { return t.Amount(m) > 0 }

func (t *Tile) Pos() Vec2 { return Vec2{X: float64(t.X), Y: float64(t.Y)} }

func (t *Tile) addItem(m Material, amount int) {
	for i := range t.Items {
		if t.Items[i].Material == m {
			t.Items[i].Amount += amount
			return
		}
	}
	t.Items = append(t.Items, ItemStack{Material: m, Amount: amount})
}

// takeItem removes up to max units of m and returns how many were removed.
// An exhausted stack is removed from the tile.
func (t *Tile) takeItem(m Material, max int) int {
	for i := range t.Items {
		if t.Items[i].Material != m {
			continue
		}
		n := t.Items[i].Amount
		if n > max {
			n = max
		}
		t.Items[i].Amount -= n
		if t.Items[i].Amount <= 0 {
			t.Items = append(t.Items[:i], t.Items[i+1:]...)
		}
		return n
	}
	return 0
}

func (t *Tile) refreshWalkable() {
	t.Walkable = t.Building == nil && t.Object.Walkable()
}

// Grid is the W x H tile map, stored x-major so Each visits columns in order.
type Grid struct {
	W     int
	H     int
	tiles []Tile
}

func NewGrid(w, h int) *Grid {
	g := &Grid{W: w, H: h, tiles: make([]Tile, w*h)}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			t := &g.tiles[x*h+y]
			t.X, t.Y = x, y
			t.Walkable = true
		}
	}
	return g
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// At returns the tile at (x, y), or nil outside the map.
func (g *Grid) At(x, y int) *Tile {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.tiles[x*g.H+y]
}

// Each visits every tile, x outer and y inner.
func (g *Grid) Each(fn func(t *Tile)) {
	for i := range g.tiles {
		fn(&g.tiles[i])
	}
}

// SetObject places a terrain object, recomputing walkability. Clearing an
// object also clears any designation on it.
func (g *Grid) SetObject(x, y int, o TerrainObject) {
	t := g.At(x, y)
	if t == nil {
		return
	}
	t.Object = o
	if o == ObjectNone {
		t.Designation = DesignationNone
	}
	t.refreshWalkable()
}
