package world

import (
	"tinycolony.dev/internal/protocol"
	simenc "tinycolony.dev/internal/sim/encoding"
)

func (w *World) buildFrame(nowTick uint64, withMap bool) protocol.FrameMsg {
	f := protocol.FrameMsg{
		Type:            protocol.TypeFrame,
		ProtocolVersion: protocol.Version,
		Tick:            nowTick,
		Resources:       w.ledger.Snapshot(),
		Pawns:           make([]protocol.PawnView, 0, len(w.pawns)),
		Particles:       make([]protocol.ParticleView, 0, len(w.particles)),
		Buildings:       make([]protocol.BuildingView, 0, len(w.buildings)),
	}
	for _, p := range w.pawns {
		pv := protocol.PawnView{
			ID:     p.ID,
			Name:   p.Name,
			Color:  p.Color,
			Pos:    [2]float64{p.Pos.X, p.Pos.Y},
			State:  string(p.State),
			Status: PawnStatus(p),
			Hunger: p.Hunger,
			Rest:   p.Rest,
		}
		if p.Job != nil {
			pv.Job = string(p.Job.Kind())
		}
		if p.Carrying != nil {
			pv.Carrying = &protocol.ItemStack{Material: string(p.Carrying.Material), Amount: p.Carrying.Amount}
		}
		f.Pawns = append(f.Pawns, pv)
	}
	for _, pt := range w.particles {
		f.Particles = append(f.Particles, protocol.ParticleView{
			Pos:    [2]float64{pt.Pos.X, pt.Pos.Y},
			Text:   pt.Text,
			Color:  pt.Color,
			Life:   pt.Life,
			Offset: pt.Offset,
		})
	}
	for _, b := range w.buildings {
		bv := protocol.BuildingView{
			ID:        b.ID,
			Type:      b.Type,
			Pos:       [2]int{b.X, b.Y},
			Size:      [2]int{b.W, b.H},
			Blueprint: b.Blueprint,
			Progress:  b.Progress,
		}
		if b.Blueprint {
			bv.Needed = materialMap(b.Needed)
			bv.Delivered = materialMap(b.Delivered)
		}
		f.Buildings = append(f.Buildings, bv)
	}
	if withMap {
		f.Map = w.buildMapLayers()
	}
	return f
}

func (w *World) buildMapLayers() *protocol.MapLayers {
	n := w.grid.W * w.grid.H
	objects := make([]uint8, 0, n)
	designations := make([]uint8, 0, n)
	walkable := make([]uint8, 0, n)
	items := []protocol.TileItems{}
	w.grid.Each(func(t *Tile) {
		objects = append(objects, uint8(t.Object))
		designations = append(designations, uint8(t.Designation))
		if t.Walkable {
			walkable = append(walkable, 1)
		} else {
			walkable = append(walkable, 0)
		}
		if len(t.Items) == 0 {
			return
		}
		ti := protocol.TileItems{Pos: [2]int{t.X, t.Y}, Items: make([]protocol.ItemStack, 0, len(t.Items))}
		for _, it := range t.Items {
			ti.Items = append(ti.Items, protocol.ItemStack{Material: string(it.Material), Amount: it.Amount})
		}
		items = append(items, ti)
	})
	return &protocol.MapLayers{
		Width:        w.grid.W,
		Height:       w.grid.H,
		Encoding:     "RLE",
		Objects:      simenc.EncodeRLE(objects),
		Designations: simenc.EncodeRLE(designations),
		Walkable:     simenc.EncodeRLE(walkable),
		Items:        items,
	}
}

func materialMap(m map[Material]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return out
}
