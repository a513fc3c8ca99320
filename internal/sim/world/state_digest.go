package world

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// StateDigest hashes the full simulation state at the current tick.
// Two worlds built from the same seed and fed the same commands agree on it.
func (w *World) StateDigest() string { return w.stateDigest(w.tick.Load()) }

func (w *World) stateDigest(nowTick uint64) string {
	h := sha256.New()
	var tmp [8]byte

	digestWriteU64(h, &tmp, nowTick)
	digestWriteU64(h, &tmp, uint64(w.grid.W))
	digestWriteU64(h, &tmp, uint64(w.grid.H))

	w.grid.Each(func(t *Tile) {
		h.Write([]byte{byte(t.Object), byte(t.Designation), boolByte(t.Walkable), boolByte(t.Building != nil)})
		digestWriteU64(h, &tmp, uint64(len(t.Items)))
		for _, it := range t.Items {
			h.Write([]byte(it.Material))
			digestWriteI64(h, &tmp, int64(it.Amount))
		}
	})

	for _, m := range Materials {
		digestWriteI64(h, &tmp, int64(w.ledger.Get(m)))
	}

	digestWriteU64(h, &tmp, uint64(len(w.buildings)))
	for _, b := range w.buildings {
		h.Write([]byte(b.ID))
		h.Write([]byte(b.Type))
		digestWriteI64(h, &tmp, int64(b.X))
		digestWriteI64(h, &tmp, int64(b.Y))
		h.Write([]byte{boolByte(b.Blueprint)})
		digestWriteI64(h, &tmp, int64(b.Progress))
		for _, m := range Materials {
			digestWriteI64(h, &tmp, int64(b.Needed[m]))
			digestWriteI64(h, &tmp, int64(b.Delivered[m]))
		}
	}

	digestWriteU64(h, &tmp, uint64(len(w.pawns)))
	for _, p := range w.pawns {
		h.Write([]byte(p.Name))
		digestWriteF64(h, &tmp, p.Pos.X)
		digestWriteF64(h, &tmp, p.Pos.Y)
		h.Write([]byte(p.State))
		if p.Job != nil {
			h.Write([]byte(p.Job.Kind()))
		}
		digestWriteF64(h, &tmp, p.Hunger)
		digestWriteF64(h, &tmp, p.Rest)
		if p.Carrying != nil {
			h.Write([]byte(p.Carrying.Material))
			digestWriteI64(h, &tmp, int64(p.Carrying.Amount))
		}
		digestWriteI64(h, &tmp, int64(p.WorkTimer))
	}

	return hex.EncodeToString(h.Sum(nil))
}

func digestWriteU64(h hashWriter, tmp *[8]byte, v uint64) {
	binary.LittleEndian.PutUint64(tmp[:], v)
	h.Write(tmp[:])
}

func digestWriteI64(h hashWriter, tmp *[8]byte, v int64) {
	digestWriteU64(h, tmp, uint64(v))
}

func digestWriteF64(h hashWriter, tmp *[8]byte, v float64) {
	digestWriteU64(h, tmp, math.Float64bits(v))
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

type hashWriter interface {
	Write(p []byte) (n int, err error)
}
