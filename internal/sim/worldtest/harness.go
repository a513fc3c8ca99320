package worldtest

import (
	"encoding/json"
	"fmt"
	"testing"

	"tinycolony.dev/internal/protocol"
	"tinycolony.dev/internal/sim/bootstrap"
	"tinycolony.dev/internal/sim/catalogs"
	simenc "tinycolony.dev/internal/sim/encoding"
	"tinycolony.dev/internal/sim/tuning"
	world "tinycolony.dev/internal/sim/world"
)

// Harness drives a bootstrapped colony through exported APIs only:
// - a viewer joins via StepOnce and collects FRAME/RESULT JSON from its Out channel
// - Cmd() issues one tool command at the next tick boundary
// - the latest map layers are decoded so tests can pick targets like a viewer would
type Harness struct {
	T    *testing.T
	Cats *catalogs.Catalogs
	W    *world.World

	ViewerID string

	out       chan []byte
	lastFrame protocol.FrameMsg
	objects   []uint8
	results   map[string]protocol.ResultMsg
	cmdSeq    int
}

func LoadCatalogs(t *testing.T) *catalogs.Catalogs {
	t.Helper()
	cats, err := catalogs.Load("../../../configs")
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	return cats
}

// Tuning returns defaults with the given seed.
func Tuning(seed int64) tuning.Tuning {
	cfg := tuning.Defaults()
	cfg.Seed = seed
	return cfg
}

func NewHarness(t *testing.T, cfg tuning.Tuning) *Harness {
	t.Helper()
	cats := LoadCatalogs(t)
	w, err := bootstrap.NewColony(cfg, cats)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	h := &Harness{
		T:       t,
		Cats:    cats,
		W:       w,
		out:     make(chan []byte, 64),
		results: map[string]protocol.ResultMsg{},
	}

	resp := make(chan world.JoinResponse, 1)
	_, _ = w.StepOnce([]world.JoinRequest{{Name: "harness", Out: h.out, Resp: resp}}, nil, nil)
	jr := <-resp
	if jr.Welcome.ViewerID == "" {
		t.Fatalf("join returned empty viewer id")
	}
	h.ViewerID = jr.Welcome.ViewerID
	h.drain()
	if h.objects == nil {
		t.Fatalf("first frame carried no map layers")
	}
	return h
}

// Cmd applies tool at (x, y) on the next tick and returns the world's RESULT.
func (h *Harness) Cmd(tool string, x, y int) protocol.ResultMsg {
	h.T.Helper()
	h.cmdSeq++
	id := fmt.Sprintf("H%d", h.cmdSeq)
	_, _ = h.W.StepOnce(nil, nil, []world.CommandEnvelope{{
		ViewerID: h.ViewerID,
		Cmd: protocol.CmdMsg{
			Type:            protocol.TypeCmd,
			ProtocolVersion: protocol.Version,
			ID:              id,
			Tool:            tool,
			X:               x,
			Y:               y,
		},
	}})
	h.drain()
	res, ok := h.results[id]
	if !ok {
		h.T.Fatalf("no RESULT for %s", id)
	}
	return res
}

func (h *Harness) StepNoop() protocol.FrameMsg {
	h.T.Helper()
	_, _ = h.W.StepOnce(nil, nil, nil)
	h.drain()
	return h.lastFrame
}

// StepUntil steps until cond holds for the latest frame, failing after max ticks.
func (h *Harness) StepUntil(max int, cond func(f protocol.FrameMsg) bool) protocol.FrameMsg {
	h.T.Helper()
	for i := 0; i < max; i++ {
		f := h.StepNoop()
		if cond(f) {
			return f
		}
	}
	h.T.Fatalf("condition not met within %d ticks (tick=%d resources=%v)", max, h.W.CurrentTick(), h.lastFrame.Resources)
	return h.lastFrame
}

func (h *Harness) LastFrame() protocol.FrameMsg { return h.lastFrame }

// ObjectAt reads the terrain object layer from the last map frame.
func (h *Harness) ObjectAt(x, y int) world.TerrainObject {
	hgt := h.W.Grid().H
	return world.TerrainObject(h.objects[x*hgt+y])
}

// FindObject returns the first tile (x-major) carrying o.
func (h *Harness) FindObject(o world.TerrainObject) (int, int, bool) {
	g := h.W.Grid()
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			if h.ObjectAt(x, y) == o {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

func (h *Harness) drain() {
	h.T.Helper()
	for {
		select {
		case b := <-h.out:
			h.handle(b)
		default:
			return
		}
	}
}

func (h *Harness) handle(b []byte) {
	h.T.Helper()
	base, err := protocol.DecodeBase(b)
	if err != nil {
		h.T.Fatalf("decode: %v", err)
	}
	switch base.Type {
	case protocol.TypeFrame:
		var f protocol.FrameMsg
		if err := json.Unmarshal(b, &f); err != nil {
			h.T.Fatalf("frame: %v", err)
		}
		h.lastFrame = f
		if f.Map != nil {
			objs, err := simenc.DecodeRLE(f.Map.Objects, f.Map.Width*f.Map.Height)
			if err != nil {
				h.T.Fatalf("objects layer: %v", err)
			}
			h.objects = objs
		}
	case protocol.TypeResult:
		var r protocol.ResultMsg
		if err := json.Unmarshal(b, &r); err != nil {
			h.T.Fatalf("result: %v", err)
		}
		h.results[r.ResultFor] = r
	}
}
