package world

import (
	"encoding/json"
	"fmt"

	"tinycolony.dev/internal/protocol"
)

type viewerState struct {
	Name string
	Out  chan []byte
}

// handleJoin attaches a viewer. Viewers never affect the simulation, so
// joins are served immediately rather than at a tick boundary.
func (w *World) handleJoin(req JoinRequest) {
	w.nextViewerNum++
	id := fmt.Sprintf("V%d", w.nextViewerNum)
	if req.Out != nil {
		w.viewers[id] = &viewerState{Name: req.Name, Out: req.Out}
	}
	w.mapDirty = true
	if req.Resp != nil {
		req.Resp <- JoinResponse{Welcome: w.buildWelcome(id)}
	}
}

func (w *World) handleLeave(id string) {
	delete(w.viewers, id)
}

func (w *World) buildWelcome(viewerID string) protocol.WelcomeMsg {
	defs := make([]protocol.BuildingDef, 0, len(w.catalogs.Buildings.Order))
	for _, id := range w.catalogs.Buildings.Order {
		d := w.catalogs.Buildings.ByID[id]
		defs = append(defs, protocol.BuildingDef{
			ID: d.ID, Name: d.Name, W: d.W, H: d.H, Cost: d.Cost,
			Color: d.Color, Symbol: d.Symbol, Sleep: d.Sleep,
		})
	}
	return protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		ViewerID:        viewerID,
		Tick:            w.tick.Load(),
		WorldParams: protocol.WorldParams{
			TickRateHz:        w.cfg.TickRateHz,
			RefreshEveryTicks: w.cfg.RefreshEveryTicks,
			Width:             w.grid.W,
			Height:            w.grid.H,
			Seed:              w.cfg.Seed,
		},
		Catalogs: protocol.CatalogDigests{
			BuildingsDigest: w.catalogs.Buildings.Digest,
			TuningDigest:    w.cfg.Digest(),
		},
		Buildings: defs,
		Tools:     w.Tools(),
	}
}

func (w *World) applyCommand(nowTick uint64, env CommandEnvelope) {
	res := w.Interact(env.Cmd.Tool, env.Cmd.X, env.Cmd.Y)
	v := w.viewers[env.ViewerID]
	if v == nil {
		return
	}
	msg := protocol.ResultMsg{
		Type:            protocol.TypeResult,
		ProtocolVersion: protocol.Version,
		ResultFor:       env.Cmd.ID,
		OK:              res.OK,
		Code:            res.Code,
		Message:         res.Message,
		Tick:            nowTick,
	}
	if res.Inspection != nil {
		msg.Inspect = &protocol.InspectView{
			Kind:  res.Inspection.Kind.String(),
			Title: res.Inspection.Title,
			Lines: res.Inspection.Lines,
		}
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return
	}
	sendLatest(v.Out, b)
}

func (w *World) broadcastFrame(nowTick uint64) {
	if len(w.viewers) == 0 {
		return
	}
	frame := w.buildFrame(nowTick, w.mapDirty)
	b, err := json.Marshal(frame)
	if err != nil {
		return
	}
	w.mapDirty = false
	for _, v := range w.viewers {
		sendLatest(v.Out, b)
	}
}

// sendLatest never blocks the world loop: when the buffer is full the oldest
// queued message is dropped.
func sendLatest(ch chan []byte, b []byte) {
	select {
	case ch <- b:
		return
	default:
	}
	// Drop one.
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- b:
	default:
	}
}
