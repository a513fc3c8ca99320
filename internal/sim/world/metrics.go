package world

// WorldMetrics is a thread-safe read-only view of key world runtime signals.
// It is updated from the world loop goroutine and read from HTTP handlers/tests.
type WorldMetrics struct {
	Tick uint64 `json:"tick"`

	Pawns      int            `json:"pawns"`
	PawnStates map[string]int `json:"pawn_states"`
	Viewers    int            `json:"viewers"`
	Particles  int            `json:"particles"`

	Buildings  int `json:"buildings"`
	Blueprints int `json:"blueprints"`
	Designated int `json:"designated_tiles"`

	Resources map[string]int `json:"resources"`

	QueueDepths QueueDepths `json:"queue_depths"`

	StepMS float64 `json:"step_ms"`
	// Digest is the state digest taken at the last refresh tick.
	Digest string `json:"digest,omitempty"`
}

type QueueDepths struct {
	Inbox int `json:"inbox"`
	Join  int `json:"join"`
	Leave int `json:"leave"`
}

func (w *World) Metrics() WorldMetrics {
	if w == nil {
		return WorldMetrics{}
	}
	v := w.metrics.Load()
	if v == nil {
		return WorldMetrics{}
	}
	m, ok := v.(WorldMetrics)
	if !ok {
		return WorldMetrics{}
	}
	return m
}

func (w *World) storeMetrics(tick uint64, stepMS float64) {
	states := map[string]int{}
	for _, p := range w.pawns {
		states[string(p.State)]++
	}
	blueprints := 0
	for _, b := range w.buildings {
		if b.Blueprint {
			blueprints++
		}
	}
	designated := 0
	w.grid.Each(func(t *Tile) {
		if t.Designation != DesignationNone {
			designated++
		}
	})
	w.metrics.Store(WorldMetrics{
		Tick:       tick,
		Pawns:      len(w.pawns),
		PawnStates: states,
		Viewers:    len(w.viewers),
		Particles:  len(w.particles),
		Buildings:  len(w.buildings),
		Blueprints: blueprints,
		Designated: designated,
		Resources:  w.ledger.Snapshot(),
		QueueDepths: QueueDepths{
			Inbox: len(w.inbox),
			Join:  len(w.join),
			Leave: len(w.leave),
		},
		StepMS: stepMS,
		Digest: w.lastDigest,
	})
}
