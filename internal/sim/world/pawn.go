package world

import (
	"fmt"

	"tinycolony.dev/internal/sim/needs"
)

type PawnState string

const (
	StateIdle      PawnState = "IDLE"
	StateMoving    PawnState = "MOVING"
	StateWorking   PawnState = "WORKING"
	StateSleeping  PawnState = "SLEEPING"
	StatePassedOut PawnState = "PASSED_OUT"
)

type Pawn struct {
	ID    int
	Name  string
	Color string

	Pos    Vec2
	Target *Vec2
	State  PawnState
	Job    Job

	Hunger float64
	Rest   float64

	Carrying  *ItemStack
	WorkTimer int
}

func (p *Pawn) vitals() needs.Vitals {
	return needs.Vitals{
		Hunger:   p.Hunger,
		Rest:     p.Rest,
		Carrying: p.Carrying != nil,
		State:    string(p.State),
	}
}

// Tile returns the map coordinates the pawn is standing on.
func (p *Pawn) Tile() (int, int) { return jsRound(p.Pos.X), jsRound(p.Pos.Y) }

// Update advances the pawn by one tick: need decay, the pass-out check,
// then the handler for the current state.
func (p *Pawn) Update(w *World) {
	cfg := w.cfg.Pawn

	p.Hunger = clampNeed(p.Hunger - cfg.HungerDecay)
	if p.State != StateSleeping && p.State != StatePassedOut {
		p.Rest = clampNeed(p.Rest - cfg.RestDecay)
	}

	if p.Rest <= 0 && p.State != StateSleeping && p.State != StatePassedOut {
		p.passOut(w)
	}

	switch p.State {
	case StateIdle:
		p.findJob(w)
		if p.Job == nil && w.rng.Float64() < cfg.WanderChance {
			r := cfg.WanderRadius
			dx := w.rng.Float64()*2*r - r
			dy := w.rng.Float64()*2*r - r
			p.setDestination(w, p.Pos.X+dx, p.Pos.Y+dy)
		}
	case StateMoving:
		p.move(w)
	case StateWorking:
		p.doWork(w)
	case StateSleeping:
		p.doSleep(w)
	case StatePassedOut:
		p.doPassedOut(w)
	}
}

func (p *Pawn) passOut(w *World) {
	if p.Carrying != nil {
		x, y := p.Tile()
		w.DropItem(x, y, p.Carrying.Material, p.Carrying.Amount)
		p.Carrying = nil
	}
	kind := ""
	if p.Job != nil {
		kind = string(p.Job.Kind())
	}
	p.State = StatePassedOut
	p.Job = nil
	p.Target = nil
	p.WorkTimer = 0

	x, y := p.Tile()
	w.journalEvent(JournalEntry{Kind: JournalPassedOut, Pawn: p.Name, X: x, Y: y, Detail: kind})
	if w.logger != nil {
		w.logger.Printf("%s passed out at (%d,%d)", p.Name, x, y)
	}
}

func (p *Pawn) doSleep(w *World) {
	cfg := w.cfg.Pawn
	recovery := cfg.BedRecovery
	if _, ok := p.Job.(*SleepGroundJob); ok {
		recovery = cfg.GroundRecovery
	}
	p.Rest += recovery
	if w.rng.Float64() < cfg.SleepTextChance {
		w.ShowFloatingText(p.Pos.X, p.Pos.Y, "Zzz", colorSleep)
	}
	if p.Rest >= 100 {
		p.Rest = 100
		p.State = StateIdle
		p.Job = nil
		w.ShowFloatingText(p.Pos.X, p.Pos.Y, "Refreshed!", colorGood)
	}
}

func (p *Pawn) doPassedOut(w *World) {
	cfg := w.cfg.Pawn
	p.Rest = clampNeed(p.Rest + cfg.PassedOutRecovery)
	if w.rng.Float64() < cfg.PassedOutTextChance {
		w.ShowFloatingText(p.Pos.X, p.Pos.Y, "...", colorDim)
	}
	if p.Rest >= cfg.WakeThreshold {
		p.State = StateIdle
		w.ShowFloatingText(p.Pos.X, p.Pos.Y, "Ugh...", colorDim)
	}
}

// SpawnPawn adds a pawn at full needs. The roster is built once at bootstrap.
func (w *World) SpawnPawn(name string, x, y float64) *Pawn {
	p := &Pawn{
		ID:     len(w.pawns),
		Name:   name,
		Color:  pawnColor(w.rng.Intn(360)),
		Pos:    Vec2{X: x, Y: y},
		State:  StateIdle,
		Hunger: 100,
		Rest:   100,
	}
	w.pawns = append(w.pawns, p)
	return p
}

func pawnColor(hue int) string { return fmt.Sprintf("hsl(%d, 70%%, 50%%)", hue) }
