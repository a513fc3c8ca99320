package world

import "math"

// setDestination snaps (tx, ty) to the nearest tile inside the map and walks
// there if the tile is walkable and free of buildings. Otherwise nothing happens.
func (p *Pawn) setDestination(w *World, tx, ty float64) {
	x := clampInt(jsRound(tx), 0, w.grid.W-1)
	y := clampInt(jsRound(ty), 0, w.grid.H-1)
	t := w.grid.At(x, y)
	if t.Walkable && t.Building == nil {
		p.travelTo(float64(x), float64(y))
	}
}

func (p *Pawn) travelTo(x, y float64) {
	p.Target = &Vec2{X: x, Y: y}
	p.State = StateMoving
}

// move steps straight toward the target at constant speed and handles arrival
// once the remaining distance is under one step.
func (p *Pawn) move(w *World) {
	if p.Target == nil {
		p.State = StateIdle
		p.Job = nil
		return
	}
	speed := w.cfg.Pawn.Speed
	dx := p.Target.X - p.Pos.X
	dy := p.Target.Y - p.Pos.Y
	dist := math.Hypot(dx, dy)
	if dist >= speed {
		p.Pos.X += dx / dist * speed
		p.Pos.Y += dy / dist * speed
		return
	}
	p.Pos = *p.Target
	p.Target = nil
	p.arrive(w)
}

func (p *Pawn) arrive(w *World) {
	switch job := p.Job.(type) {
	case nil:
		p.State = StateIdle
	case *SleepJob:
		p.Pos = job.Bed.Center()
		p.State = StateSleeping
		w.ShowFloatingText(p.Pos.X, p.Pos.Y, "Zzz...", colorSleep)
	case *HaulBuildJob:
		if p.Carrying != nil {
			p.startWork()
			return
		}
		got := w.takeItem(job.Source, job.Material, w.cfg.Jobs.HaulBatch)
		if got == 0 {
			p.abandon(w, "material gone")
			return
		}
		p.Carrying = &ItemStack{Material: job.Material, Amount: got}
		c := job.Site.Center()
		p.travelTo(c.X, c.Y)
		w.ShowFloatingText(p.Pos.X, p.Pos.Y, "Picked up "+string(job.Material), colorPlain)
	case *ConstructJob:
		p.startWork()
	default:
		t := JobTile(p.Job)
		tol := w.cfg.Pawn.ArriveTolerance
		if t != nil && math.Abs(p.Pos.X-float64(t.X)) < tol && math.Abs(p.Pos.Y-float64(t.Y)) < tol {
			p.startWork()
			return
		}
		p.abandon(w, "not at target")
	}
}

func (p *Pawn) startWork() {
	p.State = StateWorking
	p.WorkTimer = 0
}
