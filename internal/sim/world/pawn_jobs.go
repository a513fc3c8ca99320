package world

import "fmt"

// findJob walks the priority ladder: critical fatigue, hunger, blueprint
// deliveries, construction, designated labor. The first rung that yields a
// job wins; otherwise the pawn stays idle.
func (p *Pawn) findJob(w *World) {
	v := p.vitals()

	if w.needs.CriticalFatigue.Eval(v) {
		if bed := w.NearestSleepBuilding(p.Pos); bed != nil {
			p.Job = &SleepJob{Bed: bed}
			p.travelTo(float64(bed.X), float64(bed.Y))
			return
		}
		p.Job = &SleepGroundJob{}
		p.State = StateSleeping
		w.ShowFloatingText(p.Pos.X, p.Pos.Y, "Sleeping on ground", colorSleep)
		return
	}

	if w.needs.Hungry.Eval(v) {
		if t := w.NearestItem(p.Pos, MaterialFood); t != nil {
			p.Job = &EatItemJob{Tile: t}
			p.travelTo(float64(t.X), float64(t.Y))
			return
		}
		if t := w.NearestObject(p.Pos, ObjectBerryBush); t != nil {
			p.Job = &EatBushJob{Tile: t}
			p.travelTo(float64(t.X), float64(t.Y))
			return
		}
	}

	if site, m, ok := w.BlueprintNeedingMaterial(); ok {
		if src := w.NearestItem(p.Pos, m); src != nil {
			p.Job = &HaulBuildJob{Site: site, Source: src, Material: m}
			p.travelTo(float64(src.X), float64(src.Y))
			return
		}
	}

	if site := w.BlueprintReadyToBuild(); site != nil {
		p.Job = &ConstructJob{Site: site}
		p.travelTo(float64(site.X), float64(site.Y))
		return
	}

	if t := w.NearestOpenDesignation(p); t != nil {
		p.Job = &LaborJob{Work: t.Designation, Tile: t}
		p.travelTo(float64(t.X), float64(t.Y))
	}
}

func (p *Pawn) doWork(w *World) {
	if p.Job == nil {
		p.State = StateIdle
		return
	}
	p.WorkTimer++
	if p.WorkTimer >= workDuration(p.Job, w.cfg.Jobs) {
		p.completeJob(w)
	}
}

// completeJob applies the job's effect. Targets that vanished while the pawn
// worked abandon the job without yield.
func (p *Pawn) completeJob(w *World) {
	cfg := w.cfg.Jobs
	entry := JournalEntry{Kind: JournalJobDone, Pawn: p.Name, Detail: string(p.Job.Kind())}

	switch job := p.Job.(type) {
	case *HaulBuildJob:
		if c := p.Carrying; c != nil {
			entry.Building, entry.BuildingType = job.Site.ID, job.Site.Type
			entry.Material, entry.Amount = string(c.Material), c.Amount
			if job.Site.Blueprint {
				job.Site.AddMaterial(c.Material, c.Amount)
				w.ShowFloatingText(p.Pos.X, p.Pos.Y, fmt.Sprintf("Add %d %s", c.Amount, c.Material), colorDeliver)
			} else {
				x, y := p.Tile()
				w.DropItem(x, y, c.Material, c.Amount)
			}
			p.Carrying = nil
		}
	case *ConstructJob:
		entry.Building, entry.BuildingType = job.Site.ID, job.Site.Type
		w.advanceConstruction(job.Site, p.Pos)
	case *EatBushJob:
		t := job.Tile
		if t.Object != ObjectBerryBush {
			p.abandon(w, "bush gone")
			return
		}
		p.Hunger = 100
		w.DropItem(t.X, t.Y, MaterialFood, cfg.BushFood)
		w.grid.SetObject(t.X, t.Y, ObjectNone)
		entry.X, entry.Y = t.X, t.Y
	case *EatItemJob:
		t := job.Tile
		got := w.takeItem(t, MaterialFood, cfg.EatAmount)
		if got == 0 {
			p.abandon(w, "food gone")
			return
		}
		p.Hunger = 100
		w.ShowFloatingText(p.Pos.X, p.Pos.Y, "Ate food", colorGood)
		entry.X, entry.Y = t.X, t.Y
		entry.Material, entry.Amount = string(MaterialFood), got
	case *LaborJob:
		t := job.Tile
		if t.Object != job.Work.Object() {
			p.abandon(w, "target gone")
			return
		}
		m, n := laborYield(job.Work, cfg.ChopYield, cfg.MineYield, cfg.HarvestYield)
		w.grid.SetObject(t.X, t.Y, ObjectNone)
		w.DropItem(t.X, t.Y, m, n)
		entry.X, entry.Y = t.X, t.Y
		entry.Material, entry.Amount = string(m), n
	}

	w.journalEvent(entry)
	p.Job = nil
	p.State = StateIdle
	w.refresh()
}

func laborYield(d Designation, chop, mine, harvest int) (Material, int) {
	switch d {
	case DesignationChop:
		return MaterialWood, chop
	case DesignationMine:
		return MaterialStone, mine
	default:
		return MaterialFood, harvest
	}
}

// abandon drops the current job and returns the pawn to IDLE. Anything carried
// is put down on the pawn's tile.
func (p *Pawn) abandon(w *World, reason string) {
	kind := ""
	if p.Job != nil {
		kind = string(p.Job.Kind())
	}
	if p.Carrying != nil {
		x, y := p.Tile()
		w.DropItem(x, y, p.Carrying.Material, p.Carrying.Amount)
		p.Carrying = nil
	}
	p.Job = nil
	p.Target = nil
	p.State = StateIdle
	p.WorkTimer = 0
	x, y := p.Tile()
	w.journalEvent(JournalEntry{Kind: JournalJobAbandoned, Pawn: p.Name, X: x, Y: y, Detail: kind + ": " + reason})
}
