package world

import "tinycolony.dev/internal/sim/tuning"

type JobKind string

const (
	JobSleep       JobKind = "SLEEP"
	JobSleepGround JobKind = "SLEEP_GROUND"
	JobEatItem     JobKind = "EAT_ITEM"
	JobEatBush     JobKind = "EAT_BUSH"
	JobHaulBuild   JobKind = "HAUL_BUILD"
	JobConstruct   JobKind = "CONSTRUCT"
	JobChop        JobKind = "chop"
	JobMine        JobKind = "mine"
	JobHarvest     JobKind = "harvest"
)

// Job is the closed set of pawn assignments. Each variant carries exactly
// the references its completion needs.
type Job interface {
	Kind() JobKind
	isJob()
}

type SleepJob struct{ Bed *Building }

type SleepGroundJob struct{}

type EatItemJob struct{ Tile *Tile }

type EatBushJob struct{ Tile *Tile }

// HaulBuildJob carries Material from Source to Site.
type HaulBuildJob struct {
	Site     *Building
	Source   *Tile
	Material Material
}

type ConstructJob struct{ Site *Building }

// LaborJob works a designated tile. Work is the designation it was taken for.
type LaborJob struct {
	Work Designation
	Tile *Tile
}

func (*SleepJob) Kind() JobKind       { return JobSleep }
func (*SleepGroundJob) Kind() JobKind { return JobSleepGround }
func (*EatItemJob) Kind() JobKind     { return JobEatItem }
func (*EatBushJob) Kind() JobKind     { return JobEatBush }
func (*HaulBuildJob) Kind() JobKind   { return JobHaulBuild }
func (*ConstructJob) Kind() JobKind   { return JobConstruct }
func (j *LaborJob) Kind() JobKind     { return JobKind(j.Work.String()) }

func (*SleepJob) isJob()       {}
func (*SleepGroundJob) isJob() {}
func (*EatItemJob) isJob()     {}
func (*EatBushJob) isJob()     {}
func (*HaulBuildJob) isJob()   {}
func (*ConstructJob) isJob()   {}
func (*LaborJob) isJob()       {}

// JobTile returns the tile a job references, or nil for building and sleep jobs.
func JobTile(j Job) *Tile {
	switch j := j.(type) {
	case *EatItemJob:
		return j.Tile
	case *EatBushJob:
		return j.Tile
	case *HaulBuildJob:
		return j.Source
	case *LaborJob:
		return j.Tile
	}
	return nil
}

func workDuration(j Job, cfg tuning.JobTuning) int {
	if _, ok := j.(*HaulBuildJob); ok {
		return cfg.HaulWorkTicks
	}
	return cfg.WorkTicks
}
