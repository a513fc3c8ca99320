package tuning

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	TickRateHz        int `yaml:"tick_rate_hz"`
	RefreshEveryTicks int `yaml:"refresh_every_ticks"`
	// LedgerSampleEveryTicks controls how often the ledger is written to the journal (0 disables).
	LedgerSampleEveryTicks int `yaml:"ledger_sample_every_ticks"`

	MapWidth  int   `yaml:"map_width"`
	MapHeight int   `yaml:"map_height"`
	Seed      int64 `yaml:"seed"`

	PawnCount int      `yaml:"pawn_count"`
	PawnNames []string `yaml:"pawn_names"`

	Pawn      PawnTuning     `yaml:"pawn"`
	Jobs      JobTuning      `yaml:"jobs"`
	Needs     NeedTriggers   `yaml:"needs"`
	Particles ParticleTuning `yaml:"particles"`
	WorldGen  WorldGenTuning `yaml:"worldgen"`
}

type PawnTuning struct {
	Speed               float64 `yaml:"speed"`
	HungerDecay         float64 `yaml:"hunger_decay"`
	RestDecay           float64 `yaml:"rest_decay"`
	BedRecovery         float64 `yaml:"bed_recovery"`
	GroundRecovery      float64 `yaml:"ground_recovery"`
	PassedOutRecovery   float64 `yaml:"passed_out_recovery"`
	WakeThreshold       float64 `yaml:"wake_threshold"`
	WanderChance        float64 `yaml:"wander_chance"`
	WanderRadius        float64 `yaml:"wander_radius"`
	ArriveTolerance     float64 `yaml:"arrive_tolerance"`
	SleepTextChance     float64 `yaml:"sleep_text_chance"`
	PassedOutTextChance float64 `yaml:"passed_out_text_chance"`
}

type JobTuning struct {
	WorkTicks     int `yaml:"work_ticks"`
	HaulWorkTicks int `yaml:"haul_work_ticks"`
	HaulBatch     int `yaml:"haul_batch"`
	ConstructStep int `yaml:"construct_step"`
	EatAmount     int `yaml:"eat_amount"`
	BushFood      int `yaml:"bush_food"`
	ChopYield     int `yaml:"chop_yield"`
	MineYield     int `yaml:"mine_yield"`
	HarvestYield  int `yaml:"harvest_yield"`
}

// NeedTriggers are expr-lang conditions evaluated against pawn vitals.
type NeedTriggers struct {
	CriticalFatigue string `yaml:"critical_fatigue"`
	Hungry          string `yaml:"hungry"`
}

type ParticleTuning struct {
	LifeTicks   int     `yaml:"life_ticks"`
	RisePerTick float64 `yaml:"rise_per_tick"`
}

type WorldGenTuning struct {
	ClearRadius int     `yaml:"clear_radius"`
	TreeChance  float64 `yaml:"tree_chance"`
	RockChance  float64 `yaml:"rock_chance"`
	BerryChance float64 `yaml:"berry_chance"`
	SpawnRadius int     `yaml:"spawn_radius"`
	StarterFood int     `yaml:"starter_food"`
	StarterWood int     `yaml:"starter_wood"`
}

func Defaults() Tuning {
	return Tuning{
		TickRateHz:             60,
		RefreshEveryTicks:      10,
		LedgerSampleEveryTicks: 600,
		MapWidth:               50,
		MapHeight:              50,
		Seed:                   1337,
		PawnCount:              3,
		PawnNames:              []string{"Alex", "Ben", "Cara", "Dave", "Eve", "Frank"},
		Pawn: PawnTuning{
			Speed:               0.08,
			HungerDecay:         0.02,
			RestDecay:           0.01,
			BedRecovery:         0.4,
			GroundRecovery:      0.15,
			PassedOutRecovery:   0.05,
			WakeThreshold:       30,
			WanderChance:        0.01,
			WanderRadius:        2,
			ArriveTolerance:     0.5,
			SleepTextChance:     0.05,
			PassedOutTextChance: 0.02,
		},
		Jobs: JobTuning{
			WorkTicks:     60,
			HaulWorkTicks: 20,
			HaulBatch:     10,
			ConstructStep: 20,
			EatAmount:     5,
			BushFood:      5,
			ChopYield:     15,
			MineYield:     8,
			HarvestYield:  12,
		},
		Needs: NeedTriggers{
			CriticalFatigue: "rest < 5",
			Hungry:          "hunger < 30",
		},
		Particles: ParticleTuning{
			LifeTicks:   60,
			RisePerTick: 0.02,
		},
		WorldGen: WorldGenTuning{
			ClearRadius: 4,
			TreeChance:  0.15,
			RockChance:  0.03,
			BerryChance: 0.02,
			SpawnRadius: 3,
			StarterFood: 20,
			StarterWood: 50,
		},
	}
}

// Load overlays the YAML file at path on Defaults.
func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func (t Tuning) Validate() error {
	switch {
	case t.TickRateHz <= 0:
		return fmt.Errorf("tick_rate_hz must be positive")
	case t.MapWidth <= 0 || t.MapHeight <= 0:
		return fmt.Errorf("map size must be positive: %dx%d", t.MapWidth, t.MapHeight)
	case t.PawnCount < 0:
		return fmt.Errorf("pawn_count must not be negative")
	case t.Pawn.Speed <= 0:
		return fmt.Errorf("pawn.speed must be positive")
	case t.Jobs.WorkTicks <= 0 || t.Jobs.HaulWorkTicks <= 0:
		return fmt.Errorf("job durations must be positive")
	case t.Jobs.HaulBatch <= 0:
		return fmt.Errorf("jobs.haul_batch must be positive")
	case t.Jobs.ConstructStep <= 0:
		return fmt.Errorf("jobs.construct_step must be positive")
	case t.Particles.LifeTicks <= 0:
		return fmt.Errorf("particles.life_ticks must be positive")
	}
	return nil
}

// Digest is a sha256 of the canonical YAML encoding.
func (t Tuning) Digest() string {
	b, err := yaml.Marshal(t)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// PawnName returns the configured name for roster slot i, falling back to "Pawn N".
func (t Tuning) PawnName(i int) string {
	if i >= 0 && i < len(t.PawnNames) && t.PawnNames[i] != "" {
		return t.PawnNames[i]
	}
	return fmt.Sprintf("Pawn %d", i+1)
}
