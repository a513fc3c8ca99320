package world

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"

	"tinycolony.dev/internal/sim/catalogs"
	"tinycolony.dev/internal/sim/needs"
	"tinycolony.dev/internal/sim/tuning"
)

// World is a single-threaded authoritative colony simulation.
// All state must be accessed only from the world loop goroutine.
type World struct {
	cfg      tuning.Tuning
	catalogs *catalogs.Catalogs
	needs    needs.Triggers
	rng      *rand.Rand
	logger   *log.Logger

	tick atomic.Uint64

	grid      *Grid
	ledger    *Ledger
	buildings []*Building
	pawns     []*Pawn
	particles []*Particle

	viewers         map[string]*viewerState
	nextViewerNum   uint64
	nextBuildingNum uint64

	inbox    chan CommandEnvelope
	join     chan JoinRequest
	leave    chan string
	stop     chan struct{}
	stopOnce sync.Once

	hooks    Hooks
	journals []Journal

	// mapDirty asks for the tile layers to be included in the next frame.
	mapDirty   bool
	lastDigest string

	metrics atomic.Value
}

func New(cfg tuning.Tuning, cats *catalogs.Catalogs) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cats == nil {
		return nil, fmt.Errorf("world: nil catalogs")
	}
	triggers, err := needs.Compile(cfg.Needs)
	if err != nil {
		return nil, err
	}
	w := &World{
		cfg:      cfg,
		catalogs: cats,
		needs:    triggers,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		grid:     NewGrid(cfg.MapWidth, cfg.MapHeight),
		ledger:   NewLedger(),
		viewers:  map[string]*viewerState{},
		inbox:    make(chan CommandEnvelope, 256),
		join:     make(chan JoinRequest, 16),
		leave:    make(chan string, 16),
		stop:     make(chan struct{}),
		mapDirty: true,
	}
	return w, nil
}

func (w *World) SetLogger(l *log.Logger) { w.logger = l }
func (w *World) SetHooks(h Hooks)        { w.hooks = h }
func (w *World) AddJournal(j Journal) {
	if j != nil {
		w.journals = append(w.journals, j)
	}
}

func (w *World) Inbox() chan<- CommandEnvelope { return w.inbox }
func (w *World) Join() chan<- JoinRequest      { return w.join }
func (w *World) Leave() chan<- string          { return w.leave }

func (w *World) CurrentTick() uint64          { return w.tick.Load() }
func (w *World) Tuning() tuning.Tuning        { return w.cfg }
func (w *World) Catalogs() *catalogs.Catalogs { return w.catalogs }
func (w *World) Grid() *Grid                  { return w.grid }
func (w *World) Ledger() *Ledger              { return w.ledger }
func (w *World) Buildings() []*Building       { return w.buildings }
func (w *World) Pawns() []*Pawn               { return w.pawns }

// Rand exposes the world RNG to world generation so a seed fixes the whole run.
func (w *World) Rand() *rand.Rand { return w.rng }

// DropItem adds amount of m to the tile at (x, y), merging into an existing
// stack, and credits the ledger. Out-of-bounds drops are ignored.
func (w *World) DropItem(x, y int, m Material, amount int) {
	t := w.grid.At(x, y)
	if t == nil || amount <= 0 {
		return
	}
	t.addItem(m, amount)
	w.ledger.add(m, amount)
	w.mapDirty = true
}

// takeItem removes up to max units of m from t and debits the ledger.
func (w *World) takeItem(t *Tile, m Material, max int) int {
	n := t.takeItem(m, max)
	if n > 0 {
		w.ledger.add(m, -n)
		w.mapDirty = true
	}
	return n
}

func (w *World) refresh() {
	w.mapDirty = true
	if w.hooks.Refresh != nil {
		w.hooks.Refresh(w.tick.Load())
	}
}

func (w *World) journalEvent(e JournalEntry) {
	if len(w.journals) == 0 {
		return
	}
	e.Tick = w.tick.Load()
	for _, j := range w.journals {
		if err := j.WriteEvent(e); err != nil && w.logger != nil {
			w.logger.Printf("journal: %v", err)
		}
	}
}
