package indexdb

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"tinycolony.dev/internal/sim/catalogs"
	"tinycolony.dev/internal/sim/tuning"
	"tinycolony.dev/internal/sim/world"
)

func TestSQLiteIndex_WritesEventsAndLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.sqlite")
	idx, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	cats := &catalogs.Catalogs{}
	cats.Buildings.ByID = map[string]catalogs.BuildingDef{
		"tent": {ID: "tent", Name: "Tent", W: 2, H: 2, Cost: map[string]int{"wood": 30}, Sleep: true},
	}
	cats.Buildings.Order = []string{"tent"}
	cats.Buildings.Digest = "abc"
	if err := idx.UpsertCatalogs(cats, tuning.Defaults()); err != nil {
		t.Fatalf("UpsertCatalogs: %v", err)
	}

	entries := []world.JournalEntry{
		{Tick: 5, Kind: world.JournalDesignate, X: 1, Y: 2, Detail: "chop"},
		{Tick: 5, Kind: world.JournalPlaced, Building: "b1", BuildingType: "tent", X: 3, Y: 3},
		{Tick: 70, Kind: world.JournalJobDone, Pawn: "Alex", Material: "wood", Amount: 15, Detail: "chop"},
		{Tick: 599, Kind: world.JournalLedger, Resources: map[string]int{"food": 20, "stone": 0, "wood": 65}},
	}
	for _, e := range entries {
		if err := idx.WriteEvent(e); err != nil {
			t.Fatalf("WriteEvent: %v", err)
		}
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	// Writes after Close are ignored.
	_ = idx.WriteEvent(world.JournalEntry{Tick: 1000, Kind: world.JournalLedger})

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&n); err != nil || n != 4 {
		t.Fatalf("events count=%d err=%v", n, err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM events WHERE tick=5`).Scan(&n); err != nil || n != 2 {
		t.Fatalf("tick 5 events=%d err=%v", n, err)
	}
	var wood int
	if err := db.QueryRow(`SELECT amount FROM ledger WHERE tick=599 AND material='wood'`).Scan(&wood); err != nil || wood != 65 {
		t.Fatalf("ledger wood=%d err=%v", wood, err)
	}
	var pawn string
	if err := db.QueryRow(`SELECT pawn FROM events WHERE kind='JOB_DONE'`).Scan(&pawn); err != nil || pawn != "Alex" {
		t.Fatalf("job pawn=%q err=%v", pawn, err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM catalogs`).Scan(&n); err != nil || n != 2 {
		t.Fatalf("catalog rows=%d err=%v", n, err)
	}
}

func TestSQLiteIndex_DropsWhenQueueFull(t *testing.T) {
	s := &SQLiteIndex{ch: make(chan world.JournalEntry, 1)}
	_ = s.WriteEvent(world.JournalEntry{Tick: 1})
	_ = s.WriteEvent(world.JournalEntry{Tick: 2})

	st := s.Stats()
	if st.DropTotal != 1 || st.QueueDepth != 1 || st.QueueCapacity != 1 {
		t.Fatalf("stats: %+v", st)
	}
}
