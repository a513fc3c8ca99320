package main

import (
	"testing"

	persistlog "tinycolony.dev/internal/persistence/log"
	"tinycolony.dev/internal/sim/world"
)

func TestSummarize(t *testing.T) {
	dir := t.TempDir()
	jw := persistlog.NewJournalWriter(dir)
	for _, e := range []world.JournalEntry{
		{Tick: 10, Kind: world.JournalDesignate, Detail: "chop"},
		{Tick: 80, Kind: world.JournalJobDone, Pawn: "Ben", Detail: "chop"},
		{Tick: 90, Kind: world.JournalJobDone, Pawn: "Ben", Detail: "EAT_ITEM"},
		{Tick: 599, Kind: world.JournalLedger, Resources: map[string]int{"wood": 65}},
	} {
		if err := jw.WriteEvent(e); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := jw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	files, err := persistlog.JournalFiles(dir)
	if err != nil {
		t.Fatalf("files: %v", err)
	}
	s, err := summarize(files)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if s.Entries != 4 || s.FirstTick != 10 || s.LastTick != 599 {
		t.Fatalf("summary: %+v", s)
	}
	if s.ByKind[world.JournalJobDone] != 2 || s.ByPawn["Ben"] != 2 {
		t.Fatalf("counts: kinds=%v pawns=%v", s.ByKind, s.ByPawn)
	}
	if s.LastLedger == nil || s.LastLedger.Resources["wood"] != 65 {
		t.Fatalf("ledger: %+v", s.LastLedger)
	}
}
