package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"

	persistlog "tinycolony.dev/internal/persistence/log"
	"tinycolony.dev/internal/sim/world"
)

func main() {
	if len(os.Args) >= 2 && os.Args[1] == "db" {
		dbCmd(os.Args[2:])
		return
	}
	summaryCmd(os.Args[1:])
}

type summary struct {
	Files      int
	Bytes      int64
	Entries    int
	FirstTick  uint64
	LastTick   uint64
	ByKind     map[string]int
	ByPawn     map[string]int
	LastLedger *world.JournalEntry
}

func summaryCmd(args []string) {
	fs := flag.NewFlagSet("journal", flag.ExitOnError)
	dataDir := fs.String("data", "./data", "runtime data directory")
	_ = fs.Parse(args)

	files, err := persistlog.JournalFiles(*dataDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "list:", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no journal files under", filepath.Join(*dataDir, "events"))
		os.Exit(2)
	}

	s, err := summarize(files)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read:", err)
		os.Exit(1)
	}
	printSummary(s)
}

func summarize(files []string) (*summary, error) {
	s := &summary{ByKind: map[string]int{}, ByPawn: map[string]int{}}
	for _, path := range files {
		if st, err := os.Stat(path); err == nil {
			s.Bytes += st.Size()
		}
		s.Files++
		err := persistlog.ReadJournal(path, func(e world.JournalEntry) error {
			if s.Entries == 0 {
				s.FirstTick = e.Tick
			}
			s.Entries++
			s.LastTick = e.Tick
			s.ByKind[e.Kind]++
			if e.Kind == world.JournalJobDone && e.Pawn != "" {
				s.ByPawn[e.Pawn]++
			}
			if e.Kind == world.JournalLedger {
				ec := e
				s.LastLedger = &ec
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
	}
	return s, nil
}

func printSummary(s *summary) {
	fmt.Printf("%d files, %s compressed, %s entries, ticks %d..%d\n",
		s.Files, humanize.Bytes(uint64(s.Bytes)), humanize.Comma(int64(s.Entries)), s.FirstTick, s.LastTick)

	fmt.Println("by kind:")
	for _, k := range sortedKeys(s.ByKind) {
		fmt.Printf("  %-22s %s\n", k, humanize.Comma(int64(s.ByKind[k])))
	}
	if len(s.ByPawn) > 0 {
		fmt.Println("jobs done by pawn:")
		for _, k := range sortedKeys(s.ByPawn) {
			fmt.Printf("  %-22s %s\n", k, humanize.Comma(int64(s.ByPawn[k])))
		}
	}
	if s.LastLedger != nil {
		fmt.Printf("ledger at tick %s:\n", humanize.Comma(int64(s.LastLedger.Tick)))
		for _, m := range sortedKeys(s.LastLedger.Resources) {
			fmt.Printf("  %-22s %s\n", m, humanize.Comma(int64(s.LastLedger.Resources[m])))
		}
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
