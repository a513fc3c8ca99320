package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	persistlog "tinycolony.dev/internal/persistence/log"
	"tinycolony.dev/internal/protocol"
	"tinycolony.dev/internal/sim/bootstrap"
	"tinycolony.dev/internal/sim/catalogs"
	"tinycolony.dev/internal/sim/tuning"
	"tinycolony.dev/internal/sim/world"
)

// scriptedCmd is one line of a -script file.
type scriptedCmd struct {
	Tick uint64 `json:"tick"`
	Tool string `json:"tool"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func main() {
	var (
		configDir  = flag.String("configs", "./configs", "config directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		seed       = flag.Int64("seed", 0, "world seed (0: use tuning.yaml)")
		ticks      = flag.Uint64("ticks", 3600, "ticks to simulate")
		every      = flag.Uint64("every", 0, "print a status line every N ticks (0: only at the end)")
		script     = flag.String("script", "", "JSONL file of {tick,tool,x,y} commands (optional)")
		dataDir    = flag.String("data", "", "write the event journal under this directory (optional)")
	)
	flag.Parse()

	cats, err := catalogs.Load(*configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load catalogs:", err)
		os.Exit(1)
	}
	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load tuning:", err)
		os.Exit(1)
	}
	if *seed != 0 {
		tune.Seed = *seed
	}

	cmds, err := loadScript(*script)
	if err != nil {
		fmt.Fprintln(os.Stderr, "script:", err)
		os.Exit(1)
	}

	w, err := bootstrap.NewColony(tune, cats)
	if err != nil {
		fmt.Fprintln(os.Stderr, "world:", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		jw := persistlog.NewJournalWriter(*dataDir)
		defer jw.Close()
		w.AddJournal(jw)
	}

	fmt.Printf("seed=%d map=%dx%d pawns=%d\n", tune.Seed, tune.MapWidth, tune.MapHeight, len(w.Pawns()))

	var digest string
	for i := uint64(0); i < *ticks; i++ {
		now := w.CurrentTick()
		_, digest = w.StepOnce(nil, nil, cmds[now])
		if *every > 0 && (now+1)%*every == 0 {
			printStatus(w, digest)
		}
	}
	printStatus(w, digest)
}

func loadScript(path string) (map[uint64][]world.CommandEnvelope, error) {
	out := map[uint64][]world.CommandEnvelope{}
	if path == "" {
		return out, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		var c scriptedCmd
		if err := json.Unmarshal([]byte(text), &c); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out[c.Tick] = append(out[c.Tick], world.CommandEnvelope{
			Cmd: protocol.CmdMsg{
				Type:            protocol.TypeCmd,
				ProtocolVersion: protocol.Version,
				ID:              fmt.Sprintf("script-%d", line),
				Tool:            c.Tool,
				X:               c.X,
				Y:               c.Y,
			},
		})
	}
	return out, sc.Err()
}

func printStatus(w *world.World, digest string) {
	states := map[string]int{}
	for _, p := range w.Pawns() {
		states[string(p.State)]++
	}
	keys := make([]string, 0, len(states))
	for k := range states {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, states[k]))
	}
	res := w.Ledger().Snapshot()
	fmt.Printf("tick=%d wood=%d stone=%d food=%d buildings=%d pawns[%s] digest=%s\n",
		w.CurrentTick(), res["wood"], res["stone"], res["food"], len(w.Buildings()), strings.Join(parts, " "), digest)
}
