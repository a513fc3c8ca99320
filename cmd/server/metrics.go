package main

import (
	"fmt"
	"io"
	"sort"

	"tinycolony.dev/internal/sim/world"
)

// writeMetrics renders m in the Prometheus text exposition format.
func writeMetrics(out io.Writer, m world.WorldMetrics, idx runtimeIndex) {
	fmt.Fprintf(out, "# HELP tinycolony_tick Current simulation tick.\n")
	fmt.Fprintf(out, "# TYPE tinycolony_tick gauge\n")
	fmt.Fprintf(out, "tinycolony_tick %d\n", m.Tick)

	fmt.Fprintf(out, "# HELP tinycolony_pawns Pawns by state.\n")
	fmt.Fprintf(out, "# TYPE tinycolony_pawns gauge\n")
	for _, st := range sortedKeys(m.PawnStates) {
		fmt.Fprintf(out, "tinycolony_pawns{state=%q} %d\n", st, m.PawnStates[st])
	}

	fmt.Fprintf(out, "# HELP tinycolony_resources Colony resource ledger.\n")
	fmt.Fprintf(out, "# TYPE tinycolony_resources gauge\n")
	for _, mat := range sortedKeys(m.Resources) {
		fmt.Fprintf(out, "tinycolony_resources{material=%q} %d\n", mat, m.Resources[mat])
	}

	fmt.Fprintf(out, "# HELP tinycolony_buildings Registered buildings.\n")
	fmt.Fprintf(out, "# TYPE tinycolony_buildings gauge\n")
	fmt.Fprintf(out, "tinycolony_buildings{blueprint=\"true\"} %d\n", m.Blueprints)
	fmt.Fprintf(out, "tinycolony_buildings{blueprint=\"false\"} %d\n", m.Buildings-m.Blueprints)

	fmt.Fprintf(out, "# HELP tinycolony_designated_tiles Tiles carrying a work designation.\n")
	fmt.Fprintf(out, "# TYPE tinycolony_designated_tiles gauge\n")
	fmt.Fprintf(out, "tinycolony_designated_tiles %d\n", m.Designated)

	fmt.Fprintf(out, "# HELP tinycolony_viewers Connected viewers.\n")
	fmt.Fprintf(out, "# TYPE tinycolony_viewers gauge\n")
	fmt.Fprintf(out, "tinycolony_viewers %d\n", m.Viewers)

	fmt.Fprintf(out, "# HELP tinycolony_queue_depth Channel backlog depth.\n")
	fmt.Fprintf(out, "# TYPE tinycolony_queue_depth gauge\n")
	fmt.Fprintf(out, "tinycolony_queue_depth{queue=%q} %d\n", "inbox", m.QueueDepths.Inbox)
	fmt.Fprintf(out, "tinycolony_queue_depth{queue=%q} %d\n", "join", m.QueueDepths.Join)
	fmt.Fprintf(out, "tinycolony_queue_depth{queue=%q} %d\n", "leave", m.QueueDepths.Leave)

	fmt.Fprintf(out, "# HELP tinycolony_step_ms Last tick step duration in milliseconds.\n")
	fmt.Fprintf(out, "# TYPE tinycolony_step_ms gauge\n")
	fmt.Fprintf(out, "tinycolony_step_ms %.3f\n", m.StepMS)

	if idx == nil {
		return
	}
	st := idx.Stats()
	fmt.Fprintf(out, "# HELP tinycolony_index_queue_depth Event index backlog.\n")
	fmt.Fprintf(out, "# TYPE tinycolony_index_queue_depth gauge\n")
	fmt.Fprintf(out, "tinycolony_index_queue_depth %d\n", st.QueueDepth)
	fmt.Fprintf(out, "# HELP tinycolony_index_dropped_total Events dropped because the index fell behind.\n")
	fmt.Fprintf(out, "# TYPE tinycolony_index_dropped_total counter\n")
	fmt.Fprintf(out, "tinycolony_index_dropped_total %d\n", st.DropTotal)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
