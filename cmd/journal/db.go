package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

func dbCmd(args []string) {
	fs := flag.NewFlagSet("db", flag.ExitOnError)
	dataDir := fs.String("data", "./data", "runtime data directory")
	dbPath := fs.String("db", "", "sqlite db path (optional)")
	kind := fs.String("kind", "", "event kind filter (events)")
	pawn := fs.String("pawn", "", "pawn name filter (events)")
	limit := fs.Int("limit", 20, "result limit")
	_ = fs.Parse(args)

	q := "events"
	if fs.NArg() > 0 {
		q = strings.TrimSpace(fs.Arg(0))
	}
	if *limit <= 0 {
		*limit = 20
	}

	path := strings.TrimSpace(*dbPath)
	if path == "" {
		path = filepath.Join(*dataDir, "index", "colony.sqlite")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open:", err)
		os.Exit(1)
	}
	defer db.Close()

	switch q {
	case "events":
		rows, err := db.Query(`SELECT tick,kind,COALESCE(pawn,''),COALESCE(building_type,''),x,y,COALESCE(material,''),amount,COALESCE(detail,'')
			FROM events
			WHERE (?='' OR kind=?) AND (?='' OR pawn=?)
			ORDER BY tick DESC, seq DESC LIMIT ?`, *kind, *kind, *pawn, *pawn, *limit)
		if err != nil {
			fmt.Fprintln(os.Stderr, "query:", err)
			os.Exit(1)
		}
		defer rows.Close()
		for rows.Next() {
			var r struct {
				Tick         int64  `json:"tick"`
				Kind         string `json:"kind"`
				Pawn         string `json:"pawn,omitempty"`
				BuildingType string `json:"building_type,omitempty"`
				X            int    `json:"x"`
				Y            int    `json:"y"`
				Material     string `json:"material,omitempty"`
				Amount       int    `json:"amount,omitempty"`
				Detail       string `json:"detail,omitempty"`
			}
			if err := rows.Scan(&r.Tick, &r.Kind, &r.Pawn, &r.BuildingType, &r.X, &r.Y, &r.Material, &r.Amount, &r.Detail); err != nil {
				fmt.Fprintln(os.Stderr, "scan:", err)
				os.Exit(1)
			}
			printJSON(r)
		}
		if err := rows.Err(); err != nil {
			fmt.Fprintln(os.Stderr, "rows:", err)
			os.Exit(1)
		}

	case "ledger":
		rows, err := db.Query(`SELECT tick,material,amount FROM ledger
			WHERE tick IN (SELECT DISTINCT tick FROM ledger ORDER BY tick DESC LIMIT ?)
			ORDER BY tick, material`, *limit)
		if err != nil {
			fmt.Fprintln(os.Stderr, "query:", err)
			os.Exit(1)
		}
		defer rows.Close()
		type sample struct {
			Tick      int64          `json:"tick"`
			Resources map[string]int `json:"resources"`
		}
		var cur *sample
		for rows.Next() {
			var tick int64
			var mat string
			var amount int
			if err := rows.Scan(&tick, &mat, &amount); err != nil {
				fmt.Fprintln(os.Stderr, "scan:", err)
				os.Exit(1)
			}
			if cur == nil || cur.Tick != tick {
				if cur != nil {
					printJSON(cur)
				}
				cur = &sample{Tick: tick, Resources: map[string]int{}}
			}
			cur.Resources[mat] = amount
		}
		if cur != nil {
			printJSON(cur)
		}
		if err := rows.Err(); err != nil {
			fmt.Fprintln(os.Stderr, "rows:", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintln(os.Stderr, "unknown query:", q)
		fmt.Fprintln(os.Stderr, "usage: journal db [-data ./data|-db PATH] [-kind K] [-pawn NAME] [-limit N] events|ledger")
		os.Exit(2)
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
