package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tinycolony.dev/internal/persistence/indexdb"
	"tinycolony.dev/internal/sim/catalogs"
	"tinycolony.dev/internal/sim/tuning"
	"tinycolony.dev/internal/sim/world"
)

type runtimeIndex interface {
	world.Journal
	Close() error
	UpsertCatalogs(cats *catalogs.Catalogs, tune tuning.Tuning) error
	Stats() indexdb.Stats
}

func openRuntimeIndex(dataDir string, disableDB bool) (runtimeIndex, error) {
	if disableDB {
		return nil, nil
	}

	backend := strings.ToLower(strings.TrimSpace(os.Getenv("TC_INDEX_BACKEND")))
	if backend == "" {
		backend = "sqlite"
	}

	switch backend {
	case "none", "off", "disabled":
		return nil, nil
	case "sqlite":
		return indexdb.OpenSQLite(filepath.Join(dataDir, "index", "colony.sqlite"))
	default:
		return nil, fmt.Errorf("unsupported TC_INDEX_BACKEND: %s", backend)
	}
}
