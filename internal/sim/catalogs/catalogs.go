package catalogs

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed buildings.schema.json
var buildingsSchemaJSON string

type Catalogs struct {
	Buildings BuildingCatalog
}

type BuildingCatalog struct {
	// Order is the file order of building ids; tools are listed in this order.
	Order  []string
	ByID   map[string]BuildingDef
	Digest string
}

type BuildingDef struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	W      int            `json:"w"`
	H      int            `json:"h"`
	Cost   map[string]int `json:"cost"`
	Color  string         `json:"color,omitempty"`
	Symbol string         `json:"symbol,omitempty"`
	// Sleep marks buildings pawns seek out when critically tired.
	Sleep bool `json:"sleep,omitempty"`
}

// CostMaterials returns the cost keys in sorted order.
func (d BuildingDef) CostMaterials() []string {
	out := make([]string, 0, len(d.Cost))
	for k := range d.Cost {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func Load(configDir string) (*Catalogs, error) {
	var c Catalogs
	if err := loadBuildings(filepath.Join(configDir, "buildings.json"), &c.Buildings); err != nil {
		return nil, err
	}
	return &c, nil
}

func loadBuildings(path string, out *BuildingCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return ParseBuildings(raw, out)
}

// ParseBuildings validates raw against the building schema and fills out.
func ParseBuildings(raw []byte, out *BuildingCatalog) error {
	schema, err := jsonschema.CompileString("buildings.schema.json", buildingsSchemaJSON)
	if err != nil {
		return fmt.Errorf("buildings schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("buildings.json: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("buildings.json: %w", err)
	}

	var defs []BuildingDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("buildings.json: %w", err)
	}
	out.Digest = sha256Hex(raw)
	out.Order = make([]string, 0, len(defs))
	out.ByID = make(map[string]BuildingDef, len(defs))
	for _, d := range defs {
		if _, dup := out.ByID[d.ID]; dup {
			return fmt.Errorf("buildings.json: duplicate id %q", d.ID)
		}
		if d.Cost == nil {
			d.Cost = map[string]int{}
		}
		out.ByID[d.ID] = d
		out.Order = append(out.Order, d.ID)
	}
	return nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
