package world

import (
	"strings"

	"tinycolony.dev/internal/protocol"
)

// CommandResult is the outcome of one tool interaction.
type CommandResult struct {
	OK      bool
	Code    string
	Message string
	// Inspection is set for the select tool.
	Inspection *Inspection
}

func rejected(code, msg string) CommandResult {
	return CommandResult{Code: code, Message: msg}
}

// Tools lists the tool names Interact accepts, building tools in catalog order.
func (w *World) Tools() []string {
	out := []string{protocol.ToolSelect, protocol.ToolChop, protocol.ToolMine, protocol.ToolHarvest, protocol.ToolCancel}
	for _, id := range w.catalogs.Buildings.Order {
		out = append(out, protocol.ToolBuildPrefix+id)
	}
	return out
}

// Interact applies a tool to tile (x, y). Designation tools only take
// effect on the matching terrain object.
func (w *World) Interact(tool string, x, y int) CommandResult {
	if strings.HasPrefix(tool, protocol.ToolBuildPrefix) {
		typ := strings.TrimPrefix(tool, protocol.ToolBuildPrefix)
		if _, ok := w.catalogs.Buildings.ByID[typ]; !ok {
			return rejected(protocol.ErrUnknownTool, "unknown building: "+typ)
		}
		if !w.PlaceBuilding(typ, x, y, false) {
			return rejected(protocol.ErrBlocked, "footprint blocked")
		}
		return CommandResult{OK: true}
	}

	t := w.grid.At(x, y)
	switch tool {
	case protocol.ToolSelect, protocol.ToolChop, protocol.ToolMine, protocol.ToolHarvest, protocol.ToolCancel:
		if t == nil {
			return rejected(protocol.ErrOutOfBounds, "tile out of bounds")
		}
	default:
		return rejected(protocol.ErrUnknownTool, "unknown tool: "+tool)
	}

	switch tool {
	case protocol.ToolSelect:
		insp := Inspect(w.SelectAt(x, y))
		return CommandResult{OK: true, Inspection: &insp}
	case protocol.ToolChop:
		return w.designate(t, DesignationChop)
	case protocol.ToolMine:
		return w.designate(t, DesignationMine)
	case protocol.ToolHarvest:
		return w.designate(t, DesignationHarvest)
	default:
		return w.designate(t, DesignationNone)
	}
}

func (w *World) designate(t *Tile, d Designation) CommandResult {
	if d != DesignationNone && t.Object != d.Object() {
		return rejected(protocol.ErrInvalidTarget, "no "+d.Object().String()+" here")
	}
	if t.Designation == d {
		return CommandResult{OK: true}
	}
	kind := JournalDesignate
	if d == DesignationNone {
		kind = JournalDesignationOff
	}
	t.Designation = d
	w.mapDirty = true
	w.journalEvent(JournalEntry{Kind: kind, X: t.X, Y: t.Y, Detail: d.String()})
	return CommandResult{OK: true}
}
