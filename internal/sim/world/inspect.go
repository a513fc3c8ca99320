package world

import (
	"fmt"
	"strings"
)

type SelectionKind uint8

const (
	SelectNone SelectionKind = iota
	SelectPawn
	SelectBuilding
	SelectTile
)

func (k SelectionKind) String() string {
	switch k {
	case SelectPawn:
		return "pawn"
	case SelectBuilding:
		return "building"
	case SelectTile:
		return "tile"
	}
	return "none"
}

// Selection is what the select tool picked. Only the field matching Kind is set.
type Selection struct {
	Kind     SelectionKind
	Pawn     *Pawn
	Building *Building
	Tile     *Tile
}

// SelectAt resolves a click on (x, y): a pawn standing there, else the
// building covering the tile, else the tile itself.
func (w *World) SelectAt(x, y int) Selection {
	t := w.grid.At(x, y)
	if t == nil {
		return Selection{}
	}
	for _, p := range w.pawns {
		px, py := p.Tile()
		if px == x && py == y {
			return Selection{Kind: SelectPawn, Pawn: p}
		}
	}
	if t.Building != nil {
		return Selection{Kind: SelectBuilding, Building: t.Building}
	}
	return Selection{Kind: SelectTile, Tile: t}
}

// Inspection is the info panel content for a selection.
type Inspection struct {
	Kind  SelectionKind
	Title string
	Lines []string
}

func Inspect(sel Selection) Inspection {
	switch sel.Kind {
	case SelectPawn:
		p := sel.Pawn
		job := "None"
		if p.Job != nil {
			job = string(p.Job.Kind())
		}
		return Inspection{
			Kind:  SelectPawn,
			Title: "Colonist: " + p.Name,
			Lines: []string{
				"State: " + string(p.State),
				fmt.Sprintf("Hunger: %.0f/100", p.Hunger),
				fmt.Sprintf("Rest: %.0f/100", p.Rest),
				"Job: " + job,
			},
		}
	case SelectBuilding:
		b := sel.Building
		if b.Blueprint {
			lines := []string{"Under Construction", fmt.Sprintf("Progress: %d%%", b.Progress)}
			for _, m := range Materials {
				if n, ok := b.Needed[m]; ok {
					lines = append(lines, fmt.Sprintf("Mat: %d/%d %s", b.Delivered[m], n, m.Title()))
				}
			}
			return Inspection{Kind: SelectBuilding, Title: "Blueprint: " + b.def.Name, Lines: lines}
		}
		lines := []string{"Operational"}
		if b.def.Sleep {
			lines = append(lines, "Use for Sleeping")
		}
		return Inspection{Kind: SelectBuilding, Title: "Building: " + b.def.Name, Lines: lines}
	case SelectTile:
		t := sel.Tile
		items := make([]string, 0, len(t.Items))
		for _, it := range t.Items {
			items = append(items, fmt.Sprintf("%d %s", it.Amount, it.Material))
		}
		itemLine := strings.Join(items, ", ")
		if itemLine == "" {
			itemLine = "-"
		}
		lines := []string{"Type: grass"}
		if t.Object != ObjectNone {
			lines = append(lines, "Object: "+t.Object.String())
		}
		if t.Designation != DesignationNone {
			lines = append(lines, "Designation: "+t.Designation.String())
		}
		lines = append(lines, "Items: "+itemLine)
		return Inspection{Kind: SelectTile, Title: fmt.Sprintf("Tile (%d, %d)", t.X, t.Y), Lines: lines}
	}
	return Inspection{}
}

// PawnStatus is the short label shown on the pawn bar.
func PawnStatus(p *Pawn) string {
	switch p.State {
	case StatePassedOut:
		return "KO!"
	case StateSleeping:
		return "Sleep"
	}
	if p.Job == nil {
		return "Idle"
	}
	switch p.Job.Kind() {
	case JobHaulBuild:
		return "Haul"
	case JobConstruct:
		return "Build"
	case JobChop, JobMine:
		return "Mine"
	case JobEatItem, JobEatBush:
		return "Eat"
	}
	return "Idle"
}
