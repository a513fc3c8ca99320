package world

import "tinycolony.dev/internal/protocol"

// JoinRequest attaches a viewer. Out receives WELCOME, FRAME and RESULT messages.
type JoinRequest struct {
	Name string
	Out  chan []byte
	Resp chan JoinResponse
}

type JoinResponse struct {
	Welcome protocol.WelcomeMsg
}

// CommandEnvelope is a viewer tool interaction queued for the next tick boundary.
type CommandEnvelope struct {
	ViewerID string
	Cmd      protocol.CmdMsg
}

// Hooks are optional callbacks into the embedding application. Both run on
// the world goroutine and may be nil.
type Hooks struct {
	// Refresh runs after a job completion, a building placement, and every
	// refresh_every_ticks ticks.
	Refresh func(tick uint64)
	// Frame runs once per tick after the simulation step.
	Frame func(tick uint64)
}

// Journal entry kinds.
const (
	JournalDesignate      = "DESIGNATE"
	JournalDesignationOff = "DESIGNATION_CANCELLED"
	JournalPlaced         = "BUILDING_PLACED"
	JournalBuilt          = "BUILDING_DONE"
	JournalPassedOut      = "PASSED_OUT"
	JournalJobDone        = "JOB_DONE"
	JournalJobAbandoned   = "JOB_ABANDONED"
	JournalLedger         = "LEDGER"
)

// Journal receives colony events. Implemented in internal/persistence/*.
type Journal interface {
	WriteEvent(entry JournalEntry) error
}

type JournalEntry struct {
	Tick         uint64         `json:"tick"`
	Kind         string         `json:"kind"`
	Pawn         string         `json:"pawn,omitempty"`
	Building     string         `json:"building,omitempty"`
	BuildingType string         `json:"building_type,omitempty"`
	X            int            `json:"x"`
	Y            int            `json:"y"`
	Material     string         `json:"material,omitempty"`
	Amount       int            `json:"amount,omitempty"`
	Detail       string         `json:"detail,omitempty"`
	Resources    map[string]int `json:"resources,omitempty"`
}
