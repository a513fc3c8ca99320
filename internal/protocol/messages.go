package protocol

// HELLO (viewer -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ViewerName      string `json:"viewer_name,omitempty"`
}

// WELCOME (server -> viewer)
type WelcomeMsg struct {
	Type            string         `json:"type"`
	ProtocolVersion string         `json:"protocol_version"`
	ViewerID        string         `json:"viewer_id"`
	Tick            uint64         `json:"tick"`
	WorldParams     WorldParams    `json:"world_params"`
	Catalogs        CatalogDigests `json:"catalogs"`
	Buildings       []BuildingDef  `json:"buildings"`
	Tools           []string       `json:"tools"`
}

type WorldParams struct {
	TickRateHz        int   `json:"tick_rate_hz"`
	RefreshEveryTicks int   `json:"refresh_every_ticks"`
	Width             int   `json:"width"`
	Height            int   `json:"height"`
	Seed              int64 `json:"seed"`
}

type CatalogDigests struct {
	BuildingsDigest string `json:"buildings_digest"`
	TuningDigest    string `json:"tuning_digest,omitempty"`
}

// BuildingDef is the static building table entry a viewer needs to draw the build menu.
type BuildingDef struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	W      int            `json:"w"`
	H      int            `json:"h"`
	Cost   map[string]int `json:"cost"`
	Color  string         `json:"color,omitempty"`
	Symbol string         `json:"symbol,omitempty"`
	Sleep  bool           `json:"sleep,omitempty"`
}

// FRAME (server -> viewer). Map is only set on refresh frames; viewers keep the last one.
// Frames to a slow viewer may be dropped, so a lost Map leaves that viewer's layers stale
// until the next refresh_every_ticks refresh resends them.
type FrameMsg struct {
	Type            string         `json:"type"`
	ProtocolVersion string         `json:"protocol_version"`
	Tick            uint64         `json:"tick"`
	Resources       map[string]int `json:"resources"`
	Pawns           []PawnView     `json:"pawns"`
	Particles       []ParticleView `json:"particles"`
	Buildings       []BuildingView `json:"buildings"`
	Map             *MapLayers     `json:"map,omitempty"`
}

type PawnView struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Color    string     `json:"color"`
	Pos      [2]float64 `json:"pos"`
	State    string     `json:"state"`
	Status   string     `json:"status"`
	Job      string     `json:"job,omitempty"`
	Hunger   float64    `json:"hunger"`
	Rest     float64    `json:"rest"`
	Carrying *ItemStack `json:"carrying,omitempty"`
}

type ItemStack struct {
	Material string `json:"material"`
	Amount   int    `json:"amount"`
}

type ParticleView struct {
	Pos    [2]float64 `json:"pos"`
	Text   string     `json:"text"`
	Color  string     `json:"color"`
	Life   int        `json:"life"`
	Offset float64    `json:"offset"`
}

type BuildingView struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Pos       [2]int         `json:"pos"`
	Size      [2]int         `json:"size"`
	Blueprint bool           `json:"blueprint"`
	Progress  int            `json:"progress"`
	Needed    map[string]int `json:"needed,omitempty"`
	Delivered map[string]int `json:"delivered,omitempty"`
}

// MapLayers carries the tile layers as RLE (base64 of uvarint value/run pairs, x-major).
type MapLayers struct {
	Width        int         `json:"width"`
	Height       int         `json:"height"`
	Encoding     string      `json:"encoding"`
	Objects      string      `json:"objects"`
	Designations string      `json:"designations"`
	Walkable     string      `json:"walkable"`
	Items        []TileItems `json:"items"`
}

type TileItems struct {
	Pos   [2]int      `json:"pos"`
	Items []ItemStack `json:"items"`
}

// CMD (viewer -> server): one tool interaction on a tile.
type CmdMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ID              string `json:"id"`
	Tool            string `json:"tool"`
	X               int    `json:"x"`
	Y               int    `json:"y"`
}

// RESULT (server -> viewer)
type ResultMsg struct {
	Type            string       `json:"type"`
	ProtocolVersion string       `json:"protocol_version"`
	ResultFor       string       `json:"result_for"`
	OK              bool         `json:"ok"`
	Code            string       `json:"code,omitempty"`
	Message         string       `json:"message,omitempty"`
	Tick            uint64       `json:"tick"`
	Inspect         *InspectView `json:"inspect,omitempty"`
}

// InspectView is the info panel content for a selected pawn, building or tile.
type InspectView struct {
	Kind  string   `json:"kind"`
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}
