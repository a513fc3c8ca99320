package protocol

import "encoding/json"

const Version = "1.0"

// Message types.
const (
	TypeHello   = "HELLO"
	TypeWelcome = "WELCOME"
	TypeFrame   = "FRAME"
	TypeCmd     = "CMD"
	TypeResult  = "RESULT"
)

// Tools accepted in CMD messages. Building placement uses ToolBuildPrefix + building id.
const (
	ToolSelect      = "select"
	ToolChop        = "chop"
	ToolMine        = "mine"
	ToolHarvest     = "harvest"
	ToolCancel      = "cancel"
	ToolBuildPrefix = "build_"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}
