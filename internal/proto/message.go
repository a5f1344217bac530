package proto

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	InboundTypeSetName   = "setName"
	InboundTypeChat      = "chat"
	InboundTypeLeaveChat = "leaveChat"

	OutboundTypeInfo        = "info"
	OutboundTypePartner     = "partner"
	OutboundTypeChat        = "chat"
	OutboundTypeOnlineCount = "onlineCount"
	OutboundTypeError       = "error"
)

// ErrMissingType is returned for frames without a "type" field.
var ErrMissingType = errors.New("missing message type")

// Inbound is the envelope for messages coming from the client.
// Name is set for setName, Message for chat.
type Inbound struct {
	Type    string `json:"type"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message,omitempty"`
}

// Decode parses a single client frame.
func Decode(data []byte) (Inbound, error) {
	var in Inbound
	if err := json.Unmarshal(data, &in); err != nil {
		return Inbound{}, fmt.Errorf("decode frame: %w", err)
	}
	if in.Type == "" {
		return Inbound{}, ErrMissingType
	}
	return in, nil
}

// Notice is an info or partner status line.
type Notice struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Chat is a relayed message; UserName is the sender's display name.
type Chat struct {
	Type     string `json:"type"`
	UserName string `json:"userName"`
	Message  string `json:"message"`
}

// OnlineCount carries the number of live connections.
type OnlineCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Error describes a rejected command.
type Error struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Frame is a generic view of any server frame, used by clients.
type Frame struct {
	Type     string `json:"type"`
	Message  string `json:"message,omitempty"`
	UserName string `json:"userName,omitempty"`
	Count    int    `json:"count,omitempty"`
	Code     string `json:"code,omitempty"`
}
