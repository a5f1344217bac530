package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandSetName declares the display name and enters matchmaking.
	CommandSetName CommandKind = iota
	// CommandChat relays a message to the current partner.
	CommandChat
	// CommandLeaveChat ends the current pairing without disconnecting.
	CommandLeaveChat
)

func (k CommandKind) String() string {
	switch k {
	case CommandSetName:
		return "setName"
	case CommandChat:
		return "chat"
	case CommandLeaveChat:
		return "leaveChat"
	default:
		return "unknown"
	}
}

// Command represents an action requested by a client.
type Command struct {
	Kind CommandKind
	Name string // CommandSetName
	Text string // CommandChat
}
