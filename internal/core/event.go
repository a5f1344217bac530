package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventInfo carries a status line (welcome, waiting, partner left).
	EventInfo EventKind = iota
	// EventPartner announces that a partner has been found.
	EventPartner
	// EventChat delivers a message relayed from the partner.
	EventChat
	// EventOnlineCount carries the number of live connections.
	EventOnlineCount
	// EventError notifies clients about a rejected command.
	EventError
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind  EventKind
	Text  string
	From  string // sender name for EventChat
	Count int    // EventOnlineCount
	Error *CoreError
}
