package core

// ClientState is where a connection is in the pairing lifecycle.
type ClientState int

const (
	// StateUnnamed is a live connection that has not sent a name yet.
	StateUnnamed ClientState = iota
	// StateWaiting is a named connection sitting in the waiting pool.
	StateWaiting
	// StatePaired is a connection that belongs to an active pair.
	StatePaired
	// StateClosed is terminal; the connection is gone from every collection.
	StateClosed
)

func (s ClientState) String() string {
	switch s {
	case StateUnnamed:
		return "unnamed"
	case StateWaiting:
		return "waiting"
	case StatePaired:
		return "paired"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Client is a chat participant as seen by the core layer.
// Name and State are owned by the Lobby and must only be touched from the
// goroutine that drives it.
type Client struct {
	ID     string
	Name   string
	State  ClientState
	Events chan *Event
}

// NewClient constructs a client with an event queue of the given size.
func NewClient(id string, buffer int) *Client {
	if buffer <= 0 {
		buffer = 16
	}
	return &Client{
		ID:     id,
		State:  StateUnnamed,
		Events: make(chan *Event, buffer),
	}
}
