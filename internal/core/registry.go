package core

// Registry tracks every live connection by id.
type Registry struct {
	clients map[string]*Client
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]*Client)}
}

// Add inserts a client. It fails if the id is already taken.
func (r *Registry) Add(c *Client) error {
	if _, exists := r.clients[c.ID]; exists {
		return ErrAlreadyRegistered
	}
	r.clients[c.ID] = c
	return nil
}

// Remove deletes the client with the given id and returns it, or nil.
func (r *Registry) Remove(id string) *Client {
	c, ok := r.clients[id]
	if !ok {
		return nil
	}
	delete(r.clients, id)
	return c
}

// Get looks up a live client.
func (r *Registry) Get(id string) (*Client, bool) {
	c, ok := r.clients[id]
	return c, ok
}

// Len returns the number of live connections.
func (r *Registry) Len() int {
	return len(r.clients)
}

// Each calls fn for every live client in unspecified order.
func (r *Registry) Each(fn func(*Client)) {
	for _, c := range r.clients {
		fn(c)
	}
}
