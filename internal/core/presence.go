package core

// broadcastCount sends the number of live connections to each of them.
func (l *Lobby) broadcastCount() {
	count := l.registry.Len()
	l.registry.Each(func(c *Client) {
		l.send(c, &Event{Kind: EventOnlineCount, Count: count})
	})
}
