package ohhell

import (
	"sync"

	"github.com/louordway/ohhell/protocol"
)

// TestPlayer is a Player that records every message sent to it.
// Only for use in tests.
type TestPlayer struct {
	id   string
	name string

	mu       sync.Mutex
	messages []protocol.OutboundMessage
}

func NewTestPlayer(id, name string) *TestPlayer {
	return &TestPlayer{id: id, name: name}
}

func (p *TestPlayer) ID() string {
	return p.id
}

func (p *TestPlayer) Name() string {
	return p.name
}

func (p *TestPlayer) Send(msg protocol.OutboundMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}

// Messages returns a copy of everything sent to the player so far
func (p *TestPlayer) Messages() []protocol.OutboundMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]protocol.OutboundMessage{}, p.messages...)
}

// LastMessageOf returns the most recent message with the given command
func (p *TestPlayer) LastMessageOf(cmd protocol.Cmd) (protocol.OutboundMessage, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.messages) - 1; i >= 0; i-- {
		if p.messages[i].Command == cmd {
			return p.messages[i], true
		}
	}
	return protocol.OutboundMessage{}, false
}

// SomePlayers constructs a couple of test players
func SomePlayers() Players {
	return Players{
		NewTestPlayer(NewID(), "Harry"),
		NewTestPlayer(NewID(), "Sally"),
	}
}
