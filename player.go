package ohhell

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
	uuid "github.com/satori/go.uuid"

	"github.com/louordway/ohhell/protocol"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024
)

// NewID constructs a player ID
func NewID() string {
	return uuid.NewV4().String()
}

// Player represents a connected human player
type Player interface {
	ID() string
	Name() string
	Send(msg protocol.OutboundMessage) error
}

// Players is a collection of Players
type Players []Player

// Find finds a player by id
func (ps Players) Find(id string) (Player, bool) {
	for _, p := range ps {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}

// AddPlayer adds a player to the set, replacing a previous connection
// for the same id (reconnect).
func AddPlayer(ps Players, p Player) Players {
	if _, ok := ps.Find(p.ID()); ok {
		ps = RemovePlayer(ps, p.ID())
	}
	return append(ps, p)
}

// RemovePlayer removes a player from the set
func RemovePlayer(ps Players, id string) Players {
	for i, p := range ps {
		if p.ID() == id {
			return append(ps[:i], ps[i+1:]...)
		}
	}
	return ps
}

// WSPlayer represents a player connected over a websocket
type WSPlayer struct {
	id     string
	name   string
	conn   *websocket.Conn
	send   chan []byte
	engine GameEngine
}

// NewWSPlayer constructs a WSPlayer and starts its read and write pumps
func NewWSPlayer(id, name string, conn *websocket.Conn, engine GameEngine) *WSPlayer {
	p := &WSPlayer{
		id:     id,
		name:   name,
		conn:   conn,
		send:   make(chan []byte, 16),
		engine: engine,
	}

	go p.writePump()
	go p.readPump()

	return p
}

func (p *WSPlayer) ID() string {
	return p.id
}

func (p *WSPlayer) Name() string {
	return p.name
}

// Send marshals an outbound message and queues it for delivery
func (p *WSPlayer) Send(msg protocol.OutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case p.send <- data:
	default:
		// Slow consumer; drop the connection rather than block the engine.
		p.conn.Close()
	}
	return nil
}

// readPump forwards inbound messages to the engine. The player id on
// the wire is overwritten with the authenticated one.
func (p *WSPlayer) readPump() {
	defer func() {
		p.engine.RemovePlayer(p.id)
		p.conn.Close()
	}()

	p.conn.SetReadLimit(maxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		p.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("player %s: read error: %v", p.id, err)
			}
			return
		}

		var msg protocol.InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("player %s: bad message: %v", p.id, err)
			continue
		}
		msg.PlayerID = p.id

		p.engine.Receive(msg)
	}
}

func (p *WSPlayer) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-p.send:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				p.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
