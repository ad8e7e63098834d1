package ohhell

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"github.com/louordway/ohhell/protocol"
)

// PlayState represents the lifecycle of an engine.
// Idle -> accepting joiners, InProgress -> game running,
// Finished -> game over.
type PlayState int32

const (
	Idle PlayState = iota
	InProgress
	Finished
)

func (ps PlayState) String() string {
	switch ps {
	case Idle:
		return "idle"
	case InProgress:
		return "inProgress"
	case Finished:
		return "finished"
	}
	return ""
}

var (
	ErrNilGame       = errors.New("game is nil")
	ErrEngineStopped = errors.New("engine is no longer running")
)

// GameEngine drives one game. All access to the underlying Game is
// serialised through the engine's Listen loop, so a single accepted
// action (and the cascade of automated turns it triggers) is applied
// atomically before the next one is looked at.
type GameEngine interface {
	ID() string
	CreatorID() string
	PlayState() PlayState
	Occupants() int
	Game() *Game
	AddPlayer(Player) error
	RemovePlayer(playerID string)
	Receive(protocol.InboundMessage)
	Listen()
}

type gameEngine struct {
	id        string
	creatorID string
	playState atomic.Int32
	occupants atomic.Int32
	game      *Game
	players   Players

	registerCh   chan Player
	unregisterCh chan string
	inboundCh    chan protocol.InboundMessage

	done     chan struct{}
	stopOnce sync.Once

	// onEmpty is invoked when no humans remain in a joinable or
	// finished game, so the registry can reap the session.
	onEmpty func(gameID string)
}

// GameEngineOpts represents options for constructing a new GameEngine
type GameEngineOpts struct {
	GameID       string
	CreatorID    string
	Game         *Game
	RegisterCh   chan Player
	UnregisterCh chan string
	InboundCh    chan protocol.InboundMessage
	OnEmpty      func(gameID string)
}

// NewGameEngine constructs a new GameEngine. The caller is expected to
// run Listen in its own goroutine.
func NewGameEngine(opts GameEngineOpts) (*gameEngine, error) {
	if opts.Game == nil {
		return nil, ErrNilGame
	}
	if opts.RegisterCh == nil {
		opts.RegisterCh = make(chan Player)
	}
	if opts.UnregisterCh == nil {
		opts.UnregisterCh = make(chan string)
	}
	if opts.InboundCh == nil {
		opts.InboundCh = make(chan protocol.InboundMessage, 16)
	}

	return &gameEngine{
		id:           opts.GameID,
		creatorID:    opts.CreatorID,
		game:         opts.Game,
		registerCh:   opts.RegisterCh,
		unregisterCh: opts.UnregisterCh,
		inboundCh:    opts.InboundCh,
		done:         make(chan struct{}),
		onEmpty:      opts.OnEmpty,
	}, nil
}

func (ge *gameEngine) ID() string {
	return ge.id
}

func (ge *gameEngine) CreatorID() string {
	return ge.creatorID
}

func (ge *gameEngine) PlayState() PlayState {
	return PlayState(ge.playState.Load())
}

// Occupants returns the number of seats held by human identities. Kept
// as an atomic mirror of the game state so the lobby can project it
// without entering the engine's loop.
func (ge *gameEngine) Occupants() int {
	return int(ge.occupants.Load())
}

func (ge *gameEngine) Game() *Game {
	return ge.game
}

// AddPlayer hands a connected player to the engine
func (ge *gameEngine) AddPlayer(p Player) error {
	select {
	case ge.registerCh <- p:
		return nil
	case <-ge.done:
		return ErrEngineStopped
	}
}

// RemovePlayer tells the engine a player's connection has gone
func (ge *gameEngine) RemovePlayer(playerID string) {
	select {
	case ge.unregisterCh <- playerID:
	case <-ge.done:
	}
}

// Receive forwards an inbound message to the engine's loop
func (ge *gameEngine) Receive(msg protocol.InboundMessage) {
	select {
	case ge.inboundCh <- msg:
	case <-ge.done:
	}
}

// Listen drains the engine's channels one event at a time, until the
// engine is stopped.
func (ge *gameEngine) Listen() {
	for {
		// A stop takes effect before any queued event.
		select {
		case <-ge.done:
			return
		default:
		}

		select {
		case joiner := <-ge.registerCh:
			ge.handleRegister(joiner)

		case playerID := <-ge.unregisterCh:
			ge.handleUnregister(playerID)

		case msg := <-ge.inboundCh:
			ge.handleMessage(msg)

		case <-ge.done:
			return
		}
	}
}

// stop releases the engine: Listen returns and all further sends to the
// engine fall through instead of blocking.
func (ge *gameEngine) stop() {
	ge.stopOnce.Do(func() {
		close(ge.done)
	})
}

func (ge *gameEngine) refreshOccupants() {
	ge.occupants.Store(int32(ge.game.HumanSeatCount()))
}

func (ge *gameEngine) handleRegister(joiner Player) {
	info := protocol.PlayerInfo{PlayerID: joiner.ID(), Name: joiner.Name()}

	if _, err := ge.game.seatIndexFor(joiner.ID()); err == nil {
		// Known identity reconnecting: reattach and resend state.
		ge.game.Reconnect(joiner.ID())
		ge.players = AddPlayer(ge.players, joiner)
		ge.refreshOccupants()
		ge.broadcastState()
		return
	}

	if err := ge.game.AddPlayer(info); err != nil {
		joiner.Send(buildRejectionMessage(joiner.ID(), protocol.NewJoiner, err))
		return
	}

	ge.players = AddPlayer(ge.players, joiner)
	ge.refreshOccupants()

	for _, p := range ge.players {
		if p.ID() != joiner.ID() {
			p.Send(buildNewJoinerMessage(info, p.ID()))
		}
	}
	ge.broadcastState()
}

func (ge *gameEngine) handleUnregister(playerID string) {
	idx, err := ge.game.seatIndexFor(playerID)
	if err != nil {
		ge.players = RemovePlayer(ge.players, playerID)
		return
	}
	info := ge.game.seats[idx].Info

	ge.players = RemovePlayer(ge.players, playerID)
	ge.game.RemovePlayer(playerID)
	ge.refreshOccupants()

	for _, p := range ge.players {
		p.Send(buildPlayerLeftMessage(info, p.ID()))
	}
	ge.broadcastState()

	// A running game stalls awaiting reconnection; only joinable or
	// finished games are reaped once the last human is gone. A reaped
	// engine stops listening, so its goroutine does not outlive it.
	if ge.game.ConnectedHumanCount() == 0 &&
		(ge.game.Phase() == Waiting || ge.game.Phase() == GameOver) {
		if ge.onEmpty != nil {
			ge.onEmpty(ge.id)
		}
		ge.stop()
	}
}

func (ge *gameEngine) handleMessage(msg protocol.InboundMessage) {
	switch msg.Command {
	case protocol.Start:
		if err := ge.game.Start(); err != nil {
			ge.reject(msg, err)
			return
		}
		ge.playState.Store(int32(InProgress))
		for _, p := range ge.players {
			p.Send(protocol.OutboundMessage{PlayerID: p.ID(), Command: protocol.HasStarted})
		}
		ge.broadcastState()

	case protocol.Bid:
		if err := ge.game.SubmitBid(msg.PlayerID, msg.Bid); err != nil {
			ge.reject(msg, err)
			return
		}
		ge.broadcastState()

	case protocol.PlayCard:
		if msg.Card == nil {
			ge.reject(msg, ErrCardNotInHand)
			return
		}
		if err := ge.game.PlayCard(msg.PlayerID, *msg.Card); err != nil {
			ge.reject(msg, err)
			return
		}
		ge.broadcastState()

	default:
		log.Printf("game %s: unexpected command %s from %s", ge.id, msg.Command, msg.PlayerID)
	}

	if ge.game.Phase() == GameOver && ge.PlayState() != Finished {
		ge.playState.Store(int32(Finished))
		for _, p := range ge.players {
			p.Send(buildGameOverMessage(ge.game, p.ID()))
		}
	}
}

// reject notifies the acting player only; rejected actions are never
// broadcast and leave the game untouched.
func (ge *gameEngine) reject(msg protocol.InboundMessage, err error) {
	if p, ok := ge.players.Find(msg.PlayerID); ok {
		p.Send(buildRejectionMessage(msg.PlayerID, msg.Command, err))
	}
}

func (ge *gameEngine) broadcastState() {
	for _, p := range ge.players {
		p.Send(buildStateChangedMessage(ge.game, p.ID()))
	}
}
