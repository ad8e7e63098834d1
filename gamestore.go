package ohhell

import (
	"errors"
	"fmt"
	"sync"

	"github.com/louordway/ohhell/protocol"
)

var (
	ErrUnknownGameID      = errors.New("unknown game ID")
	ErrGameAlreadyStarted = errors.New("game has already started")
)

// GameListing is the read-only lobby projection of a joinable game
type GameListing struct {
	GameID    string `json:"game_id"`
	Occupants int    `json:"occupants"`
}

// GameStore is the registry of live game engines
type GameStore interface {
	FindGame(gameID string) GameEngine
	FindWaitingGame(gameID string) GameEngine
	AddGame(engine GameEngine) error
	RemoveGame(gameID string)
	AddPendingPlayer(gameID, playerID, name string) error
	FindPendingPlayer(gameID, playerID string) *protocol.PlayerInfo
	WaitingGames() []GameListing
}

// InMemoryGameStore maps game id to game engine. The store's lock only
// guards the maps; actions against an individual game are serialised by
// that game's engine, so unrelated games never contend.
type InMemoryGameStore struct {
	mu             sync.RWMutex
	games          map[string]GameEngine
	pendingPlayers map[string][]protocol.PlayerInfo
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		games:          map[string]GameEngine{},
		pendingPlayers: map[string][]protocol.PlayerInfo{},
	}
}

func (s *InMemoryGameStore) FindGame(gameID string) GameEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.games[gameID]
}

// FindWaitingGame finds a game that is still accepting joiners
func (s *InMemoryGameStore) FindWaitingGame(gameID string) GameEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.games[gameID]
	if !ok || game.PlayState() != Idle {
		return nil
	}
	return game
}

func (s *InMemoryGameStore) AddGame(engine GameEngine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[engine.ID()]; exists {
		return fmt.Errorf("game with id %s already exists", engine.ID())
	}
	s.games[engine.ID()] = engine
	return nil
}

func (s *InMemoryGameStore) RemoveGame(gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.games, gameID)
	delete(s.pendingPlayers, gameID)
}

// AddPendingPlayer records the information from which to construct a
// Player when its websocket connection arrives.
func (s *InMemoryGameStore) AddPendingPlayer(gameID, playerID, name string) error {
	game := s.FindGame(gameID)
	if game == nil {
		return ErrUnknownGameID
	}
	if game.PlayState() != Idle {
		return ErrGameAlreadyStarted
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingPlayers[gameID] = append(s.pendingPlayers[gameID], protocol.PlayerInfo{PlayerID: playerID, Name: name})
	return nil
}

func (s *InMemoryGameStore) FindPendingPlayer(gameID, playerID string) *protocol.PlayerInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, info := range s.pendingPlayers[gameID] {
		if info.PlayerID == playerID {
			return &s.pendingPlayers[gameID][i]
		}
	}
	return nil
}

// WaitingGames lists games still accepting joiners, with their
// occupant counts. Occupants are seats actually held, not join
// requests: a pending player only counts once its connection arrives,
// and a seat given up before the start leaves the count again.
func (s *InMemoryGameStore) WaitingGames() []GameListing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listings := []GameListing{}
	for id, game := range s.games {
		if game.PlayState() != Idle {
			continue
		}
		listings = append(listings, GameListing{
			GameID:    id,
			Occupants: game.Occupants(),
		})
	}
	return listings
}
