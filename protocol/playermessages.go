package protocol

import (
	"github.com/louordway/ohhell/deck"
)

// PlayerInfo identifies a human player
type PlayerInfo struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
}

// InboundMessage is a message from a Player to the GameEngine
type InboundMessage struct {
	PlayerID string     `json:"playerID"`
	Command  Cmd        `json:"command"`
	Bid      int        `json:"bid,omitempty"`
	Card     *deck.Card `json:"card,omitempty"`
}

// OutboundMessage is a message from the GameEngine to a Player
type OutboundMessage struct {
	PlayerID string      `json:"playerID"`
	Command  Cmd         `json:"command"`
	Message  string      `json:"message,omitempty"`
	Joiner   *PlayerInfo `json:"joiner,omitempty"`
	View     *GameView   `json:"view,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// SeatView is the public representation of a seat. Hands are reduced
// to a card count; only the recipient's own cards appear in GameView.Hand.
type SeatView struct {
	PlayerID  string `json:"playerID"`
	Name      string `json:"name"`
	Automated bool   `json:"automated"`
	Connected bool   `json:"connected"`
	CardCount int    `json:"cardCount"`
	Bid       *int   `json:"bid,omitempty"`
	TricksWon int    `json:"tricksWon"`
	Score     int    `json:"score"`
}

// PlayView is one card played into the current trick
type PlayView struct {
	PlayerID string    `json:"playerID"`
	Card     deck.Card `json:"card"`
}

// GameView is the full session state as visible to one recipient
type GameView struct {
	GameID        string      `json:"gameID"`
	Phase         string      `json:"phase"`
	Stage         string      `json:"stage,omitempty"`
	RoundNumber   int         `json:"roundNumber"`
	CardsPerRound int         `json:"cardsPerRound"`
	TrumpCard     *deck.Card  `json:"trumpCard,omitempty"`
	LedSuit       *deck.Suit  `json:"ledSuit,omitempty"`
	Dealer        string      `json:"dealer,omitempty"`
	CurrentTurn   string      `json:"currentTurn,omitempty"`
	Seats         []SeatView  `json:"seats"`
	Trick         []PlayView  `json:"trick,omitempty"`
	Hand          []deck.Card `json:"hand,omitempty"`
	Winners       []string    `json:"winners,omitempty"`
}
