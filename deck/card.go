package deck

import (
	"errors"
	"fmt"
)

// Rank represents a rank in a deck of cards.
// Ranks are ordered for trick comparison: Two is lowest, Ace is highest.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankNames = map[Rank]string{
	Two:   "Two",
	Three: "Three",
	Four:  "Four",
	Five:  "Five",
	Six:   "Six",
	Seven: "Seven",
	Eight: "Eight",
	Nine:  "Nine",
	Ten:   "Ten",
	Jack:  "Jack",
	Queen: "Queen",
	King:  "King",
	Ace:   "Ace",
}

var nameToRank = map[string]Rank{}

func (r Rank) String() string {
	return rankNames[r]
}

// MarshalText makes ranks human-readable on the wire.
func (r Rank) MarshalText() ([]byte, error) {
	name, ok := rankNames[r]
	if !ok {
		return nil, fmt.Errorf("unknown rank %d", int(r))
	}
	return []byte(name), nil
}

func (r *Rank) UnmarshalText(data []byte) error {
	rank, ok := nameToRank[string(data)]
	if !ok {
		return fmt.Errorf("unknown rank %q", string(data))
	}
	*r = rank
	return nil
}

// Suit represents a suit in a deck of cards
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

var suitNames = []string{"Clubs", "Diamonds", "Hearts", "Spades"}

var nameToSuit = map[string]Suit{}

func init() {
	for r, name := range rankNames {
		nameToRank[name] = r
	}
	for s, name := range suitNames {
		nameToSuit[name] = Suit(s)
	}
}

func (s Suit) String() string {
	return suitNames[s]
}

func (s Suit) MarshalText() ([]byte, error) {
	if s < Clubs || s > Spades {
		return nil, fmt.Errorf("unknown suit %d", int(s))
	}
	return []byte(suitNames[s]), nil
}

func (s *Suit) UnmarshalText(data []byte) error {
	suit, ok := nameToSuit[string(data)]
	if !ok {
		return fmt.Errorf("unknown suit %q", string(data))
	}
	*s = suit
	return nil
}

// Card represents a playing card. Cards are immutable values;
// two cards are equal iff their rank and suit match.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// NewCard constructs a card, validating its rank and suit.
func NewCard(rank Rank, suit Suit) (Card, error) {
	if rank < Two || rank > Ace || suit < Clubs || suit > Spades {
		return Card{}, errors.New("arguments out of range")
	}
	return Card{Rank: rank, Suit: suit}, nil
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}
