package ohhell

import (
	"github.com/louordway/ohhell/deck"
)

// PlayedCard stores a card along with the seat that played it
type PlayedCard struct {
	Seat int
	Card deck.Card
}

// Trick represents a single trick. The first card played fixes the led
// suit; once every seat has played, the trick is resolved and cleared.
type Trick struct {
	Plays []PlayedCard
	led   *deck.Suit
}

// Play adds a card to the trick in play order
func (t *Trick) Play(seat int, card deck.Card) {
	if len(t.Plays) == 0 {
		suit := card.Suit
		t.led = &suit
	}
	t.Plays = append(t.Plays, PlayedCard{Seat: seat, Card: card})
}

// LedSuit returns the suit of the first card played this trick
func (t *Trick) LedSuit() (deck.Suit, bool) {
	if t.led == nil {
		return 0, false
	}
	return *t.led, true
}

// Full reports whether every seat has played into the trick
func (t *Trick) Full(seatCount int) bool {
	return len(t.Plays) >= seatCount
}

// WinningPlay returns the play currently winning the trick. Used both
// for resolution and for automated-seat lookahead mid-trick.
func (t *Trick) WinningPlay(trump *deck.Suit) (PlayedCard, bool) {
	if len(t.Plays) == 0 {
		return PlayedCard{}, false
	}

	winning := t.Plays[0]
	for _, p := range t.Plays[1:] {
		if beats(p.Card, winning.Card, *t.led, trump) {
			winning = p
		}
	}
	return winning, true
}

// Winner resolves a full trick to the winning seat. The highest trump
// wins if any trump was played; otherwise the highest card of the led
// suit. Ties are impossible since all cards in a deck are unique.
func (t *Trick) Winner(trump *deck.Suit) int {
	winning, _ := t.WinningPlay(trump)
	return winning.Seat
}

// beats reports whether the candidate card beats the currently winning
// card. The winning card is always of the led suit or the trump suit.
func beats(candidate, winning deck.Card, led deck.Suit, trump *deck.Suit) bool {
	if trump != nil {
		if candidate.Suit == *trump && winning.Suit != *trump {
			return true
		}
		if candidate.Suit != *trump && winning.Suit == *trump {
			return false
		}
	}
	if candidate.Suit == winning.Suit {
		return candidate.Rank > winning.Rank
	}
	return candidate.Suit == led && winning.Suit != led
}
