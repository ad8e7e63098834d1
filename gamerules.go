package ohhell

import (
	"github.com/louordway/ohhell/deck"
)

const (
	minSeats         = 1
	maxSeats         = 5
	defaultTableSize = 4
)

func hasSuit(hand []deck.Card, suit deck.Suit) bool {
	for _, c := range hand {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

func handIndex(hand []deck.Card, card deck.Card) int {
	for i, c := range hand {
		if c == card {
			return i
		}
	}
	return -1
}

// legalPlay reports whether a card from the hand may be played against
// the led suit. A seat holding a card of the led suit must follow it;
// a seat with none of that suit may play anything.
func legalPlay(hand []deck.Card, card deck.Card, led *deck.Suit) bool {
	if led == nil {
		return true
	}
	if card.Suit == *led {
		return true
	}
	return !hasSuit(hand, *led)
}

func removeCard(hand []deck.Card, idx int) []deck.Card {
	return append(hand[:idx], hand[idx+1:]...)
}

func validBid(bid, cardsPerRound int) bool {
	return bid >= 0 && bid <= cardsPerRound
}
