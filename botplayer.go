package ohhell

import (
	"github.com/louordway/ohhell/deck"
)

// Automated seat policy. Both functions are pure and only look at
// information visible to the seat itself: its own hand and the public
// trick/round state.

const (
	trumpBidThreshold = deck.Ten
	highCardThreshold = deck.Queen
)

// ChooseBid estimates how many tricks the hand should win: one per
// decent trump, half for each high card of a side suit. High cards are
// weighted down in no-trump rounds, where nothing protects them.
func ChooseBid(hand []deck.Card, trump *deck.Suit, cardsPerRound int) int {
	highCardWeight := 0.5
	if trump == nil {
		highCardWeight = 0.35
	}

	estimate := 0.0
	for _, c := range hand {
		if trump != nil && c.Suit == *trump {
			if c.Rank >= trumpBidThreshold {
				estimate++
			}
			continue
		}
		if c.Rank >= highCardThreshold {
			estimate += highCardWeight
		}
	}

	bid := int(estimate + 0.5)
	if bid > cardsPerRound {
		bid = cardsPerRound
	}
	return bid
}

// ChooseCard picks a card for an automated seat. needsTricks reports
// whether the seat is still short of its bid this round.
//
// When leading, the seat plays its strongest card if it still needs
// tricks, otherwise its weakest. When following, it plays the cheapest
// card that wins if it needs the trick, otherwise the lowest legal
// card, shedding side suits before trumps when unable to follow.
func ChooseCard(hand []deck.Card, led *deck.Suit, trump *deck.Suit, winning *deck.Card, needsTricks bool) deck.Card {
	if led == nil {
		if needsTricks {
			return highestCard(hand, trump)
		}
		return lowestCard(hand, trump)
	}

	if hasSuit(hand, *led) {
		followers := cardsOfSuit(hand, *led)
		if needsTricks && winning != nil {
			if c, ok := cheapestWinner(followers, *winning, *led, trump); ok {
				return c
			}
		}
		return lowestCard(followers, trump)
	}

	// Void in the led suit.
	if needsTricks && winning != nil && trump != nil && hasSuit(hand, *trump) {
		if c, ok := cheapestWinner(cardsOfSuit(hand, *trump), *winning, *led, trump); ok {
			return c
		}
	}

	// Discard: shed the lowest card of a side suit first.
	if trump != nil {
		sideCards := []deck.Card{}
		for _, c := range hand {
			if c.Suit != *trump {
				sideCards = append(sideCards, c)
			}
		}
		if len(sideCards) > 0 {
			return lowestCard(sideCards, trump)
		}
	}
	return lowestCard(hand, trump)
}

// cardStrength orders cards for the policy: rank within suit, with the
// whole trump suit above everything else.
func cardStrength(c deck.Card, trump *deck.Suit) int {
	strength := int(c.Rank)
	if trump != nil && c.Suit == *trump {
		strength += int(deck.Ace)
	}
	return strength
}

func cardsOfSuit(hand []deck.Card, suit deck.Suit) []deck.Card {
	cards := []deck.Card{}
	for _, c := range hand {
		if c.Suit == suit {
			cards = append(cards, c)
		}
	}
	return cards
}

func highestCard(cards []deck.Card, trump *deck.Suit) deck.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if cardStrength(c, trump) > cardStrength(best, trump) {
			best = c
		}
	}
	return best
}

func lowestCard(cards []deck.Card, trump *deck.Suit) deck.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if cardStrength(c, trump) < cardStrength(best, trump) {
			best = c
		}
	}
	return best
}

// cheapestWinner returns the weakest candidate that would beat the
// currently winning card, if any candidate does.
func cheapestWinner(candidates []deck.Card, winning deck.Card, led deck.Suit, trump *deck.Suit) (deck.Card, bool) {
	var best deck.Card
	found := false
	for _, c := range candidates {
		if !beats(c, winning, led, trump) {
			continue
		}
		if !found || cardStrength(c, trump) < cardStrength(best, trump) {
			best = c
			found = true
		}
	}
	return best, found
}
