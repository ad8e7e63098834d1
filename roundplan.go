package ohhell

import "fmt"

// Stage represents the three macro-phases of a game. A full game climbs
// from one-card rounds to the maximum hand size with trump, plays one
// no-trump round per seat at the maximum size, then descends back to one.
type Stage int

const (
	Ascending Stage = iota
	NoTrump
	Descending
)

var stageNames = []string{"Ascending", "NoTrump", "Descending"}

func (s Stage) String() string {
	return stageNames[s]
}

// RoundSpec describes one round of the plan
type RoundSpec struct {
	Stage         Stage
	CardsPerRound int
}

// MaxCards is the largest hand size dealable to seatCount seats,
// reserving one card for the trump reveal.
func MaxCards(seatCount int) int {
	return 52/seatCount - 1
}

// NewRoundPlan computes the full ordered round sequence for a game of
// seatCount seats. The plan is computed once at game start and consumed
// sequentially; reaching its end ends the game.
func NewRoundPlan(seatCount int) ([]RoundSpec, error) {
	if seatCount < minSeats || seatCount > maxSeats {
		return nil, fmt.Errorf("cannot plan a game for %d seats", seatCount)
	}

	maxCards := MaxCards(seatCount)
	plan := []RoundSpec{}

	for n := 1; n <= maxCards; n++ {
		plan = append(plan, RoundSpec{Stage: Ascending, CardsPerRound: n})
	}
	for i := 0; i < seatCount; i++ {
		plan = append(plan, RoundSpec{Stage: NoTrump, CardsPerRound: maxCards})
	}
	for n := maxCards; n >= 1; n-- {
		plan = append(plan, RoundSpec{Stage: Descending, CardsPerRound: n})
	}

	return plan, nil
}
