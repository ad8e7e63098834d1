package ohhell

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/louordway/ohhell/deck"
	"github.com/louordway/ohhell/protocol"
)

// Phase represents the lifecycle of a game
type Phase int

const (
	Waiting Phase = iota
	Bidding
	Playing
	RoundOver
	GameOver
)

var phaseNames = []string{"Waiting", "Bidding", "Playing", "RoundOver", "GameOver"}

func (p Phase) String() string {
	return phaseNames[p]
}

var (
	ErrSessionFull    = errors.New("no free seats in this game")
	ErrDuplicateJoin  = errors.New("player already holds a seat")
	ErrNotEnoughSeats = errors.New("at least one player must be seated")
	ErrOutOfTurn      = errors.New("not this seat's turn")
	ErrInvalidBid     = errors.New("bid is out of range")
	ErrCardNotInHand  = errors.New("card is not in hand")
	ErrMustFollowSuit = errors.New("must follow the led suit")
	ErrInvalidPhase   = errors.New("action is not valid in the current phase")
	ErrUnknownPlayer  = errors.New("no seat for this player")
)

var botNames = []string{"Ada", "Bram", "Clem", "Dora", "Edie"}

// Seat is one position in a game, occupied by either a human identity
// or an automated player. The hand is owned exclusively by the seat.
type Seat struct {
	Info      protocol.PlayerInfo
	Automated bool
	Connected bool
	Hand      []deck.Card
	Bid       *int
	TricksWon int
	Score     int
}

// GameOpts configures a new game
type GameOpts struct {
	// TableSize is the number of seats filled (with automated players
	// if necessary) when the game starts. Defaults to 4, capped at 5.
	TableSize int
	// Seed seeds the game's shuffles. Zero means time-based.
	Seed int64
}

// Game is the state machine for one session. It is not safe for
// concurrent use; the engine serialises all access to it.
type Game struct {
	id        string
	tableSize int
	rng       *rand.Rand

	phase Phase
	seats []*Seat

	plan        []RoundSpec
	planIdx     int
	roundNumber int
	trumpCard   *deck.Card
	dealerIdx   int
	turnIdx     int
	trick       Trick
}

// NewGame constructs a game in the Waiting phase
func NewGame(id string, opts GameOpts) *Game {
	tableSize := opts.TableSize
	if tableSize < minSeats || tableSize > maxSeats {
		tableSize = defaultTableSize
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Game{
		id:        id,
		tableSize: tableSize,
		rng:       rand.New(rand.NewSource(seed)),
		phase:     Waiting,
		planIdx:   -1,
		dealerIdx: -1,
	}
}

func (g *Game) ID() string {
	return g.id
}

func (g *Game) Phase() Phase {
	return g.phase
}

// Seats returns the seat list in seat order
func (g *Game) Seats() []*Seat {
	return g.seats
}

// HumanSeatCount returns the number of seats held by human identities
func (g *Game) HumanSeatCount() int {
	count := 0
	for _, s := range g.seats {
		if !s.Automated {
			count++
		}
	}
	return count
}

// ConnectedHumanCount returns the number of humans currently connected
func (g *Game) ConnectedHumanCount() int {
	count := 0
	for _, s := range g.seats {
		if !s.Automated && s.Connected {
			count++
		}
	}
	return count
}

// AddPlayer seats a human identity. Only valid before the game starts.
func (g *Game) AddPlayer(info protocol.PlayerInfo) error {
	if g.phase != Waiting {
		return ErrInvalidPhase
	}
	if _, err := g.seatIndexFor(info.PlayerID); err == nil {
		return ErrDuplicateJoin
	}
	if len(g.seats) >= g.tableSize {
		return ErrSessionFull
	}

	g.seats = append(g.seats, &Seat{Info: info, Connected: true})
	return nil
}

// RemovePlayer handles a human leaving. Before the game starts the seat
// is given up entirely; mid-game the seat stays owned by the identity
// and is only marked disconnected, so the player can resume it later.
func (g *Game) RemovePlayer(playerID string) error {
	idx, err := g.seatIndexFor(playerID)
	if err != nil {
		return err
	}

	if g.phase == Waiting {
		g.seats = append(g.seats[:idx], g.seats[idx+1:]...)
		return nil
	}

	g.seats[idx].Connected = false
	return nil
}

// Reconnect marks a previously seated human as connected again
func (g *Game) Reconnect(playerID string) error {
	idx, err := g.seatIndexFor(playerID)
	if err != nil {
		return err
	}
	g.seats[idx].Connected = true
	return nil
}

// Start fills the remaining seats with automated players, computes the
// round plan and deals the first round.
func (g *Game) Start() error {
	if g.phase != Waiting {
		return ErrInvalidPhase
	}
	if len(g.seats) < 1 {
		return ErrNotEnoughSeats
	}

	for i := len(g.seats); i < g.tableSize; i++ {
		g.seats = append(g.seats, &Seat{
			Info: protocol.PlayerInfo{
				PlayerID: fmt.Sprintf("bot-%d", i+1),
				Name:     botNames[i%len(botNames)],
			},
			Automated: true,
		})
	}

	plan, err := NewRoundPlan(len(g.seats))
	if err != nil {
		return err
	}
	g.plan = plan

	g.startNextRound()
	g.runAutomatedSeats()
	return nil
}

// SubmitBid applies a bid from the seat whose turn it is
func (g *Game) SubmitBid(playerID string, bid int) error {
	idx, err := g.seatIndexFor(playerID)
	if err != nil {
		return err
	}
	if g.phase != Bidding {
		return ErrInvalidPhase
	}
	if idx != g.turnIdx {
		return ErrOutOfTurn
	}
	if !validBid(bid, g.cardsPerRound()) {
		return ErrInvalidBid
	}

	g.applyBid(idx, bid)
	g.runAutomatedSeats()
	return nil
}

// PlayCard applies a card play from the seat whose turn it is. The card
// moves from the hand into the current trick; a full trick is resolved,
// and a finished round is scored and advanced immediately.
func (g *Game) PlayCard(playerID string, card deck.Card) error {
	idx, err := g.seatIndexFor(playerID)
	if err != nil {
		return err
	}
	if g.phase != Playing {
		return ErrInvalidPhase
	}
	if idx != g.turnIdx {
		return ErrOutOfTurn
	}

	hand := g.seats[idx].Hand
	if handIndex(hand, card) < 0 {
		return ErrCardNotInHand
	}

	var led *deck.Suit
	if suit, ok := g.trick.LedSuit(); ok {
		led = &suit
	}
	if !legalPlay(hand, card, led) {
		return ErrMustFollowSuit
	}

	g.applyPlay(idx, card)
	g.runAutomatedSeats()
	return nil
}

// Winners returns the seats with the highest cumulative score. A tie is
// reported as a shared-winner set. Only meaningful once the game is over.
func (g *Game) Winners() []string {
	if g.phase != GameOver {
		return nil
	}

	best := g.seats[0].Score
	for _, s := range g.seats[1:] {
		if s.Score > best {
			best = s.Score
		}
	}

	winners := []string{}
	for _, s := range g.seats {
		if s.Score == best {
			winners = append(winners, s.Info.PlayerID)
		}
	}
	return winners
}

func (g *Game) seatIndexFor(playerID string) (int, error) {
	for i, s := range g.seats {
		if s.Info.PlayerID == playerID {
			return i, nil
		}
	}
	return -1, ErrUnknownPlayer
}

func (g *Game) currentSpec() RoundSpec {
	return g.plan[g.planIdx]
}

func (g *Game) cardsPerRound() int {
	return g.currentSpec().CardsPerRound
}

func (g *Game) trumpSuit() *deck.Suit {
	if g.trumpCard == nil {
		return nil
	}
	suit := g.trumpCard.Suit
	return &suit
}

// startNextRound consumes the next entry of the round plan. An
// exhausted plan ends the game.
func (g *Game) startNextRound() {
	g.planIdx++
	if g.planIdx >= len(g.plan) {
		g.phase = GameOver
		return
	}

	spec := g.currentSpec()
	if err := g.dealRound(spec); err != nil {
		// The plan guarantees every round fits in the deck.
		panic(err)
	}

	g.roundNumber++
	g.dealerIdx = (g.dealerIdx + 1) % len(g.seats)
	g.turnIdx = (g.dealerIdx + 1) % len(g.seats)
	g.trick = Trick{}
	for _, s := range g.seats {
		s.Bid = nil
		s.TricksWon = 0
	}
	g.phase = Bidding
}

// dealRound deals a fresh shuffle: cardsPerRound cards to each seat in
// seat order, then one card turned up as trump outside the NoTrump stage.
func (g *Game) dealRound(spec RoundSpec) error {
	needed := spec.CardsPerRound * len(g.seats)
	if spec.Stage != NoTrump {
		needed++
	}
	if needed > 52 {
		return fmt.Errorf("cannot deal %d cards per seat to %d seats", spec.CardsPerRound, len(g.seats))
	}

	d := deck.New()
	d.Shuffle(g.rng)

	for _, s := range g.seats {
		s.Hand = d.Deal(spec.CardsPerRound)
	}

	if spec.Stage != NoTrump {
		trump := d.Deal(1)[0]
		g.trumpCard = &trump
	} else {
		g.trumpCard = nil
	}
	return nil
}

func (g *Game) applyBid(seatIdx, bid int) {
	b := bid
	g.seats[seatIdx].Bid = &b

	for _, s := range g.seats {
		if s.Bid == nil {
			g.turnIdx = (g.turnIdx + 1) % len(g.seats)
			return
		}
	}

	// All bids are in; the seat left of the dealer leads.
	g.phase = Playing
	g.turnIdx = (g.dealerIdx + 1) % len(g.seats)
}

func (g *Game) applyPlay(seatIdx int, card deck.Card) {
	seat := g.seats[seatIdx]
	seat.Hand = removeCard(seat.Hand, handIndex(seat.Hand, card))
	g.trick.Play(seatIdx, card)

	if !g.trick.Full(len(g.seats)) {
		g.turnIdx = (g.turnIdx + 1) % len(g.seats)
		return
	}

	winner := g.trick.Winner(g.trumpSuit())
	g.seats[winner].TricksWon++
	g.trick = Trick{}
	g.turnIdx = winner

	for _, s := range g.seats {
		if len(s.Hand) > 0 {
			return
		}
	}

	g.scoreRound()
	g.phase = RoundOver
	g.startNextRound()
}

// scoreRound applies the round's score deltas: a seat that won exactly
// its bid gets 10 plus 2 per trick, anyone else just 2 per trick.
func (g *Game) scoreRound() {
	for _, s := range g.seats {
		delta := 2 * s.TricksWon
		if s.Bid != nil && *s.Bid == s.TricksWon {
			delta += 10
		}
		s.Score += delta
	}
}

// runAutomatedSeats resolves the cascade of automated turns that follow
// an accepted action, synchronously. A single human action may advance
// the game through several bot bids, plays, trick resolutions and even
// round boundaries before control returns.
func (g *Game) runAutomatedSeats() {
	for (g.phase == Bidding || g.phase == Playing) && g.seats[g.turnIdx].Automated {
		seat := g.seats[g.turnIdx]

		if g.phase == Bidding {
			g.applyBid(g.turnIdx, ChooseBid(seat.Hand, g.trumpSuit(), g.cardsPerRound()))
			continue
		}

		var led *deck.Suit
		if suit, ok := g.trick.LedSuit(); ok {
			led = &suit
		}
		var winning *deck.Card
		if play, ok := g.trick.WinningPlay(g.trumpSuit()); ok {
			c := play.Card
			winning = &c
		}
		needsTricks := seat.Bid != nil && seat.TricksWon < *seat.Bid

		g.applyPlay(g.turnIdx, ChooseCard(seat.Hand, led, g.trumpSuit(), winning, needsTricks))
	}
}
