package ohhell

import (
	"github.com/louordway/ohhell/deck"
	"github.com/louordway/ohhell/protocol"
)

// View builds the session state as visible to one recipient. Only the
// recipient's own hand is included; other seats are reduced to card
// counts. Bids, tricks won and scores are public.
func (g *Game) View(recipientID string) *protocol.GameView {
	view := &protocol.GameView{
		GameID:      g.id,
		Phase:       g.phase.String(),
		RoundNumber: g.roundNumber,
		Seats:       make([]protocol.SeatView, 0, len(g.seats)),
	}

	for _, s := range g.seats {
		sv := protocol.SeatView{
			PlayerID:  s.Info.PlayerID,
			Name:      s.Info.Name,
			Automated: s.Automated,
			Connected: s.Automated || s.Connected,
			CardCount: len(s.Hand),
			TricksWon: s.TricksWon,
			Score:     s.Score,
		}
		if s.Bid != nil {
			bid := *s.Bid
			sv.Bid = &bid
		}
		view.Seats = append(view.Seats, sv)

		if s.Info.PlayerID == recipientID && !s.Automated {
			view.Hand = append([]deck.Card{}, s.Hand...)
		}
	}

	if g.phase == Waiting {
		return view
	}

	if g.phase != GameOver {
		spec := g.currentSpec()
		view.Stage = spec.Stage.String()
		view.CardsPerRound = spec.CardsPerRound
		view.TrumpCard = g.trumpCard
		view.Dealer = g.seats[g.dealerIdx].Info.PlayerID

		if g.phase == Bidding || g.phase == Playing {
			view.CurrentTurn = g.seats[g.turnIdx].Info.PlayerID
		}

		if suit, ok := g.trick.LedSuit(); ok {
			view.LedSuit = &suit
		}
		for _, p := range g.trick.Plays {
			view.Trick = append(view.Trick, protocol.PlayView{
				PlayerID: g.seats[p.Seat].Info.PlayerID,
				Card:     p.Card,
			})
		}
	} else {
		view.Winners = g.Winners()
	}

	return view
}

func buildStateChangedMessage(g *Game, recipientID string) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		PlayerID: recipientID,
		Command:  protocol.StateChanged,
		View:     g.View(recipientID),
	}
}

func buildNewJoinerMessage(joiner protocol.PlayerInfo, recipientID string) protocol.OutboundMessage {
	j := joiner
	return protocol.OutboundMessage{
		PlayerID: recipientID,
		Command:  protocol.NewJoiner,
		Message:  joiner.Name + " has joined the game!",
		Joiner:   &j,
	}
}

func buildPlayerLeftMessage(leaver protocol.PlayerInfo, recipientID string) protocol.OutboundMessage {
	l := leaver
	return protocol.OutboundMessage{
		PlayerID: recipientID,
		Command:  protocol.PlayerLeft,
		Message:  leaver.Name + " has left the game",
		Joiner:   &l,
	}
}

func buildGameOverMessage(g *Game, recipientID string) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		PlayerID: recipientID,
		Command:  protocol.GameOver,
		View:     g.View(recipientID),
	}
}

func buildRejectionMessage(recipientID string, cmd protocol.Cmd, err error) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		PlayerID: recipientID,
		Command:  protocol.Rejected,
		Message:  cmd.String(),
		Error:    err.Error(),
	}
}
