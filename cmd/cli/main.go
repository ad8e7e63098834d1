package main

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/louordway/ohhell"
	"github.com/louordway/ohhell/protocol"
)

// Local hot-seat client: one human against automated seats, sharing the
// same engine the server uses.

func main() {
	name, _ := pterm.DefaultInteractiveTextInput.
		WithDefaultText("Enter your name").
		Show()
	if name == "" {
		name = "You"
	}

	sizeChoice, _ := pterm.DefaultInteractiveSelect.
		WithDefaultText("Table size").
		WithOptions([]string{"2", "3", "4", "5"}).
		Show()
	tableSize, _ := strconv.Atoi(sizeChoice)

	playerID := ohhell.NewID()
	game := ohhell.NewGame("local", ohhell.GameOpts{TableSize: tableSize})

	if err := game.AddPlayer(protocol.PlayerInfo{PlayerID: playerID, Name: name}); err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	if err := game.Start(); err != nil {
		pterm.Error.Println(err.Error())
		return
	}

	lastRound := 0
	for game.Phase() != ohhell.GameOver {
		view := game.View(playerID)

		if view.RoundNumber != lastRound {
			lastRound = view.RoundNumber
			printRoundHeader(view)
		}

		if view.CurrentTurn != playerID {
			// Automated seats act synchronously, so this only happens
			// if the state machine is broken.
			pterm.Error.Println("stuck waiting for an automated seat")
			return
		}

		switch view.Phase {
		case "Bidding":
			promptBid(game, playerID, view)
		case "Playing":
			promptCard(game, playerID, view)
		}
	}

	printResult(game.View(playerID))
}

func printRoundHeader(view *protocol.GameView) {
	pterm.Println()
	pterm.Info.Printfln("Round %d (%s): %d card(s) each", view.RoundNumber, view.Stage, view.CardsPerRound)
	if view.TrumpCard != nil {
		pterm.Info.Printfln("Trump card: %s", pterm.LightCyan(view.TrumpCard.String()))
	} else {
		pterm.Info.Println("No trump this round")
	}

	data := pterm.TableData{{"Seat", "Score"}}
	for _, s := range view.Seats {
		data = append(data, []string{s.Name, strconv.Itoa(s.Score)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func promptBid(game *ohhell.Game, playerID string, view *protocol.GameView) {
	printHand(view)

	options := []string{}
	for i := 0; i <= view.CardsPerRound; i++ {
		options = append(options, strconv.Itoa(i))
	}

	choice, _ := pterm.DefaultInteractiveSelect.
		WithDefaultText("How many tricks will you win?").
		WithOptions(options).
		Show()
	bid, _ := strconv.Atoi(choice)

	if err := game.SubmitBid(playerID, bid); err != nil {
		pterm.Error.Println(err.Error())
	}
}

func promptCard(game *ohhell.Game, playerID string, view *protocol.GameView) {
	printTrick(view)

	options := make([]string, len(view.Hand))
	for i, c := range view.Hand {
		options[i] = c.String()
	}

	choice, _ := pterm.DefaultInteractiveSelect.
		WithDefaultText("Play a card").
		WithOptions(options).
		Show()

	for i, option := range options {
		if option == choice {
			if err := game.PlayCard(playerID, view.Hand[i]); err != nil {
				pterm.Error.Println(err.Error())
			}
			return
		}
	}
}

func printHand(view *protocol.GameView) {
	hand := ""
	for i, c := range view.Hand {
		if i > 0 {
			hand += ", "
		}
		hand += c.String()
	}
	pterm.Println(fmt.Sprintf("Your hand: %s", pterm.LightGreen(hand)))
}

func printTrick(view *protocol.GameView) {
	if len(view.Trick) == 0 {
		pterm.Println("You lead the trick.")
		return
	}
	for _, play := range view.Trick {
		for _, s := range view.Seats {
			if s.PlayerID == play.PlayerID {
				pterm.Printfln("%s played %s", s.Name, pterm.LightCyan(play.Card.String()))
			}
		}
	}
}

func printResult(view *protocol.GameView) {
	pterm.Println()
	data := pterm.TableData{{"Seat", "Score"}}
	for _, s := range view.Seats {
		data = append(data, []string{s.Name, strconv.Itoa(s.Score)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	winners := map[string]bool{}
	for _, w := range view.Winners {
		winners[w] = true
	}
	for _, s := range view.Seats {
		if winners[s.PlayerID] {
			pterm.Success.Printfln("%s wins with %d points!", s.Name, s.Score)
		}
	}
}
