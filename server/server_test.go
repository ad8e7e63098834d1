package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/louordway/ohhell"
	utils "github.com/louordway/ohhell/internal"
	"github.com/louordway/ohhell/protocol"
)

func testConfig() Config {
	return Config{
		Addr:        ":0",
		FrontendURL: "http://localhost:3000",
		TableSize:   4,
	}
}

func newTestServer(store ohhell.GameStore) *GameServer {
	return NewServer(store, testConfig())
}

// createGame drives the new-game endpoint and returns its payload
func createGame(t *testing.T, srv *GameServer, name string) PendingGameRes {
	t.Helper()

	body := bytes.NewBuffer([]byte(fmt.Sprintf(`{"name":"%s"}`, name)))
	request, _ := http.NewRequest(http.MethodPost, "/new", body)
	response := httptest.NewRecorder()

	srv.ServeHTTP(response, request)
	utils.AssertEqual(t, response.Code, http.StatusCreated)

	var payload PendingGameRes
	utils.AssertNoError(t, json.NewDecoder(response.Body).Decode(&payload))
	return payload
}

func TestHandleNewGame(t *testing.T) {
	t.Run("creates a joinable game and seats its creator as admin", func(t *testing.T) {
		store := ohhell.NewInMemoryGameStore()
		srv := newTestServer(store)

		payload := createGame(t, srv, "Harry")

		utils.AssertEqual(t, len(payload.GameID), 6)
		utils.AssertNotEmptyString(t, payload.PlayerID)
		utils.AssertEqual(t, payload.Name, "Harry")
		utils.AssertEqual(t, payload.Admin, true)

		utils.AssertNotNil(t, store.FindWaitingGame(payload.GameID))
		utils.AssertNotNil(t, store.FindPendingPlayer(payload.GameID, payload.PlayerID))
	})

	t.Run("only accepts POST", func(t *testing.T) {
		srv := newTestServer(ohhell.NewInMemoryGameStore())

		request, _ := http.NewRequest(http.MethodGet, "/new", nil)
		response := httptest.NewRecorder()

		srv.ServeHTTP(response, request)
		utils.AssertEqual(t, response.Code, http.StatusNotFound)
	})

	t.Run("rejects a missing body", func(t *testing.T) {
		srv := newTestServer(ohhell.NewInMemoryGameStore())

		request, _ := http.NewRequest(http.MethodPost, "/new", nil)
		response := httptest.NewRecorder()

		srv.ServeHTTP(response, request)
		utils.AssertEqual(t, response.Code, http.StatusBadRequest)
		utils.AssertEqual(t, response.Body.String(), "Missing body")
	})

	t.Run("rejects a missing player name", func(t *testing.T) {
		srv := newTestServer(ohhell.NewInMemoryGameStore())

		request, _ := http.NewRequest(http.MethodPost, "/new", bytes.NewBuffer([]byte(`{}`)))
		response := httptest.NewRecorder()

		srv.ServeHTTP(response, request)
		utils.AssertEqual(t, response.Code, http.StatusBadRequest)
		utils.AssertEqual(t, response.Body.String(), "Missing player name")
	})
}

func TestHandleJoinGame(t *testing.T) {
	t.Run("adds a pending player to a joinable game", func(t *testing.T) {
		store := ohhell.NewInMemoryGameStore()
		srv := newTestServer(store)
		created := createGame(t, srv, "Harry")

		body := bytes.NewBuffer([]byte(fmt.Sprintf(`{"game_id":"%s","name":"Sally"}`, created.GameID)))
		request, _ := http.NewRequest(http.MethodPost, "/join", body)
		response := httptest.NewRecorder()

		srv.ServeHTTP(response, request)
		utils.AssertEqual(t, response.Code, http.StatusOK)

		var payload PendingGameRes
		utils.AssertNoError(t, json.NewDecoder(response.Body).Decode(&payload))

		utils.AssertEqual(t, payload.GameID, created.GameID)
		utils.AssertEqual(t, payload.Admin, false)
		utils.AssertTrue(t, payload.PlayerID != created.PlayerID)
		utils.AssertNotNil(t, store.FindPendingPlayer(created.GameID, payload.PlayerID))
	})

	t.Run("rejects an unknown game id", func(t *testing.T) {
		srv := newTestServer(ohhell.NewInMemoryGameStore())

		body := bytes.NewBuffer([]byte(`{"game_id":"NOSUCH","name":"Sally"}`))
		request, _ := http.NewRequest(http.MethodPost, "/join", body)
		response := httptest.NewRecorder()

		srv.ServeHTTP(response, request)
		utils.AssertEqual(t, response.Code, http.StatusNotFound)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		srv := newTestServer(ohhell.NewInMemoryGameStore())

		for name, body := range map[string]string{
			"game id":     `{"name":"Sally"}`,
			"player name": `{"game_id":"ABCDEF"}`,
		} {
			t.Run(name, func(t *testing.T) {
				request, _ := http.NewRequest(http.MethodPost, "/join", bytes.NewBuffer([]byte(body)))
				response := httptest.NewRecorder()

				srv.ServeHTTP(response, request)
				utils.AssertEqual(t, response.Code, http.StatusBadRequest)
			})
		}
	})

	t.Run("a started game is not joinable", func(t *testing.T) {
		store := ohhell.NewInMemoryGameStore()
		srv := newTestServer(store)
		created := createGame(t, srv, "Harry")

		engine := store.FindGame(created.GameID)
		utils.AssertNoError(t, engine.AddPlayer(ohhell.NewTestPlayer(created.PlayerID, "Harry")))
		engine.Receive(protocol.InboundMessage{PlayerID: created.PlayerID, Command: protocol.Start})

		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) && engine.PlayState() == ohhell.Idle {
			time.Sleep(5 * time.Millisecond)
		}
		utils.AssertEqual(t, engine.PlayState(), ohhell.InProgress)

		body := bytes.NewBuffer([]byte(fmt.Sprintf(`{"game_id":"%s","name":"Sally"}`, created.GameID)))
		request, _ := http.NewRequest(http.MethodPost, "/join", body)
		response := httptest.NewRecorder()

		srv.ServeHTTP(response, request)
		utils.AssertEqual(t, response.Code, http.StatusNotFound)
	})
}

func TestHandleListGames(t *testing.T) {
	t.Run("lists games still accepting joiners", func(t *testing.T) {
		store := ohhell.NewInMemoryGameStore()
		srv := newTestServer(store)
		created := createGame(t, srv, "Harry")

		request, _ := http.NewRequest(http.MethodGet, "/games", nil)
		response := httptest.NewRecorder()

		srv.ServeHTTP(response, request)
		utils.AssertEqual(t, response.Code, http.StatusOK)

		var listings []ohhell.GameListing
		utils.AssertNoError(t, json.NewDecoder(response.Body).Decode(&listings))

		utils.AssertEqual(t, len(listings), 1)
		utils.AssertEqual(t, listings[0].GameID, created.GameID)
		// the creator holds a join invite but has not connected yet
		utils.AssertEqual(t, listings[0].Occupants, 0)
	})

	t.Run("an empty lobby is an empty list", func(t *testing.T) {
		srv := newTestServer(ohhell.NewInMemoryGameStore())

		request, _ := http.NewRequest(http.MethodGet, "/games", nil)
		response := httptest.NewRecorder()

		srv.ServeHTTP(response, request)
		utils.AssertEqual(t, strings.TrimSpace(response.Body.String()), "[]")
	})

	t.Run("only accepts GET", func(t *testing.T) {
		srv := newTestServer(ohhell.NewInMemoryGameStore())

		request, _ := http.NewRequest(http.MethodPost, "/games", nil)
		response := httptest.NewRecorder()

		srv.ServeHTTP(response, request)
		utils.AssertEqual(t, response.Code, http.StatusNotFound)
	})
}

func TestHandleFindGame(t *testing.T) {
	t.Run("reports the game's status", func(t *testing.T) {
		store := ohhell.NewInMemoryGameStore()
		srv := newTestServer(store)
		created := createGame(t, srv, "Harry")

		request, _ := http.NewRequest(http.MethodGet, "/game/"+created.GameID, nil)
		response := httptest.NewRecorder()

		srv.ServeHTTP(response, request)
		utils.AssertEqual(t, response.Code, http.StatusOK)

		var payload GetGameRes
		utils.AssertNoError(t, json.NewDecoder(response.Body).Decode(&payload))
		utils.AssertEqual(t, payload.GameID, created.GameID)
		utils.AssertEqual(t, payload.Status, "idle")
	})

	t.Run("an unknown id is not found", func(t *testing.T) {
		srv := newTestServer(ohhell.NewInMemoryGameStore())

		request, _ := http.NewRequest(http.MethodGet, "/game/NOSUCH", nil)
		response := httptest.NewRecorder()

		srv.ServeHTTP(response, request)
		utils.AssertEqual(t, response.Code, http.StatusNotFound)
	})
}

func TestHandleWS(t *testing.T) {
	t.Run("rejects a connection without its query params", func(t *testing.T) {
		srv := newTestServer(ohhell.NewInMemoryGameStore())

		for name, target := range map[string]string{
			"missing game id":   "/ws?player_id=p1",
			"missing player id": "/ws?game_id=ABCDEF",
			"unknown game":      "/ws?game_id=NOSUCH&player_id=p1",
		} {
			t.Run(name, func(t *testing.T) {
				request, _ := http.NewRequest(http.MethodGet, target, nil)
				response := httptest.NewRecorder()

				srv.ServeHTTP(response, request)
				utils.AssertEqual(t, response.Code, http.StatusBadRequest)
			})
		}
	})

	t.Run("attaches a pending player to its game", func(t *testing.T) {
		store := ohhell.NewInMemoryGameStore()
		srv := newTestServer(store)
		created := createGame(t, srv, "Harry")

		ts := httptest.NewServer(srv)
		defer ts.Close()

		url := "ws" + strings.TrimPrefix(ts.URL, "http") +
			fmt.Sprintf("/ws?game_id=%s&player_id=%s", created.GameID, created.PlayerID)

		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		utils.AssertNoError(t, err)
		defer conn.Close()

		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		utils.AssertNoError(t, err)

		var msg protocol.OutboundMessage
		utils.AssertNoError(t, json.Unmarshal(data, &msg))
		utils.AssertEqual(t, msg.Command, protocol.StateChanged)
		utils.AssertEqual(t, msg.PlayerID, created.PlayerID)
		utils.AssertNotNil(t, msg.View)
		utils.AssertEqual(t, msg.View.Phase, "Waiting")

		engine := store.FindGame(created.GameID)
		utils.AssertEqual(t, engine.Game().HumanSeatCount(), 1)

		// the lobby now counts the connected creator
		listings := store.WaitingGames()
		utils.AssertEqual(t, len(listings), 1)
		utils.AssertEqual(t, listings[0].Occupants, 1)
	})
}
