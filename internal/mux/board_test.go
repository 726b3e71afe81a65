package mux

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"twocardpoker-server/pkg/leaderboard"
	"twocardpoker-server/pkg/model"
)

func Test_getBoard(t *testing.T) {
	m, env := newTestMux("")
	ts := httptest.NewServer(m)
	defer ts.Close()

	var board leaderboard.Board
	assertGet(t, ts, "/board", &board, 200)
	assert.Equal(t, uint64(0), board.Version)
	assert.Empty(t, board.Entries)

	var a, b model.Player
	assertPost(t, ts, "/player", newPlayerPayload(), &a, 201)
	assertPost(t, ts, "/player", newPlayerPayload(), &b, 201)
	assert.True(t, env.board.Flush())

	board = leaderboard.Board{}
	assertGet(t, ts, "/board", &board, 200)
	assert.Equal(t, uint64(1), board.Version)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, board.IDs())
}

func Test_getBoardWS(t *testing.T) {
	m, env := newTestMux("")
	ts := httptest.NewServer(m)
	defer ts.Close()

	var created model.Player
	assertPost(t, ts, "/player", newPlayerPayload(), &created, 201)
	assert.True(t, env.board.Flush())

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/board/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if !assert.NoError(t, err) {
		return
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	// the current board is sent on connect
	var board leaderboard.Board
	assert.NoError(t, conn.ReadJSON(&board))
	assert.Equal(t, uint64(1), board.Version)
	assert.Equal(t, []string{created.ID}, board.IDs())

	var second model.Player
	assertPost(t, ts, "/player", newPlayerPayload(), &second, 201)
	assert.True(t, env.board.Flush())

	board = leaderboard.Board{}
	assert.NoError(t, conn.ReadJSON(&board))
	assert.Equal(t, uint64(2), board.Version)
	assert.Len(t, board.Entries, 2)

	// closing the board closes the feed
	env.board.EndShift()
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway))
}
