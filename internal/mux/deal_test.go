package mux

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"twocardpoker-server/pkg/dealer"
	"twocardpoker-server/pkg/deck"
	"twocardpoker-server/pkg/model"
	"twocardpoker-server/pkg/table"
)

func Test_postDeal(t *testing.T) {
	m, _ := newTestMux("secret")
	ts := httptest.NewServer(m)
	defer ts.Close()

	var resp dealResponse
	assertPost(t, ts, "/deal", dealPayload{}, &resp, 200)
	_, err := deck.HandFromString(resp.Cards)
	assert.NoError(t, err)

	excluded := make([]int, 0, deck.Size)
	for i := 0; i < deck.Size-2; i++ {
		excluded = append(excluded, i)
	}

	resp = dealResponse{}
	assertPost(t, ts, "/deal", dealPayload{ExcludedCardIndices: excluded}, &resp, 200)
	assert.Equal(t, "AD,AS", resp.Cards)

	var obj errorResponse
	assertPost(t, ts, "/deal", dealPayload{ExcludedCardIndices: append(excluded, 51)}, &obj, 409)
	assert.Equal(t, "not enough cards left in the deck: 1 remaining", obj.Message)

	obj = errorResponse{}
	assertPost(t, ts, "/deal", dealPayload{ExcludedCardIndices: []int{-1}}, &obj, 400)
	assert.Equal(t, dealer.ErrInvalidCardIndex.Error(), obj.Message)
}

func Test_postPlayerIDDeal(t *testing.T) {
	m, _ := newTestMux("")
	ts := httptest.NewServer(m)
	defer ts.Close()

	var created model.Player
	assertPost(t, ts, "/player", newPlayerPayload(), &created, 201)

	var dealt table.Dealt
	assertPost(t, ts, "/player/"+created.ID+"/deal", "", &dealt, 200)
	assert.Equal(t, created.ID, dealt.ID)
	assert.NotEqual(t, created.Cards, dealt.Cards)

	var found model.Player
	assertGet(t, ts, "/player/"+created.ID, &found, 200)
	assert.Equal(t, dealt.Cards, found.Cards)

	var obj errorResponse
	assertPost(t, ts, "/player/missing/deal", "", &obj, 404)
}

func Test_postReshuffle(t *testing.T) {
	m, _ := newTestMux("secret")
	ts := httptest.NewServer(m)
	defer ts.Close()

	var resp reshuffleResponse
	assertPost(t, ts, "/reshuffle", "", &resp, 200, "secret")
	assert.Empty(t, resp.Players)
	assert.Empty(t, resp.Errors)

	ids := make([]string, 3)
	for i := range ids {
		var created model.Player
		assertPost(t, ts, "/player", newPlayerPayload(), &created, 201, "secret")
		ids[i] = created.ID
	}

	resp = reshuffleResponse{}
	assertPost(t, ts, "/reshuffle", "", &resp, 200, "secret")
	assert.Empty(t, resp.Errors)
	if assert.Len(t, resp.Players, 3) {
		for i, d := range resp.Players {
			assert.Equal(t, ids[i], d.ID)

			var found model.Player
			assertGet(t, ts, "/player/"+d.ID, &found, 200)
			assert.Equal(t, d.Cards, found.Cards)
		}
	}

	var obj errorResponse
	assertPost(t, ts, "/reshuffle", "", &obj, 403)
}
