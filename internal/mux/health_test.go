package mux

import (
	"net/http/httptest"
	"testing"

	"github.com/bmizerany/assert"
)

func TestHealthHandler(t *testing.T) {
	m, _ := newTestMux("")
	m.version = "v1.2.3"
	ts := httptest.NewServer(m)
	defer ts.Close()

	var expects healthResponse
	assertGet(t, ts, "/health", &expects, 200)
	assert.Equal(t, "OK", expects.Status)
	assert.Equal(t, "v1.2.3", expects.Version)
}
