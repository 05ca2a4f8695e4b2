package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdewit/bettrack/internal/service"
	"github.com/jdewit/bettrack/internal/stats"
)

func TestStrategyAnonymous(t *testing.T) {
	h := NewStrategyHandler(&fakeStrategyService{}, testLogger())

	w := httptest.NewRecorder()
	h.Get(w, httptest.NewRequest(http.MethodGet, "/api/strategy", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp strategyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Title)
	assert.NotEmpty(t, resp.Sections)
	assert.Nil(t, resp.Stats)
}

func TestStrategySignedIn(t *testing.T) {
	strategy := &fakeStrategyService{view: service.Strategy{
		Websites: []stats.WebsiteStats{{Website: "bwin"}},
	}}
	h := NewStrategyHandler(strategy, testLogger())

	w := httptest.NewRecorder()
	h.Get(w, authedRequest(http.MethodGet, "/api/strategy", ""))

	require.Equal(t, http.StatusOK, w.Code)
	var resp strategyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Stats)
	require.Len(t, resp.Stats.Websites, 1)
	assert.Equal(t, "bwin", resp.Stats.Websites[0].Website)
}

func TestStrategyStatsFailureStillServesArticle(t *testing.T) {
	strategy := &fakeStrategyService{err: errors.New("cache down")}
	h := NewStrategyHandler(strategy, testLogger())

	w := httptest.NewRecorder()
	h.Get(w, authedRequest(http.MethodGet, "/api/strategy", ""))

	require.Equal(t, http.StatusOK, w.Code)
	var resp strategyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Stats)
	assert.NotEmpty(t, resp.Sections)
}
