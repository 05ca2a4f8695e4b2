package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdewit/bettrack/internal/domain"
	"github.com/jdewit/bettrack/internal/service"
)

func TestExportCreate(t *testing.T) {
	exports := &fakeExportService{result: service.ExportResult{
		Path:     "exports/user-1/bets-20240301-120000.csv",
		BetCount: 12,
	}}
	h := NewExportHandler(exports, testLogger())

	w := httptest.NewRecorder()
	h.Create(w, authedRequest(http.MethodPost, "/api/export", ""))

	require.Equal(t, http.StatusCreated, w.Code)
	var result service.ExportResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "exports/user-1/bets-20240301-120000.csv", result.Path)
	assert.Equal(t, 12, result.BetCount)
}

func TestExportCreateLockHeld(t *testing.T) {
	exports := &fakeExportService{exportErr: domain.ErrLockHeld}
	h := NewExportHandler(exports, testLogger())

	w := httptest.NewRecorder()
	h.Create(w, authedRequest(http.MethodPost, "/api/export", ""))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestExportList(t *testing.T) {
	exports := &fakeExportService{infos: []domain.BlobInfo{{
		Path:         "exports/user-1/bets-20240301-120000.csv",
		Size:         512,
		ContentType:  "text/csv",
		LastModified: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}}}
	h := NewExportHandler(exports, testLogger())

	w := httptest.NewRecorder()
	h.List(w, authedRequest(http.MethodGet, "/api/exports", ""))

	require.Equal(t, http.StatusOK, w.Code)
	var resp listExportsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Exports, 1)
	assert.Equal(t, int64(512), resp.Exports[0].Size)
}

func TestExportListWithoutReader(t *testing.T) {
	h := NewExportHandler(&fakeExportService{}, testLogger())

	w := httptest.NewRecorder()
	h.List(w, authedRequest(http.MethodGet, "/api/exports", ""))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"exports":[]}`, w.Body.String())
}

func TestExportDelete(t *testing.T) {
	exports := &fakeExportService{}
	h := NewExportHandler(exports, testLogger())

	r := authedRequest(http.MethodDelete, "/api/exports/exports/user-1/bets.csv", "")
	r.SetPathValue("path", "exports/user-1/bets.csv")
	w := httptest.NewRecorder()
	h.Delete(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"exports/user-1/bets.csv"}, exports.deleted)
}

func TestExportDeleteForeignPath(t *testing.T) {
	exports := &fakeExportService{deleteErr: domain.ErrForbidden}
	h := NewExportHandler(exports, testLogger())

	r := authedRequest(http.MethodDelete, "/api/exports/exports/user-2/bets.csv", "")
	r.SetPathValue("path", "exports/user-2/bets.csv")
	w := httptest.NewRecorder()
	h.Delete(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
