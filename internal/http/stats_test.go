package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfstats/shelfstats/internal/entities"
)

func TestStatsController_GetStats(t *testing.T) {
	t.Run("empty library yields zeroed metrics", func(t *testing.T) {
		env, cleanup := setupTestRouter(t)
		defer cleanup()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/stats", nil)
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

		assert.Equal(t, float64(0), response["totalReadingTime"])
		assert.Empty(t, response["pagesPerBook"])
		assert.Empty(t, response["currentlyReading"])

		library := response["libraryStats"].(map[string]interface{})
		assert.Equal(t, float64(0), library["totalBooks"])
	})

	t.Run("aggregates the full overview", func(t *testing.T) {
		env, cleanup := setupTestRouter(t)
		defer cleanup()

		book := env.seedBook(t, "Dune", entities.StatusInProgress, 300)
		env.seedSession(t, book.ID,
			time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
			1, 51)
		env.seedSession(t, book.ID,
			time.Date(2025, 3, 2, 14, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 2, 15, 30, 0, 0, time.UTC),
			51, 121)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/stats", nil)
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

		assert.Equal(t, float64(150), response["totalReadingTime"])

		pages := response["pagesPerBook"].([]interface{})
		require.Len(t, pages, 1)
		entry := pages[0].(map[string]interface{})
		assert.Equal(t, "Dune", entry["title"])
		assert.Equal(t, float64(120), entry["pages_read"])

		current := response["currentlyReading"].([]interface{})
		require.Len(t, current, 1)
		reading := current[0].(map[string]interface{})
		assert.Equal(t, float64(121), reading["current_page"])
		assert.Equal(t, float64(40), reading["progress"])

		speed := response["speedMetrics"].(map[string]interface{})
		assert.Equal(t, float64(50), speed["fastestSpeed"])
		assert.Equal(t, 46.7, speed["slowestSpeed"])
		assert.Equal(t, "morning", speed["bestTimeOfDay"])
	})
}

func TestRouter_Ping(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestRouter_CORSPreflight(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("OPTIONS", "/api/books", nil)
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
