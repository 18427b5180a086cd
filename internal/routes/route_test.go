package routes_test

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pastoral-bknd/internal/config"
	"pastoral-bknd/internal/geoindex"
	"pastoral-bknd/internal/logger"
	"pastoral-bknd/internal/routes"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Environment:     "production",
		HTTPTimeout:     time.Second,
		DebounceWindow:  time.Hour, // debounce never fires on its own in tests
		BoundsPrecision: 4,
		AllowedOrigins:  []string{"*"},
	}
	ix := geoindex.New()
	ix.Load(geoindex.SeedParishes())
	return routes.NewRouter(ix, cfg, logger.New(cfg))
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	out := map[string]any{}
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestSessionFlow(t *testing.T) {
	h := newTestRouter(t)

	// create
	w, body := doJSON(t, h, http.MethodPost, "/api/v1/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	viewport, _ := body["viewport"].(map[string]any)
	require.NotNil(t, viewport["target"], "a fresh session already has a re-center command")

	// country filter, with the province repaired to the sentinel
	w, body = doJSON(t, h, http.MethodPut, "/api/v1/sessions/"+id+"/filters",
		`{"country":"Chile"}`)
	require.Equal(t, http.StatusOK, w.Code)
	filters := body["filters"].(map[string]any)
	assert.Equal(t, "Chile", filters["country"])
	assert.Equal(t, "all", filters["province"])

	// surface ready with a box around Santiago: the initial fetch happens
	// inline, so markers are available on the next read
	w, _ = doJSON(t, h, http.MethodPost, "/api/v1/sessions/"+id+"/viewport/ready",
		`{"bounds":{"minLat":-34,"minLon":-71,"maxLat":-33,"maxLon":-70}}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, body = doJSON(t, h, http.MethodGet, "/api/v1/sessions/"+id+"/markers", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Greater(t, body["count"].(float64), float64(0))

	// the viewport state now remembers the fetched box
	w, body = doJSON(t, h, http.MethodGet, "/api/v1/sessions/"+id+"/viewport", "")
	require.Equal(t, http.StatusOK, w.Code)
	state := body["state"].(map[string]any)
	assert.NotNil(t, state["lastFetchedBounds"])

	// selecting a marker answers with the resolved detail record
	w, body = doJSON(t, h, http.MethodPost, "/api/v1/sessions/"+id+"/selection",
		`{"marker":{"id":"cor-001"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	parish := body["parish"].(map[string]any)
	assert.Equal(t, "Parroquia San Francisco", parish["name"])

	// deletion ends the session for good
	w, _ = doJSON(t, h, http.MethodDelete, "/api/v1/sessions/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, h, http.MethodGet, "/api/v1/sessions/"+id+"/markers", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionEndpoints_UnknownSession(t *testing.T) {
	h := newTestRouter(t)

	w, _ := doJSON(t, h, http.MethodPut, "/api/v1/sessions/nope/filters", `{}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestParishEndpoints(t *testing.T) {
	h := newTestRouter(t)

	w, body := doJSON(t, h, http.MethodGet, "/api/v1/parishes?q=san+jos%C3%A9", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["count"])

	w, body = doJSON(t, h, http.MethodGet, "/api/v1/parishes/ba-001", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Parroquia San José", body["name"])

	w, _ = doJSON(t, h, http.MethodGet, "/api/v1/parishes/unknown-id", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w, body = doJSON(t, h, http.MethodGet, "/api/v1/parishes/filter?country=Uruguay", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["count"])
}

func TestMetaEndpoints(t *testing.T) {
	h := newTestRouter(t)

	w, body := doJSON(t, h, http.MethodGet, "/api/v1/meta/services", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body["services"], "misa")

	w, body = doJSON(t, h, http.MethodGet, "/api/v1/meta/countries", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body["countries"], "Argentina")

	w, _ = doJSON(t, h, http.MethodGet, "/api/v1/meta/provinces", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, body = doJSON(t, h, http.MethodGet, "/api/v1/meta/provinces?country=Argentina", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body["provinces"], "Córdoba")
}

func TestAppointmentEndpoint(t *testing.T) {
	h := newTestRouter(t)

	w, body := doJSON(t, h, http.MethodPost, "/api/v1/appointments",
		`{"name":"Ana","email":"ana@example.com","parishId":"ba-001","service":"bautismo","date":"2026-09-05","time":"10:00"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["id"])

	w, body = doJSON(t, h, http.MethodPost, "/api/v1/appointments",
		`{"name":"Ana","email":"not-an-email","parishId":"ba-001","service":"bautismo","date":"2026-09-05","time":"10:00"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
}

// TestChat_ApologyWhenRelayUnconfigured: chat is the one surface where a
// failure is visible; the stream still terminates cleanly with done.
func TestChat_ApologyWhenRelayUnconfigured(t *testing.T) {
	h := newTestRouter(t)

	_, body := doJSON(t, h, http.MethodPost, "/api/v1/sessions", "")
	id := body["id"].(string)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+id+"/chat",
		strings.NewReader(`{"message":"¿dónde hay misa?"}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/x-ndjson", w.Header().Get("Content-Type"))

	var events []map[string]any
	scanner := bufio.NewScanner(w.Body)
	for scanner.Scan() {
		ev := map[string]any{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
		events = append(events, ev)
	}
	require.Len(t, events, 2)
	assert.Equal(t, true, events[0]["error"])
	assert.Contains(t, events[0]["delta"], "Lo siento")
	assert.Equal(t, true, events[1]["done"])

	// the apology lands in the transcript like any other assistant content
	w2, body := doJSON(t, h, http.MethodGet, "/api/v1/sessions/"+id+"/chat", "")
	require.Equal(t, http.StatusOK, w2.Code)
	messages := body["messages"].([]any)
	require.Len(t, messages, 2)
	last := messages[1].(map[string]any)
	assert.Contains(t, last["content"], "Lo siento")
}
