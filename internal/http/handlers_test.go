package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mauv0809/squad-scheduler/internal/availability"
	"github.com/mauv0809/squad-scheduler/internal/message"
	"github.com/mauv0809/squad-scheduler/internal/metrics"
	"github.com/mauv0809/squad-scheduler/internal/roster"
	"github.com/mauv0809/squad-scheduler/internal/scheduler"
	"github.com/mauv0809/squad-scheduler/internal/share"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSharer struct {
	err    error
	dryRun []bool
}

func (s *stubSharer) Name() string { return "stub" }

func (s *stubSharer) Share(ctx context.Context, sh share.Shared, dryRun bool) error {
	s.dryRun = append(s.dryRun, dryRun)
	return s.err
}

// setupTestServer builds a server over an in-memory roster seeded with the
// default opponents.
func setupTestServer(t *testing.T, sharer *stubSharer) *Server {
	t.Helper()

	store, err := roster.New(roster.NewMockPersister())
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)

	var sh share.Sharer
	if sharer != nil {
		sh = scheduler.NewSharer(metricsSvc, sharer)
	}
	return NewServer(scheduler.New(store, sh, metricsSvc), metricsSvc, metricsHandler)
}

func do(t *testing.T, server *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, target, &buf)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheckHandler(t *testing.T) {
	server := setupTestServer(t, nil)

	rr := do(t, server, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestOpponentHandlers(t *testing.T) {
	server := setupTestServer(t, nil)

	t.Run("list returns the seed roster", func(t *testing.T) {
		rr := do(t, server, "GET", "/opponents", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var got []roster.Opponent
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Len(t, got, 4)
	})

	t.Run("add assigns the next id", func(t *testing.T) {
		rr := do(t, server, "POST", "/opponents", map[string]string{"name": "Ana Lima", "phone": "85988887777", "club": "Fenerbahçe"})
		require.Equal(t, http.StatusCreated, rr.Code)

		var got roster.Opponent
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, 5, got.ID)
		assert.Equal(t, "Fenerbahçe", got.Club)
	})

	t.Run("add without phone is rejected", func(t *testing.T) {
		rr := do(t, server, "POST", "/opponents", map[string]string{"name": "Sem Telefone"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Len(t, server.Scheduler.Roster().List(), 5)
	})

	t.Run("update merges fields", func(t *testing.T) {
		rr := do(t, server, "PUT", "/opponents/5", map[string]string{"observation": "Só à noite"})
		require.Equal(t, http.StatusOK, rr.Code)

		got, ok := server.Scheduler.Roster().Lookup(5)
		require.True(t, ok)
		assert.Equal(t, "Ana Lima", got.Name)
		assert.Equal(t, "Só à noite", got.Observation)
	})

	t.Run("update unknown id", func(t *testing.T) {
		rr := do(t, server, "PUT", "/opponents/99", map[string]string{"name": "x"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("update with bad id", func(t *testing.T) {
		rr := do(t, server, "PUT", "/opponents/abc", map[string]string{"name": "x"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("remove requires confirmation", func(t *testing.T) {
		rr := do(t, server, "DELETE", "/opponents/5", nil)
		assert.Equal(t, http.StatusPreconditionRequired, rr.Code)
		_, ok := server.Scheduler.Roster().Lookup(5)
		assert.True(t, ok)

		rr = do(t, server, "DELETE", "/opponents/5?confirm=true", nil)
		assert.Equal(t, http.StatusNoContent, rr.Code)
		_, ok = server.Scheduler.Roster().Lookup(5)
		assert.False(t, ok)
	})
}

func TestFormHandlers(t *testing.T) {
	server := setupTestServer(t, nil)

	rr := do(t, server, "GET", "/form", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var form message.MatchData
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &form))
	assert.Equal(t, message.DefaultMatchData(), form)

	form.OpponentID = message.SelectOpponent(2)
	form.Observation = "Jogo decisivo"
	rr = do(t, server, "PUT", "/form", form)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Jogo decisivo", server.Scheduler.Form().Observation)

	form.Championship = "Copa Inexistente"
	rr = do(t, server, "PUT", "/form", form)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, server, "POST", "/form/availability", scheduler.Edit{Day: "wednesday", Slot: "slot1", Field: "start", Value: "23:30"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, availability.TimeSlot{Start: "23:30"}, server.Scheduler.Form().Availability[availability.Wednesday].Slot1)

	rr = do(t, server, "POST", "/form/availability", scheduler.Edit{Day: "wednesday", Slot: "slot1", Field: "end", Value: "23:00"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, server, "POST", "/form/reset", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, message.DefaultMatchData(), server.Scheduler.Form())
}

func TestMessageHandler(t *testing.T) {
	server := setupTestServer(t, nil)

	t.Run("unresolved opponent is unprocessable", func(t *testing.T) {
		rr := do(t, server, "POST", "/message", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

		data := message.DefaultMatchData()
		data.OpponentID = message.SelectOpponent(42)
		rr = do(t, server, "POST", "/message", data)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("posted form", func(t *testing.T) {
		data := message.DefaultMatchData()
		data.OpponentID = message.SelectOpponent(1)
		rr := do(t, server, "POST", "/message", data)
		require.Equal(t, http.StatusOK, rr.Code)

		var res scheduler.Result
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
		want, _, err := message.Generate(data, server.Scheduler.Roster())
		require.NoError(t, err)
		assert.Equal(t, want, res.Message)
		assert.True(t, strings.HasPrefix(res.Link, "https://wa.me/"))
		assert.Equal(t, 1, res.Opponent.ID)
	})

	t.Run("invalid grid is rejected", func(t *testing.T) {
		data := message.DefaultMatchData()
		data.OpponentID = message.SelectOpponent(1)
		data.Availability[availability.Monday].Slot1.End = "19:00"
		rr := do(t, server, "POST", "/message", data)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("counted in metrics", func(t *testing.T) {
		rr := do(t, server, "GET", "/metrics", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "scheduler_messages_generated_total 1")
		assert.Contains(t, rr.Body.String(), "scheduler_generation_failures_total 2")
	})
}

func TestShareHandler(t *testing.T) {
	t.Run("dry run is passed through", func(t *testing.T) {
		sharer := &stubSharer{}
		server := setupTestServer(t, sharer)
		data := message.DefaultMatchData()
		data.OpponentID = message.SelectOpponent(1)

		rr := do(t, server, "POST", "/share?dry_run=true", data)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []bool{true}, sharer.dryRun)
	})

	t.Run("failing target", func(t *testing.T) {
		sharer := &stubSharer{err: errors.New("slack down")}
		server := setupTestServer(t, sharer)
		data := message.DefaultMatchData()
		data.OpponentID = message.SelectOpponent(1)

		rr := do(t, server, "POST", "/share", data)
		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Contains(t, rr.Body.String(), "slack down")
	})

	t.Run("unresolved opponent shares nothing", func(t *testing.T) {
		sharer := &stubSharer{}
		server := setupTestServer(t, sharer)

		rr := do(t, server, "POST", "/share", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Empty(t, sharer.dryRun)
	})
}

func TestOptionsHandlers(t *testing.T) {
	server := setupTestServer(t, nil)

	var opts optionsResponse
	rr := do(t, server, "GET", "/options/time", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &opts))
	assert.Len(t, opts.Options, 48)

	rr = do(t, server, "GET", "/options/time?after=22:30", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &opts))
	assert.Equal(t, []string{"23:00", "23:30"}, opts.Options)

	rr = do(t, server, "GET", "/options/time?after=7pm", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, server, "GET", "/options/championships", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &opts))
	assert.Equal(t, message.Championships, opts.Options)
}
