package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/fading-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
)

var errRedisDown = errors.New("redis down")

type stubSessions struct {
	game *entity.Game
	err  error
}

func (that *stubSessions) Snapshot(_ context.Context, id string) (*entity.Game, error) {
	if that.err != nil {
		return nil, that.err
	}

	if that.game == nil || that.game.ID != id {
		return nil, apperror.ErrSessionNotFound
	}

	return that.game, nil
}

type panickingSessions struct{}

func (panickingSessions) Snapshot(context.Context, string) (*entity.Game, error) {
	panic("boom")
}

func newTestServer(t *testing.T, sessions sessionReader) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	static := fstest.MapFS{
		"index.html": &fstest.MapFile{Data: []byte("<html>fading</html>")},
	}

	server := httptest.NewServer(NewRouter(logger, sessions, static))
	t.Cleanup(server.Close)

	return server
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()

	resp, err := http.Get(url) //nolint:noctx // test helper
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, body
}

func TestRouter_Ping(t *testing.T) {
	// Given: A running router
	server := newTestServer(t, &stubSessions{})

	// When: Calling /ping
	resp, body := get(t, server.URL+"/ping")

	// Then: It answers pong and tags the response with a request id
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))
}

func TestRouter_RequestIDIsKept(t *testing.T) {
	// Given: A running router and a client supplied request id
	server := newTestServer(t, &stubSessions{})

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL+"/ping", nil)
	require.NoError(t, err)
	req.Header.Set(requestIDHeader, "abc123")

	// When: Sending the request
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Then: The same id is echoed back
	assert.Equal(t, "abc123", resp.Header.Get(requestIDHeader))
}

func TestRouter_Modes(t *testing.T) {
	// Given: A running router
	server := newTestServer(t, &stubSessions{})

	// When: Listing the modes
	resp, body := get(t, server.URL+"/api/modes")

	// Then: All three modes are listed in selector order with their timings
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var modes []modeResponse
	require.NoError(t, json.Unmarshal(body, &modes))
	require.Len(t, modes, 3)

	assert.Equal(t, modeResponse{Mode: entity.ModeNormal, FadeDelayMS: 5000, RemoveDelayMS: 7000, MaxMovesWithoutWin: 20}, modes[0])
	assert.Equal(t, modeResponse{Mode: entity.ModeRapid, FadeDelayMS: 3000, RemoveDelayMS: 4500, MaxMovesWithoutWin: 15}, modes[1])
	assert.Equal(t, modeResponse{Mode: entity.ModeBlitz, FadeDelayMS: 2000, RemoveDelayMS: 3000, MaxMovesWithoutWin: 12}, modes[2])
}

func TestRouter_Session(t *testing.T) {
	t.Run("Returns the session snapshot", func(t *testing.T) {
		// Given: A known session
		game := &entity.Game{ID: "s1", Status: entity.StatusOngoing, Mode: entity.ModeRapid, Turn: entity.PlayerO}
		game.Board[4] = entity.PlayerX
		server := newTestServer(t, &stubSessions{game: game})

		// When: Requesting it
		resp, body := get(t, server.URL+"/api/sessions/s1")

		// Then: The snapshot is returned as JSON
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got entity.Game
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, *game, got)
	})

	t.Run("Returns 404 for unknown sessions", func(t *testing.T) {
		// Given: No sessions
		server := newTestServer(t, &stubSessions{})

		// When: Requesting an unknown id
		resp, body := get(t, server.URL+"/api/sessions/missing")

		// Then: Not found is reported
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.JSONEq(t, `{"error":"session not found"}`, string(body))
	})

	t.Run("Returns 500 when the lookup fails", func(t *testing.T) {
		// Given: A broken session source
		server := newTestServer(t, &stubSessions{err: errRedisDown})

		// When: Requesting a session
		resp, _ := get(t, server.URL+"/api/sessions/s1")

		// Then: An internal error is reported
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	t.Run("Recovers from handler panics", func(t *testing.T) {
		// Given: A session source that panics
		server := newTestServer(t, panickingSessions{})

		// When: Requesting a session
		resp, _ := get(t, server.URL+"/api/sessions/s1")

		// Then: The panic becomes a 500
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestRouter_Static(t *testing.T) {
	// Given: A router with an embedded client
	server := newTestServer(t, &stubSessions{})

	// When: Requesting the root
	resp, body := get(t, server.URL+"/")

	// Then: The client page is served
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "fading")
}
