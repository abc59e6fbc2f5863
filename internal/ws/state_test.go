package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/dotbadge/internal/diagnostics"
	"github.com/coreman2200/dotbadge/internal/model"
)

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
	return c
}

func TestFramesBroadcast(t *testing.T) {
	s := NewState(0, zerolog.Nop())
	s.SetMode(model.Preset)
	srv := httptest.NewServer(s.Mux())
	defer srv.Close()

	c := dial(t, srv, "/ws")
	var top Topology
	require.NoError(t, c.ReadJSON(&top))
	assert.Equal(t, Topology{Rows: 15, Cols: 5, Mode: "preset"}, top)

	var f model.Frame
	f.Set(0, 0, true)
	f.Set(14, 4, true)
	require.NoError(t, s.Draw(f, 0.5))

	var got Frame
	require.NoError(t, c.ReadJSON(&got))
	assert.Equal(t, uint64(1), got.FrameID)
	assert.Equal(t, f, got.Rows)
	assert.Equal(t, 0.5, got.Level)
	assert.Equal(t, "preset", got.Mode)
	assert.Equal(t, f.Sketch(), got.Sketch)
}

func TestDrawThrottles(t *testing.T) {
	s := NewState(time.Hour, zerolog.Nop())
	srv := httptest.NewServer(s.Mux())
	defer srv.Close()

	c := dial(t, srv, "/ws")
	var top Topology
	require.NoError(t, c.ReadJSON(&top))

	require.NoError(t, s.Draw(model.Frame{}, 1))
	require.NoError(t, s.Draw(model.Frame{1}, 1))
	require.NoError(t, s.Draw(model.Frame{2}, 1))

	var got Frame
	require.NoError(t, c.ReadJSON(&got))
	assert.Equal(t, uint64(1), got.FrameID)

	require.NoError(t, c.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	assert.Error(t, c.ReadJSON(&got), "throttled frames are not sent")
}

func TestHealth(t *testing.T) {
	s := NewState(0, zerolog.Nop())
	require.NoError(t, s.Draw(model.Frame{}, 0.25))
	require.NoError(t, s.Draw(model.Frame{}, 0.75))
	s.SetMode(model.Easter)

	rec := httptest.NewRecorder()
	s.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	var h map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	assert.Equal(t, float64(2), h["frame_id"])
	assert.Equal(t, 0.75, h["level"])
	assert.Equal(t, "easter", h["mode"])
	assert.Equal(t, float64(15), h["rows"])
}

func TestControl(t *testing.T) {
	s := NewState(0, zerolog.Nop())
	texts := make(chan string, 1)
	modes := make(chan model.Mode, 1)
	tests := make(chan string, 1)
	s.SetControl(Control{
		Text: func(v string) { texts <- v },
		Mode: func(m model.Mode) { modes <- m },
		Test: func(k string) { tests <- k },
	})
	srv := httptest.NewServer(s.Mux())
	defer srv.Close()

	diag := dial(t, srv, "/diag")
	var top Topology
	require.NoError(t, diag.ReadJSON(&top))
	c := dial(t, srv, "/control")

	require.NoError(t, c.WriteJSON(map[string]any{"text": "hi there", "mode": "easter", "runTest": "all_on"}))
	require.NoError(t, c.ReadJSON(&top))
	assert.Equal(t, "hi there", <-texts)
	assert.Equal(t, model.Easter, <-modes)
	assert.Equal(t, "all_on", <-tests)

	require.NoError(t, c.WriteJSON(map[string]any{"mode": "disco"}))
	var d diagnostics.Diagnostic
	require.NoError(t, diag.ReadJSON(&d))
	assert.Equal(t, "CONTROL.BAD_MODE", d.Code)
	assert.Len(t, modes, 0)
}

func TestClose(t *testing.T) {
	s := NewState(0, zerolog.Nop())
	srv := httptest.NewServer(s.Mux())
	defer srv.Close()

	c := dial(t, srv, "/ws")
	var top Topology
	require.NoError(t, c.ReadJSON(&top))
	require.NoError(t, s.Close())
	_, _, err := c.ReadMessage()
	assert.Error(t, err)
}
