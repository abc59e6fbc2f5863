// Package ws serves a live preview of the badge over websockets.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/coreman2200/dotbadge/internal/diagnostics"
	"github.com/coreman2200/dotbadge/internal/model"
)

// Control receives requests from preview clients. Callbacks run on the
// websocket's goroutine.
type Control struct {
	Text func(s string)
	Mode func(m model.Mode)
	Test func(kind string)
}

type State struct {
	mu    sync.RWMutex
	frame model.Frame
	level float64
	mode  model.Mode

	frameID   uint64
	startTime time.Time
	every     time.Duration
	lastSent  time.Time

	wmu         sync.Mutex // serialises writes to any conn
	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool

	control Control
	log     zerolog.Logger
}

// NewState returns a preview that broadcasts at most once per every.
func NewState(every time.Duration, log zerolog.Logger) *State {
	return &State{
		every:       every,
		startTime:   time.Now(),
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
		log:         log,
	}
}

func (s *State) SetControl(c Control) {
	s.mu.Lock()
	s.control = c
	s.mu.Unlock()
}

func (s *State) SetMode(m model.Mode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
}

// Draw records the frame and broadcasts it unless the last broadcast was
// too recent.
func (s *State) Draw(f model.Frame, level float64) error {
	s.mu.Lock()
	s.frame = f
	s.level = level
	s.frameID++
	now := time.Now()
	if s.every > 0 && !s.lastSent.IsZero() && now.Sub(s.lastSent) < s.every {
		s.mu.Unlock()
		return nil
	}
	s.lastSent = now
	msg := s.frameMsg(now)
	s.mu.Unlock()

	s.broadcast(false, msg)
	return nil
}

// Close disconnects every client.
func (s *State) Close() error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.Close()
	}
	for c := range s.diagClients {
		c.Close()
	}
	s.clients = map[*websocket.Conn]bool{}
	s.diagClients = map[*websocket.Conn]bool{}
	return nil
}

// Push sends a diagnostic to /diag clients.
func (s *State) Push(d diagnostics.Diagnostic) {
	b, _ := json.Marshal(d)
	s.broadcast(true, b)
}

// Mux routes the preview endpoints.
func (s *State) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleFramesWS)
	mux.HandleFunc("/diag", s.HandleDiagWS)
	mux.HandleFunc("/control", s.HandleControlWS)
	mux.HandleFunc("/health", s.HandleHealth)
	return mux
}

func (s *State) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, func() map[*websocket.Conn]bool { return s.clients })
}

func (s *State) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, func() map[*websocket.Conn]bool { return s.diagClients })
}

func (s *State) serve(w http.ResponseWriter, r *http.Request, set func() map[*websocket.Conn]bool) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	set()[conn] = true
	s.mu.Unlock()
	s.sendTopology(conn)

	go func() {
		defer func() {
			s.mu.Lock()
			delete(set(), conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

type controlMsg struct {
	Text    *string `json:"text"`
	Mode    string  `json:"mode"`
	RunTest string  `json:"runTest"`
}

func (s *State) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg controlMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			s.log.Debug().Err(err).Msg("bad control message")
			continue
		}
		s.applyControl(msg)
		s.sendTopology(conn)
	}
}

func (s *State) applyControl(msg controlMsg) {
	s.mu.RLock()
	c := s.control
	s.mu.RUnlock()

	if msg.Text != nil && c.Text != nil {
		c.Text(*msg.Text)
	}
	if msg.Mode != "" {
		m, err := model.ParseMode(msg.Mode)
		if err != nil {
			s.Push(diagnostics.Diagnostic{
				Severity: diagnostics.Warn, Code: diagnostics.ControlBadMode, Summary: "Unknown mode",
				Evidence: map[string]any{"mode": msg.Mode},
			})
		} else if c.Mode != nil {
			c.Mode(m)
		}
	}
	if msg.RunTest != "" && c.Test != nil {
		c.Test(msg.RunTest)
	}
}

func (s *State) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp := map[string]any{
		"frame_id": s.frameID,
		"uptime_s": time.Since(s.startTime).Seconds(),
		"rows":     model.Rows,
		"cols":     model.Cols,
		"level":    s.level,
		"mode":     s.mode.String(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Frame is the message broadcast to /ws clients.
type Frame struct {
	T       int64       `json:"t"`
	FrameID uint64      `json:"frame_id"`
	Rows    model.Frame `json:"rows"`
	Sketch  []string    `json:"sketch"`
	Level   float64     `json:"level"`
	Mode    string      `json:"mode"`
}

// Topology is sent to each client on connect.
type Topology struct {
	Rows int    `json:"rows"`
	Cols int    `json:"cols"`
	Mode string `json:"mode"`
}

// frameMsg must be called with s.mu held.
func (s *State) frameMsg(now time.Time) []byte {
	b, _ := json.Marshal(Frame{
		T:       now.UnixNano(),
		FrameID: s.frameID,
		Rows:    s.frame,
		Sketch:  s.frame.Sketch(),
		Level:   s.level,
		Mode:    s.mode.String(),
	})
	return b
}

func (s *State) sendTopology(conn *websocket.Conn) {
	s.mu.RLock()
	b, _ := json.Marshal(Topology{Rows: model.Rows, Cols: model.Cols, Mode: s.mode.String()})
	s.mu.RUnlock()
	s.wmu.Lock()
	defer s.wmu.Unlock()
	_ = conn.WriteMessage(websocket.TextMessage, b)
}

func (s *State) broadcast(diag bool, b []byte) {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	s.mu.RLock()
	set := s.clients
	if diag {
		set = s.diagClients
	}
	conns := make([]*websocket.Conn, 0, len(set))
	for c := range set {
		conns = append(conns, c)
	}
	s.mu.RUnlock()
	for _, c := range conns {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			s.log.Debug().Err(err).Msg("write frame")
		}
	}
}
