// Package ws streams bar frames and diagnostics to websocket clients
// and feeds control messages back to the animation loop.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/example/barmeter/internal/diag"
)

// Bar is the read side of the surface the monitor snapshots.
type Bar interface {
	Count() int
	PixelState(seg int) bool
}

// Hooks connect control messages to the loop that owns the engine. A
// nil hook drops its message.
type Hooks struct {
	Pause       func(on bool)
	Loop        func(on bool)
	ReverseDir  func()
	InvertLogic func()
	Start       func(name string) bool
	RunCheck    func(name string) bool
	Brightness  func(level int)
}

type State struct {
	mu sync.RWMutex

	driver   string
	segments int
	fps      int
	anims    []string
	hooks    Hooks

	frameID   uint64
	startTime time.Time

	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool
}

func NewState(driver string, segments, fps int, anims []string, hooks Hooks) *State {
	return &State{
		driver:      driver,
		segments:    segments,
		fps:         fps,
		anims:       anims,
		hooks:       hooks,
		startTime:   time.Now(),
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
	}
}

// Routes registers the monitor endpoints on mux.
func (s *State) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/frames", s.HandleFramesWS)
	mux.HandleFunc("/ws/diag", s.HandleDiagWS)
	mux.HandleFunc("/ws/control", s.HandleControlWS)
	mux.HandleFunc("/health", s.HandleHealth)
}

func (s *State) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()
	s.sendTopology(conn)

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
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

func (s *State) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.diagClients[conn] = true
	s.mu.Unlock()
	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.diagClients, conn)
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
		var msg map[string]any
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		s.applyControl(msg)
		s.sendTopology(conn)
	}
}

func (s *State) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp := map[string]any{
		"frame_id": s.frameID,
		"uptime_s": time.Since(s.startTime).Seconds(),
		"segments": s.segments,
		"fps":      s.fps,
		"driver":   s.driver,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *State) applyControl(msg map[string]any) {
	if v, ok := msg["pause"].(bool); ok && s.hooks.Pause != nil {
		s.hooks.Pause(v)
	}
	if v, ok := msg["loop"].(bool); ok && s.hooks.Loop != nil {
		s.hooks.Loop(v)
	}
	if v, ok := msg["reverseDir"].(bool); ok && v && s.hooks.ReverseDir != nil {
		s.hooks.ReverseDir()
	}
	if v, ok := msg["invertLogic"].(bool); ok && v && s.hooks.InvertLogic != nil {
		s.hooks.InvertLogic()
	}
	if v, ok := msg["brightness"].(float64); ok && s.hooks.Brightness != nil {
		s.hooks.Brightness(int(v))
	}
	if v, ok := msg["start"].(string); ok && s.hooks.Start != nil {
		if !s.hooks.Start(v) {
			d := diag.New(diag.Warn, "ANIM.UNKNOWN", "Unknown animation name")
			d.Evidence = map[string]any{"name": v}
			s.PushDiag(d)
		}
	}
	if v, ok := msg["runCheck"].(string); ok && s.hooks.RunCheck != nil {
		if s.hooks.RunCheck(v) {
			d := diag.New(diag.Info, "TEST.RUNNING", "Running check")
			d.Detail = v
			s.PushDiag(d)
		} else {
			d := diag.New(diag.Warn, "TEST.UNKNOWN", "Unknown check name")
			d.Evidence = map[string]any{"name": v}
			s.PushDiag(d)
		}
	}
}

func (s *State) sendTopology(conn *websocket.Conn) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	top := map[string]any{
		"driver":     s.driver,
		"segments":   s.segments,
		"fps":        s.fps,
		"animations": s.anims,
	}
	b, _ := json.Marshal(top)
	_ = conn.WriteMessage(websocket.TextMessage, b)
}

// PublishFrame snapshots the bar and broadcasts it to frame clients.
func (s *State) PublishFrame(bar Bar) {
	n := bar.Count()
	segs := make([]byte, n)
	for i := 0; i < n; i++ {
		if bar.PixelState(i) {
			segs[i] = 1
		}
	}

	s.mu.Lock()
	s.frameID++
	type frame struct {
		T       int64  `json:"t"`
		FrameID uint64 `json:"frame_id"`
		Segs    []byte `json:"segs"`
	}
	b, _ := json.Marshal(frame{T: time.Now().UnixNano(), FrameID: s.frameID, Segs: segs})
	for c := range s.clients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("write frame")
		}
	}
	s.mu.Unlock()
}

// PushDiag broadcasts one diagnostic to diag clients.
func (s *State) PushDiag(d diag.Diagnostic) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, _ := json.Marshal(d)
	for c := range s.diagClients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		_ = c.WriteMessage(websocket.TextMessage, b)
	}
}
