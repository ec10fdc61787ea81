// Package server provides the HTTP surface for the air canvas: canvas
// state and mutations, calibration profiles, the MJPEG display stream,
// and the websocket event feed.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/renderix/aircanvas/internal/app"
	"github.com/renderix/aircanvas/internal/canvas"
	"github.com/renderix/aircanvas/internal/server/api"
	"github.com/renderix/aircanvas/internal/store"
)

// Session is the drawing session the server exposes. Implemented by
// *app.App; a test double satisfies it without a camera.
type Session interface {
	State() app.State
	Snapshot() canvas.Snapshot
	Undo()
	Redo()
	ClearCanvas()
	CycleColor()
	SetColorIndex(i int) error
	SetBrushSize(name string) error
	Click(x, y int)
	EncodeDisplay() ([]byte, error)
	ApplyProfile(p *store.Profile)
}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Session   Session
}

// Server represents the HTTP server for the air canvas application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
	events *EventsHandler
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		profileHandler := api.NewProfileHandler(s.config.Store)
		if s.config.Session != nil {
			profileHandler.OnApply = s.config.Session.ApplyProfile
		}
		s.mux.Handle("/api/profiles", profileHandler)
		s.mux.Handle("/api/profiles/", profileHandler)
	}

	if s.config.Session != nil {
		s.mux.HandleFunc("/api/canvas", s.handleCanvas)
		s.mux.HandleFunc("/api/canvas/undo", s.handleAction(Session.Undo))
		s.mux.HandleFunc("/api/canvas/redo", s.handleAction(Session.Redo))
		s.mux.HandleFunc("/api/canvas/clear", s.handleAction(Session.ClearCanvas))
		s.mux.HandleFunc("/api/canvas/color-cycle", s.handleAction(Session.CycleColor))
		s.mux.HandleFunc("/api/canvas/color", s.handleColor)
		s.mux.HandleFunc("/api/canvas/brush", s.handleBrush)
		s.mux.HandleFunc("/api/canvas/click", s.handleClick)

		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Session))
		s.events = NewEventsHandler(s.config.Session)
		s.mux.Handle("/api/events", s.events)
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}

	writeJSON(w, http.StatusOK, response)
}

// canvasResponse is the wire form of a canvas snapshot.
type canvasResponse struct {
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Strokes    []canvas.Stroke `json:"strokes"`
	Current    *canvas.Stroke  `json:"current,omitempty"`
	ColorIndex int             `json:"color_index"`
	Color      string          `json:"color"`
	Brush      string          `json:"brush"`
	RedoDepth  int             `json:"redo_depth"`
}

// handleCanvas handles GET /api/canvas and returns the full stroke state.
func (s *Server) handleCanvas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := s.config.Session.Snapshot()
	writeJSON(w, http.StatusOK, canvasResponse{
		Width:      snap.Width,
		Height:     snap.Height,
		Strokes:    snap.Committed,
		Current:    snap.Current,
		ColorIndex: snap.ColorIndex,
		Color:      snap.Color.Name,
		Brush:      snap.Brush.String(),
		RedoDepth:  snap.RedoDepth,
	})
}

// handleAction wraps a no-argument session mutation as a POST handler
// that responds with the updated session state.
func (s *Server) handleAction(op func(Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		op(s.config.Session)
		writeJSON(w, http.StatusOK, s.config.Session.State())
	}
}

// handleColor handles PUT /api/canvas/color and selects a palette entry.
func (s *Server) handleColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := s.config.Session.SetColorIndex(req.Index); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.config.Session.State())
}

// handleBrush handles PUT /api/canvas/brush and selects a brush size.
func (s *Server) handleBrush(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Size string `json:"size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := s.config.Session.SetBrushSize(req.Size); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.config.Session.State())
}

// handleClick handles POST /api/canvas/click, dispatching a pointer click
// on the display surface (toolbar swatches and buttons).
func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		X int `json:"x"`
		Y int `json:"y"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	s.config.Session.Click(req.X, req.Y)
	writeJSON(w, http.StatusOK, s.config.Session.State())
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// Close stops the websocket broadcast loop.
func (s *Server) Close() {
	if s.events != nil {
		s.events.Close()
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
