package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"gocv.io/x/gocv"

	"github.com/renderix/aircanvas/internal/app"
	"github.com/renderix/aircanvas/internal/detector"
	"github.com/renderix/aircanvas/internal/gesture"
	"github.com/renderix/aircanvas/internal/server"
	"github.com/renderix/aircanvas/internal/store"
)

func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "data.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	application := app.New(app.Config{
		Store:    s,
		Headless: true,
		Smoother: gesture.SmootherConfig{Window: 1, CooldownTicks: 0},
	})

	mockDetector := detector.NewMockDetector()
	application.SetDetector(mockDetector)

	srv := server.New(server.Config{Store: s, Session: application})
	defer srv.Close()
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	var profileID string

	t.Run("CreateProfile", func(t *testing.T) {
		resp, err := client.Post(
			ts.URL+"/api/profiles",
			"application/json",
			strings.NewReader(`{"name": "e2e", "min_move_dist": 2.0}`),
		)
		if err != nil {
			t.Fatalf("create profile error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}

		var created struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
			t.Fatalf("decode profile: %v", err)
		}
		profileID = created.ID
	})

	t.Run("LoadCalibration", func(t *testing.T) {
		if err := s.Settings().Set(store.SettingActiveProfile, "e2e"); err != nil {
			t.Fatalf("set active profile: %v", err)
		}
		if err := application.LoadCalibration(); err != nil {
			t.Fatalf("LoadCalibration() error = %v", err)
		}
	})

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	// drive pushes n detection ticks through the pipeline with the
	// given pose.
	drive := func(hand detector.HandLandmarks, n int) {
		mockDetector.SetHands([]detector.HandLandmarks{hand})
		for i := 0; i < n; i++ {
			application.ProcessFrame(&frame)
		}
	}

	t.Run("DrawStroke", func(t *testing.T) {
		// LoadCalibration rebuilt the smoother from the profile, which
		// carries the default window and cooldown, so hold each pose
		// long enough for the vote and cooldown to pass.
		for i := 0; i < 16; i++ {
			hand := detector.IndexUpLandmarks()
			hand.Points[detector.IndexTip].X += 0.01 * float64(i)
			drive(hand, 1)
		}
		drive(detector.FistLandmarks(), 16)

		resp, err := client.Get(ts.URL + "/api/canvas")
		if err != nil {
			t.Fatalf("get canvas error = %v", err)
		}
		defer resp.Body.Close()

		var canvasState struct {
			Strokes []struct {
				Points []struct{ X, Y int } `json:"points"`
			} `json:"strokes"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&canvasState); err != nil {
			t.Fatalf("decode canvas: %v", err)
		}
		if len(canvasState.Strokes) != 1 {
			t.Fatalf("strokes = %d, want 1", len(canvasState.Strokes))
		}
		if len(canvasState.Strokes[0].Points) < 2 {
			t.Errorf("stroke points = %d, want at least 2", len(canvasState.Strokes[0].Points))
		}
	})

	t.Run("GestureUndo", func(t *testing.T) {
		drive(detector.ThumbsUpLandmarks(), 16)

		if got := application.State().Committed; got != 0 {
			t.Errorf("committed after thumbs-up = %d, want 0", got)
		}
	})

	t.Run("RedoOverHTTP", func(t *testing.T) {
		resp, err := client.Post(ts.URL+"/api/canvas/redo", "application/json", nil)
		if err != nil {
			t.Fatalf("redo error = %v", err)
		}
		defer resp.Body.Close()

		var state app.State
		if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
			t.Fatalf("decode state: %v", err)
		}
		if state.Committed != 1 {
			t.Errorf("committed after redo = %d, want 1", state.Committed)
		}
	})

	t.Run("SelectColorOverHTTP", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/canvas/color", bytes.NewBufferString(`{"index": 3}`))
		if err != nil {
			t.Fatalf("build request: %v", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("set color error = %v", err)
		}
		defer resp.Body.Close()

		var state app.State
		if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
			t.Fatalf("decode state: %v", err)
		}
		if state.Color != "Yellow" {
			t.Errorf("color = %q, want Yellow", state.Color)
		}
	})

	t.Run("UpdateProfileAppliesLive", func(t *testing.T) {
		req, err := http.NewRequest(
			http.MethodPut,
			ts.URL+"/api/profiles/"+profileID,
			strings.NewReader(`{"cooldown_ticks": 2, "smoothing_window": 1}`),
		)
		if err != nil {
			t.Fatalf("build request: %v", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("update profile error = %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		// The shorter smoothing now lets a clear land within a few ticks.
		drive(detector.OpenPalmLandmarks(), 4)
		if got := application.State().Committed; got != 0 {
			t.Errorf("committed after open palm = %d, want 0", got)
		}
	})

	t.Run("ClearOverHTTP", func(t *testing.T) {
		resp, err := client.Post(ts.URL+"/api/canvas/clear", "application/json", nil)
		if err != nil {
			t.Fatalf("clear error = %v", err)
		}
		defer resp.Body.Close()

		var state app.State
		if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
			t.Fatalf("decode state: %v", err)
		}
		if state.Committed != 0 || state.RedoDepth != 0 {
			t.Errorf("after clear: committed=%d redo=%d, want 0/0", state.Committed, state.RedoDepth)
		}
	})
}
