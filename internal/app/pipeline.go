package app

import (
	"errors"
	"image"
	"image/color"
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/renderix/aircanvas/internal/canvas"
	"github.com/renderix/aircanvas/internal/capture"
	"github.com/renderix/aircanvas/internal/detector"
	"github.com/renderix/aircanvas/internal/gesture"
)

const windowTitle = "Air Canvas"

// cursorRadius is the crosshair drawn at the pointer while in move mode.
const cursorRadius = 12

var cursorColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// runPipeline is the main capture loop. It adjusts the frame rate based on
// motion detection and feeds frames through hand detection into the
// interaction controller.
func (a *App) runPipeline() {
	a.mu.RLock()
	stopCh := a.stopCh
	a.mu.RUnlock()

	var window *gocv.Window
	if !a.config.Headless {
		window = gocv.NewWindow(windowTitle)
		defer window.Close()
	}

	ticker := time.NewTicker(time.Second / IdleFPS)
	defer ticker.Stop()

	active := false
	var lastMotion time.Time

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			frame, err := a.camera.ReadFrame()
			if err != nil {
				if errors.Is(err, capture.ErrCameraNotOpen) {
					return
				}
				log.Printf("Frame read error: %v", err)
				continue
			}

			moved, _ := a.motion.Detect(frame)
			now := time.Now()
			if moved {
				lastMotion = now
			}

			shouldBeActive := now.Sub(lastMotion) < IdleTimeoutMs*time.Millisecond
			if shouldBeActive != active {
				active = shouldBeActive
				fps := IdleFPS
				if active {
					fps = ActiveFPS
				}
				a.camera.SetFPS(fps)
				ticker.Reset(time.Second / time.Duration(fps))
			}

			if a.IsEnabled() {
				a.ProcessFrame(frame)
			}

			if window != nil {
				if quit := a.refreshDisplay(window, frame); quit {
					frame.Close()
					go a.Stop()
					return
				}
			}

			frame.Close()
		}
	}
}

// ProcessFrame runs one detection tick: classify the first hand in the
// frame, smooth the label, and feed the result to the controller. The
// capture loop calls this once per frame.
func (a *App) ProcessFrame(frame *gocv.Mat) {
	a.mu.RLock()
	det := a.detector
	a.mu.RUnlock()
	if det == nil {
		return
	}

	hands, err := det.Detect(frame)
	if err != nil {
		log.Printf("Detection error: %v", err)
		return
	}

	var hand *detector.HandLandmarks
	if len(hands) > 0 {
		hand = &hands[0]
	}

	a.sessionMu.Lock()

	obs := a.observe(hand)
	a.controller.Tick(obs.Label, canvas.Point{X: obs.Pointer.X, Y: obs.Pointer.Y}, obs.HasPointer)
	a.guide.SetActive(obs.Label)

	changed := obs.Label != a.lastGesture
	a.lastGesture = obs.Label

	a.mu.RLock()
	cb := a.onGesture
	a.mu.RUnlock()

	a.sessionMu.Unlock()

	if changed && cb != nil {
		cb(obs.Label.String())
	}
}

// observe classifies and smooths one tick, mapping the index fingertip
// into canvas pixel space. The caller holds sessionMu.
func (a *App) observe(hand *detector.HandLandmarks) gesture.Observation {
	var obs gesture.Observation
	if hand == nil {
		obs.Label = a.smoother.Observe(gesture.LabelNone, false)
		return obs
	}

	raw, conf := a.classifier.Classify(hand)
	obs.Label = a.smoother.Observe(raw, true)
	obs.Confidence = conf

	width, height := a.canvas.Size()
	tip := hand.Points[detector.IndexTip]
	obs.Pointer = image.Pt(int(tip.X*float64(width)), int(tip.Y*float64(height)))
	obs.HasPointer = true

	return obs
}

// refreshDisplay composites and shows the display surface, then handles
// keyboard input. Returns true when the user asked to quit.
func (a *App) refreshDisplay(window *gocv.Window, cameraFrame *gocv.Mat) bool {
	display := a.renderDisplay(cameraFrame)
	window.IMShow(display)
	display.Close()

	switch window.WaitKey(1) {
	case 'u':
		a.Undo()
	case 'r':
		a.Redo()
	case 'c':
		a.ClearCanvas()
	case 'q', 27: // esc
		return true
	}
	return false
}

// renderDisplay composites the canvas, toolbar, gesture guide, optional
// camera preview, and move-mode cursor into a single frame. The caller
// owns the returned Mat.
func (a *App) renderDisplay(cameraFrame *gocv.Mat) gocv.Mat {
	a.sessionMu.Lock()
	snap := a.canvas.Snapshot()
	cursor, hasCursor := a.controller.Cursor()
	a.sessionMu.Unlock()

	display := a.renderer.Render(snap)
	a.toolbar.Draw(&display, snap.ColorIndex)
	a.guide.Draw(&display)
	if cameraFrame != nil && !cameraFrame.Empty() {
		a.preview.Draw(&display, cameraFrame)
	}

	if hasCursor {
		pt := image.Pt(cursor.X, cursor.Y)
		gocv.Circle(&display, pt, cursorRadius, cursorColor, 2)
		gocv.Circle(&display, pt, 2, cursorColor, -1)
	}

	return display
}
