// Package app wires the air canvas pipeline together: camera frames flow
// through hand detection and gesture classification into the interaction
// controller, which mutates the stroke store once per tick.
package app

import (
	"log"
	"strconv"
	"sync"

	"github.com/renderix/aircanvas/internal/canvas"
	"github.com/renderix/aircanvas/internal/capture"
	"github.com/renderix/aircanvas/internal/controller"
	"github.com/renderix/aircanvas/internal/detector"
	"github.com/renderix/aircanvas/internal/gesture"
	"github.com/renderix/aircanvas/internal/store"
	"github.com/renderix/aircanvas/internal/ui"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active tracking.
	ActiveFPS = 15
	// IdleTimeoutMs is how long without motion before dropping back to
	// the idle rate.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	CameraID     int
	MotionThresh float64
	// Camera overrides the default device camera. Nil opens the device
	// at CameraID.
	Camera capture.Camera
	// Headless disables the display window; the HTTP surface remains
	// the only way to observe the canvas.
	Headless bool

	Canvas     canvas.Config
	Classifier gesture.Config
	Smoother   gesture.SmootherConfig
	Controller controller.Config
}

// State is a read-only summary of the session, consumed by the tray, the
// websocket event feed, and the canvas API.
type State struct {
	Gesture    string `json:"gesture"`
	Mode       string `json:"mode"`
	Color      string `json:"color"`
	ColorIndex int    `json:"color_index"`
	Brush      string `json:"brush"`
	Committed  int    `json:"committed"`
	RedoDepth  int    `json:"redo_depth"`
	Tracking   bool   `json:"tracking"`
}

// App owns the drawing session and the detection pipeline. Gesture ticks
// and direct UI mutations serialize onto one mutation path through the
// session mutex, so each store operation is atomic within a tick.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	classifier *gesture.Classifier
	smoother   *gesture.Smoother

	// session state, guarded by sessionMu
	sessionMu   sync.Mutex
	canvas      *canvas.Canvas
	controller  *controller.Controller
	lastGesture gesture.Label

	renderer *canvas.Renderer
	toolbar  *ui.Toolbar
	guide    *ui.GestureGuide
	preview  *ui.CameraPreview

	mu        sync.RWMutex
	enabled   bool
	stopCh    chan struct{}
	onGesture func(label string)
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // 1% pixel change
	}
	if config.Canvas.Width == 0 {
		config.Canvas = canvas.DefaultConfig()
	}

	cv := canvas.New(config.Canvas)
	width, height := cv.Size()

	cam := config.Camera
	if cam == nil {
		cam = capture.NewCamera(config.CameraID)
	}

	a := &App{
		config:     config,
		camera:     cam,
		motion:     capture.NewMotionDetector(motionThreshold),
		classifier: gesture.NewClassifier(config.Classifier),
		smoother:   gesture.NewSmoother(config.Smoother),
		canvas:     cv,
		renderer:   canvas.NewRenderer(width, height),
		toolbar:    ui.NewToolbar(width, cv.Palette()),
		guide:      ui.NewGestureGuide(width, height),
		preview:    ui.NewCameraPreview(width),
		enabled:    true,
	}
	a.controller = controller.New(cv, config.Controller)

	// Prefer MediaPipe, fall back to the mock detector so the rest of
	// the app stays usable without the Python service.
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables gesture tracking. Disabling commits any
// in-progress stroke and re-arms the edge triggers.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	a.enabled = enabled
	a.mu.Unlock()

	if !enabled {
		a.sessionMu.Lock()
		a.controller.Reset()
		a.smoother.Reset()
		a.lastGesture = gesture.LabelNone
		a.sessionMu.Unlock()
	}
}

// IsEnabled returns whether gesture tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// OnGesture registers a callback invoked when the smoothed gesture label
// changes, for the tray's last-gesture display.
func (a *App) OnGesture(fn func(label string)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onGesture = fn
}

// LoadCalibration applies the active calibration profile and persisted
// color/brush settings from the store.
func (a *App) LoadCalibration() error {
	if a.config.Store == nil {
		return nil
	}

	settings := a.config.Store.Settings()

	if name, err := settings.Get(store.SettingActiveProfile); err == nil {
		profile, err := a.config.Store.Profiles().GetByName(name)
		if err != nil {
			log.Printf("Active profile %q not found, using defaults", name)
		} else {
			a.ApplyProfile(profile)
			log.Printf("Loaded calibration profile %q", profile.Name)
		}
	}

	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()

	if v, err := settings.Get(store.SettingColorIndex); err == nil {
		if idx, err := strconv.Atoi(v); err == nil {
			a.canvas.SetColor(idx)
		}
	}
	if v, err := settings.Get(store.SettingBrushSize); err == nil {
		if size, ok := canvas.ParseBrushSize(v); ok {
			a.canvas.SetBrushSize(size)
		}
	}

	return nil
}

// ApplyProfile rebuilds the classifier, smoother, and controller from a
// calibration profile. Safe to call while the pipeline is running.
func (a *App) ApplyProfile(p *store.Profile) {
	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()

	a.classifier = gesture.NewClassifier(gesture.Config{
		FingerUpThreshold: p.FingerUpThreshold,
		ThumbOutThreshold: p.ThumbOutThreshold,
	})
	a.smoother = gesture.NewSmoother(gesture.SmootherConfig{
		Window:        p.SmoothingWindow,
		CooldownTicks: p.CooldownTicks,
	})
	a.controller = controller.New(a.canvas, controller.Config{
		MinMoveDist: p.MinMoveDist,
	})
}

// saveSettings persists the session's color and brush selection.
func (a *App) saveSettings() {
	if a.config.Store == nil {
		return
	}

	a.sessionMu.Lock()
	colorIdx := a.canvas.ColorIndex()
	brush := a.canvas.Brush()
	a.sessionMu.Unlock()

	settings := a.config.Store.Settings()
	if err := settings.Set(store.SettingColorIndex, strconv.Itoa(colorIdx)); err != nil {
		log.Printf("Failed to save color setting: %v", err)
	}
	if err := settings.Set(store.SettingBrushSize, brush.String()); err != nil {
		log.Printf("Failed to save brush setting: %v", err)
	}
}

// Start begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline()

	log.Println("Air canvas pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	a.mu.Unlock()

	a.saveSettings()

	log.Println("Air canvas pipeline stopped")
}
