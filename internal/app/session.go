package app

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/renderix/aircanvas/internal/canvas"
	"github.com/renderix/aircanvas/internal/ui"
)

// Session mutations below are the API surface for the HTTP layer and the
// display keyboard shortcuts. Each takes the session mutex so a mutation
// never interleaves with a gesture tick.

// Snapshot returns a consistent view of the canvas.
func (a *App) Snapshot() canvas.Snapshot {
	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()
	return a.canvas.Snapshot()
}

// State summarizes the session for status consumers.
func (a *App) State() State {
	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()

	return State{
		Gesture:    a.lastGesture.String(),
		Mode:       a.controller.Mode().String(),
		Color:      a.canvas.ActiveSwatch().Name,
		ColorIndex: a.canvas.ColorIndex(),
		Brush:      a.canvas.Brush().String(),
		Committed:  a.canvas.CommittedCount(),
		RedoDepth:  a.canvas.RedoDepth(),
		Tracking:   a.IsEnabled(),
	}
}

// Undo removes the most recent committed stroke.
func (a *App) Undo() {
	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()
	a.canvas.Undo()
}

// Redo restores the most recently undone stroke.
func (a *App) Redo() {
	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()
	a.canvas.Redo()
}

// ClearCanvas wipes the canvas, including any stroke in progress.
func (a *App) ClearCanvas() {
	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()
	a.controller.Reset()
	a.canvas.Clear()
}

// CycleColor advances the active color through the palette.
func (a *App) CycleColor() {
	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()
	a.canvas.CycleColor()
}

// SetColorIndex selects a palette entry directly.
func (a *App) SetColorIndex(i int) error {
	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()
	if !a.canvas.SetColor(i) {
		return fmt.Errorf("color index %d out of range", i)
	}
	return nil
}

// SetBrushSize selects the brush width by name (small, medium, large).
func (a *App) SetBrushSize(name string) error {
	size, ok := canvas.ParseBrushSize(name)
	if !ok {
		return fmt.Errorf("unknown brush size %q", name)
	}

	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()
	a.canvas.SetBrushSize(size)
	return nil
}

// Click dispatches a pointer click on the display surface. Clicks on the
// toolbar select a color or trigger an action button; clicks elsewhere
// are ignored.
func (a *App) Click(x, y int) {
	if !a.toolbar.Contains(x, y) {
		return
	}

	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()

	if idx := a.toolbar.ColorAt(x, y); idx >= 0 {
		a.canvas.SetColor(idx)
		return
	}

	switch a.toolbar.ButtonAt(x, y) {
	case ui.ButtonUndo:
		a.canvas.Undo()
	case ui.ButtonRedo:
		a.canvas.Redo()
	case ui.ButtonClear:
		a.controller.Reset()
		a.canvas.Clear()
	}
}

// EncodeDisplay renders the current display surface and encodes it as
// JPEG, for the MJPEG stream.
func (a *App) EncodeDisplay() ([]byte, error) {
	display := a.renderDisplay(nil)
	defer display.Close()

	buf, err := gocv.IMEncode(".jpg", display)
	if err != nil {
		return nil, fmt.Errorf("encoding display frame: %w", err)
	}
	defer buf.Close()

	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())
	return data, nil
}
