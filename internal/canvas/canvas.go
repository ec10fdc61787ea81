package canvas

// Config holds the canvas dimensions, palette, and history bound.
type Config struct {
	Width      int
	Height     int
	Palette    Palette
	MaxHistory int
	StartColor int
	StartBrush BrushSize
}

// DefaultConfig returns the standard canvas configuration: a 1280x720
// surface, the default palette starting on White, and a 50-stroke
// history bound.
func DefaultConfig() Config {
	return Config{
		Width:      1280,
		Height:     720,
		Palette:    DefaultPalette(),
		MaxHistory: 50,
		StartColor: 6, // White
		StartBrush: BrushMedium,
	}
}

// Canvas is the stroke store. All operations are synchronous and never
// fail: invalid calls (undo with empty history, extend with no active
// stroke) are silent no-ops. The canvas is not safe for concurrent use;
// callers serialize access onto the per-tick mutation path.
type Canvas struct {
	cfg       Config
	committed []Stroke
	redoStack []Stroke
	current   *Stroke
	colorIdx  int
	brush     BrushSize
}

// New creates a Canvas from the given configuration.
func New(cfg Config) *Canvas {
	def := DefaultConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = def.Palette
	}
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = def.MaxHistory
	}
	if cfg.StartColor < 0 || cfg.StartColor >= len(cfg.Palette) {
		cfg.StartColor = 0
	}

	return &Canvas{
		cfg:      cfg,
		colorIdx: cfg.StartColor,
		brush:    cfg.StartBrush,
	}
}

// BeginStroke starts a new in-progress stroke at p with the current color
// and brush size. A no-op if a stroke is already in progress.
func (c *Canvas) BeginStroke(p Point) {
	if c.current != nil {
		return
	}
	c.current = &Stroke{
		Points: []Point{c.clamp(p)},
		Color:  c.cfg.Palette[c.colorIdx],
		Size:   c.brush,
	}
}

// ExtendStroke appends p to the in-progress stroke. A no-op if no stroke
// is in progress.
func (c *Canvas) ExtendStroke(p Point) {
	if c.current == nil {
		return
	}
	c.current.Points = append(c.current.Points, c.clamp(p))
}

// EndStroke finalizes the in-progress stroke. A non-empty stroke moves
// onto the committed history and invalidates the redo stack; an empty one
// is discarded. When the history bound is exceeded the oldest stroke is
// evicted and can no longer be reached by undo.
func (c *Canvas) EndStroke() {
	if c.current == nil {
		return
	}

	stroke := c.current
	c.current = nil

	if len(stroke.Points) == 0 {
		return
	}

	c.committed = append(c.committed, *stroke)
	c.redoStack = c.redoStack[:0]

	if len(c.committed) > c.cfg.MaxHistory {
		over := len(c.committed) - c.cfg.MaxHistory
		c.committed = append(c.committed[:0:0], c.committed[over:]...)
	}
}

// Undo moves the most recent committed stroke onto the redo stack.
// A no-op when the history is empty.
func (c *Canvas) Undo() {
	if len(c.committed) == 0 {
		return
	}
	last := c.committed[len(c.committed)-1]
	c.committed = c.committed[:len(c.committed)-1]
	c.redoStack = append(c.redoStack, last)
}

// Redo moves the most recently undone stroke back onto the committed
// history. A no-op when the redo stack is empty.
func (c *Canvas) Redo() {
	if len(c.redoStack) == 0 {
		return
	}
	last := c.redoStack[len(c.redoStack)-1]
	c.redoStack = c.redoStack[:len(c.redoStack)-1]
	c.committed = append(c.committed, last)
}

// Clear discards the in-progress stroke and empties both the committed
// history and the redo stack.
func (c *Canvas) Clear() {
	c.committed = nil
	c.redoStack = nil
	c.current = nil
}

// SetColor selects the palette entry at index i. Out-of-range indices are
// ignored; returns whether the index was valid.
func (c *Canvas) SetColor(i int) bool {
	if i < 0 || i >= len(c.cfg.Palette) {
		return false
	}
	c.colorIdx = i
	return true
}

// CycleColor advances to the next palette entry, wrapping at the end.
func (c *Canvas) CycleColor() {
	c.colorIdx = (c.colorIdx + 1) % len(c.cfg.Palette)
}

// SetBrushSize selects the brush width for subsequent strokes.
func (c *Canvas) SetBrushSize(s BrushSize) {
	c.brush = s
}

// ColorIndex returns the index of the active palette entry.
func (c *Canvas) ColorIndex() int {
	return c.colorIdx
}

// ActiveSwatch returns the active palette entry.
func (c *Canvas) ActiveSwatch() Swatch {
	return c.cfg.Palette[c.colorIdx]
}

// Brush returns the active brush size.
func (c *Canvas) Brush() BrushSize {
	return c.brush
}

// Palette returns the configured palette.
func (c *Canvas) Palette() Palette {
	return c.cfg.Palette
}

// Size returns the canvas dimensions in pixels.
func (c *Canvas) Size() (width, height int) {
	return c.cfg.Width, c.cfg.Height
}

// Drawing reports whether a stroke is in progress.
func (c *Canvas) Drawing() bool {
	return c.current != nil
}

// Snapshot is a read-only view of the canvas for rendering. Committed
// strokes are shared (they are immutable); the in-progress stroke is
// deep-copied since it is still growing.
type Snapshot struct {
	Committed  []Stroke
	Current    *Stroke
	ColorIndex int
	Color      Swatch
	Brush      BrushSize
	RedoDepth  int
	Width      int
	Height     int
}

// Snapshot returns the current visible state.
func (c *Canvas) Snapshot() Snapshot {
	committed := make([]Stroke, len(c.committed))
	copy(committed, c.committed)

	return Snapshot{
		Committed:  committed,
		Current:    c.current.clone(),
		ColorIndex: c.colorIdx,
		Color:      c.cfg.Palette[c.colorIdx],
		Brush:      c.brush,
		RedoDepth:  len(c.redoStack),
		Width:      c.cfg.Width,
		Height:     c.cfg.Height,
	}
}

// CommittedCount returns the number of strokes in history.
func (c *Canvas) CommittedCount() int {
	return len(c.committed)
}

// RedoDepth returns the number of strokes eligible for redo.
func (c *Canvas) RedoDepth() int {
	return len(c.redoStack)
}

func (c *Canvas) clamp(p Point) Point {
	if p.X < 0 {
		p.X = 0
	} else if p.X >= c.cfg.Width {
		p.X = c.cfg.Width - 1
	}
	if p.Y < 0 {
		p.Y = 0
	} else if p.Y >= c.cfg.Height {
		p.Y = c.cfg.Height - 1
	}
	return p
}
