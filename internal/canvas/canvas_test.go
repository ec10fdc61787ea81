package canvas

import (
	"image/color"
	"testing"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 100
	cfg.Height = 100
	return cfg
}

func commitStroke(c *Canvas, points ...Point) {
	c.BeginStroke(points[0])
	for _, p := range points[1:] {
		c.ExtendStroke(p)
	}
	c.EndStroke()
}

func TestCanvas_StrokeLifecycle(t *testing.T) {
	c := New(testConfig())

	commitStroke(c, Point{X: 1, Y: 1}, Point{X: 2, Y: 2}, Point{X: 3, Y: 3})

	if c.CommittedCount() != 1 {
		t.Fatalf("committed = %d, want 1", c.CommittedCount())
	}

	snap := c.Snapshot()
	if got := len(snap.Committed[0].Points); got != 3 {
		t.Errorf("stroke points = %d, want 3", got)
	}
}

func TestCanvas_ExtendWithoutBegin(t *testing.T) {
	c := New(testConfig())

	c.ExtendStroke(Point{X: 5, Y: 5})
	c.EndStroke()

	if c.CommittedCount() != 0 {
		t.Errorf("committed = %d, want 0", c.CommittedCount())
	}
}

func TestCanvas_EndWithoutBegin(t *testing.T) {
	c := New(testConfig())

	c.EndStroke()

	if c.CommittedCount() != 0 {
		t.Errorf("committed = %d, want 0", c.CommittedCount())
	}
}

func TestCanvas_BeginWhileDrawingIsNoop(t *testing.T) {
	c := New(testConfig())

	c.BeginStroke(Point{X: 1, Y: 1})
	c.BeginStroke(Point{X: 50, Y: 50}) // ignored
	c.ExtendStroke(Point{X: 2, Y: 2})
	c.EndStroke()

	snap := c.Snapshot()
	if got := snap.Committed[0].Points[0]; got != (Point{X: 1, Y: 1}) {
		t.Errorf("first point = %v, want {1 1}", got)
	}
}

func TestCanvas_UndoRedoRestoresExactOrder(t *testing.T) {
	c := New(testConfig())

	commitStroke(c, Point{X: 1, Y: 1})
	commitStroke(c, Point{X: 2, Y: 2})
	commitStroke(c, Point{X: 3, Y: 3})

	before := c.Snapshot().Committed

	c.Undo()
	if c.CommittedCount() != 2 || c.RedoDepth() != 1 {
		t.Fatalf("after undo: committed=%d redo=%d, want 2/1", c.CommittedCount(), c.RedoDepth())
	}

	c.Redo()
	after := c.Snapshot().Committed

	if len(after) != len(before) {
		t.Fatalf("committed = %d, want %d", len(after), len(before))
	}
	for i := range before {
		if before[i].Points[0] != after[i].Points[0] {
			t.Errorf("stroke %d changed after undo/redo round trip", i)
		}
	}
}

func TestCanvas_CommitInvalidatesRedoStack(t *testing.T) {
	c := New(testConfig())

	// committed=[A,B]
	commitStroke(c, Point{X: 1, Y: 1})
	commitStroke(c, Point{X: 2, Y: 2})

	// undo -> committed=[A], redo=[B]
	c.Undo()

	// commit C -> committed=[A,C], redo=[]
	commitStroke(c, Point{X: 3, Y: 3})

	if c.CommittedCount() != 2 {
		t.Errorf("committed = %d, want 2", c.CommittedCount())
	}
	if c.RedoDepth() != 0 {
		t.Errorf("redo depth = %d, want 0", c.RedoDepth())
	}

	snap := c.Snapshot()
	if snap.Committed[1].Points[0] != (Point{X: 3, Y: 3}) {
		t.Errorf("second stroke = %v, want C at {3 3}", snap.Committed[1].Points[0])
	}

	// Redo after invalidation is a no-op.
	c.Redo()
	if c.CommittedCount() != 2 {
		t.Errorf("committed after stale redo = %d, want 2", c.CommittedCount())
	}
}

func TestCanvas_UndoOnEmptyHistory(t *testing.T) {
	c := New(testConfig())

	for i := 0; i < 3; i++ {
		c.Undo()
	}

	if c.CommittedCount() != 0 || c.RedoDepth() != 0 {
		t.Errorf("committed=%d redo=%d, want 0/0", c.CommittedCount(), c.RedoDepth())
	}
}

func TestCanvas_RedoOnEmptyStack(t *testing.T) {
	c := New(testConfig())

	commitStroke(c, Point{X: 1, Y: 1})
	c.Redo()

	if c.CommittedCount() != 1 {
		t.Errorf("committed = %d, want 1", c.CommittedCount())
	}
}

func TestCanvas_ClearEmptiesEverything(t *testing.T) {
	c := New(testConfig())

	commitStroke(c, Point{X: 1, Y: 1})
	commitStroke(c, Point{X: 2, Y: 2})
	c.Undo()
	c.BeginStroke(Point{X: 9, Y: 9})

	c.Clear()

	if c.CommittedCount() != 0 {
		t.Errorf("committed = %d, want 0", c.CommittedCount())
	}
	if c.RedoDepth() != 0 {
		t.Errorf("redo depth = %d, want 0", c.RedoDepth())
	}
	if c.Drawing() {
		t.Error("in-progress stroke should be discarded by Clear")
	}
}

func TestCanvas_ColorCycleWraps(t *testing.T) {
	cfg := testConfig()
	cfg.Palette = Palette{
		{Name: "Red", Color: color.RGBA{R: 255, A: 255}},
		{Name: "Green", Color: color.RGBA{G: 255, A: 255}},
		{Name: "Blue", Color: color.RGBA{B: 255, A: 255}},
	}
	cfg.StartColor = 0
	c := New(cfg)

	c.CycleColor()
	c.CycleColor()
	if got := c.ActiveSwatch().Name; got != "Blue" {
		t.Errorf("after two cycles color = %s, want Blue", got)
	}

	c.CycleColor()
	if got := c.ActiveSwatch().Name; got != "Red" {
		t.Errorf("after three cycles color = %s, want Red (wrap)", got)
	}
}

func TestCanvas_SetColorRejectsOutOfRange(t *testing.T) {
	c := New(testConfig())
	start := c.ColorIndex()

	if c.SetColor(-1) {
		t.Error("SetColor(-1) should be rejected")
	}
	if c.SetColor(len(c.Palette())) {
		t.Error("SetColor(len) should be rejected")
	}
	if c.ColorIndex() != start {
		t.Errorf("color index changed to %d, want %d", c.ColorIndex(), start)
	}

	if !c.SetColor(0) {
		t.Error("SetColor(0) should be accepted")
	}
}

func TestCanvas_StrokeCapturesColorAndSizeAtBegin(t *testing.T) {
	c := New(testConfig())

	c.SetColor(0)
	c.SetBrushSize(BrushLarge)
	c.BeginStroke(Point{X: 1, Y: 1})

	// Changing color/size mid-stroke must not affect the active stroke.
	c.SetColor(1)
	c.SetBrushSize(BrushSmall)
	c.EndStroke()

	snap := c.Snapshot()
	got := snap.Committed[0]
	if got.Color.Name != c.Palette()[0].Name {
		t.Errorf("stroke color = %s, want %s", got.Color.Name, c.Palette()[0].Name)
	}
	if got.Size != BrushLarge {
		t.Errorf("stroke size = %v, want BrushLarge", got.Size)
	}
}

func TestCanvas_HistoryEviction(t *testing.T) {
	cfg := testConfig()
	cfg.MaxHistory = 3
	c := New(cfg)

	for i := 0; i < 5; i++ {
		commitStroke(c, Point{X: i, Y: i})
	}

	if c.CommittedCount() != 3 {
		t.Fatalf("committed = %d, want 3", c.CommittedCount())
	}

	// Oldest two strokes were evicted; history starts at stroke 2.
	snap := c.Snapshot()
	if snap.Committed[0].Points[0] != (Point{X: 2, Y: 2}) {
		t.Errorf("oldest surviving stroke = %v, want {2 2}", snap.Committed[0].Points[0])
	}

	// Evicted strokes are unreachable: undoing everything leaves the
	// redo stack holding only the surviving three.
	c.Undo()
	c.Undo()
	c.Undo()
	c.Undo() // no-op
	if c.RedoDepth() != 3 {
		t.Errorf("redo depth = %d, want 3", c.RedoDepth())
	}
}

func TestCanvas_PointsClampedToBounds(t *testing.T) {
	c := New(testConfig())

	c.BeginStroke(Point{X: -10, Y: 500})
	c.ExtendStroke(Point{X: 500, Y: -10})
	c.EndStroke()

	snap := c.Snapshot()
	pts := snap.Committed[0].Points
	if pts[0] != (Point{X: 0, Y: 99}) {
		t.Errorf("clamped first point = %v, want {0 99}", pts[0])
	}
	if pts[1] != (Point{X: 99, Y: 0}) {
		t.Errorf("clamped second point = %v, want {99 0}", pts[1])
	}
}

func TestSnapshot_CurrentStrokeIsIsolated(t *testing.T) {
	c := New(testConfig())

	c.BeginStroke(Point{X: 1, Y: 1})
	snap := c.Snapshot()
	c.ExtendStroke(Point{X: 2, Y: 2})

	if len(snap.Current.Points) != 1 {
		t.Errorf("snapshot current points = %d, want 1 (isolated copy)", len(snap.Current.Points))
	}
}
