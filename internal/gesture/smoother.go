package gesture

// SmootherConfig holds the temporal smoothing parameters.
type SmootherConfig struct {
	// Window is the number of recent raw labels considered for the
	// majority vote.
	Window int

	// CooldownTicks is how many ticks raw input is ignored after the
	// emitted label changes, suppressing rapid toggling between poses.
	CooldownTicks int
}

// DefaultSmootherConfig returns the standard smoothing parameters.
func DefaultSmootherConfig() SmootherConfig {
	return SmootherConfig{
		Window:        3,
		CooldownTicks: 10,
	}
}

// Smoother suppresses single-frame misclassifications by emitting a label
// change only once the same raw label dominates a short rolling window.
// A tick with no hand resets the window and emits LabelNone immediately.
type Smoother struct {
	cfg      SmootherConfig
	window   []Label
	current  Label
	cooldown int
}

// NewSmoother creates a Smoother with the given configuration.
func NewSmoother(cfg SmootherConfig) *Smoother {
	if cfg.Window <= 0 {
		cfg.Window = DefaultSmootherConfig().Window
	}
	if cfg.CooldownTicks < 0 {
		cfg.CooldownTicks = 0
	}
	return &Smoother{
		cfg:     cfg,
		window:  make([]Label, 0, cfg.Window),
		current: LabelNone,
	}
}

// Observe records one tick's raw classification and returns the smoothed
// label to act on.
func (s *Smoother) Observe(raw Label, handPresent bool) Label {
	if !handPresent {
		s.Reset()
		return LabelNone
	}

	if s.cooldown > 0 {
		s.cooldown--
		return s.current
	}

	s.window = append(s.window, raw)
	if len(s.window) > s.cfg.Window {
		s.window = s.window[1:]
	}

	candidate := raw
	if len(s.window) >= s.cfg.Window {
		candidate = majority(s.window)
	}

	if candidate != s.current {
		s.current = candidate
		s.cooldown = s.cfg.CooldownTicks
	}

	return s.current
}

// Current returns the most recently emitted label.
func (s *Smoother) Current() Label {
	return s.current
}

// Reset clears the window and returns the smoother to LabelNone.
func (s *Smoother) Reset() {
	s.window = s.window[:0]
	s.current = LabelNone
	s.cooldown = 0
}

// majority returns the most frequent label in the window. Ties resolve to
// the label seen most recently among the tied candidates.
func majority(window []Label) Label {
	counts := make(map[Label]int, len(window))
	for _, l := range window {
		counts[l]++
	}

	best := window[len(window)-1]
	bestCount := counts[best]
	for i := len(window) - 1; i >= 0; i-- {
		if counts[window[i]] > bestCount {
			best = window[i]
			bestCount = counts[window[i]]
		}
	}
	return best
}
