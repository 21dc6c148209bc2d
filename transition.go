package nebula

import "log/slog"

// Phase is the transition state machine's state.
type Phase uint8

const (
	PhaseIdle          Phase = iota // warp decays toward 0, idle motion drives committed state
	PhaseTransitioning              // navigation locked, overlays drive the visuals
)

// String returns a lowercase phase name.
func (p Phase) String() string {
	if p == PhaseTransitioning {
		return "transitioning"
	}
	return "idle"
}

// Transition describes one section change.
type Transition struct {
	Effect    Effect
	Direction Direction
	From, To  int
	StartedAt float64 // virtual ms
}

// overlayClearer is implemented by anything holding transition overlays.
type overlayClearer interface {
	ClearOverlays()
}

// Controller owns the warp factor and the effect/direction state. Exactly
// one transition may be in flight; the most recent one keeps selecting the
// effect and direction after the phase returns to idle.
type Controller struct {
	cfg     TransitionConfig
	clock   *Clock
	overlay overlayClearer

	warp   float64
	target float64
	phase  Phase
	last   Transition

	rampTimer   TimerID
	unlockTimer TimerID
}

// NewController creates an idle controller. The initial effect is warp,
// moving forward.
func NewController(cfg TransitionConfig, clock *Clock, overlays overlayClearer) *Controller {
	return &Controller{
		cfg:     cfg,
		clock:   clock,
		overlay: overlays,
		last:    Transition{Effect: EffectWarp, Direction: Forward},
	}
}

// Begin starts a transition from section from to section to. It reports
// false, changing nothing, while a previous transition still holds the lock.
//
// Any timer still pending from an earlier transition is cancelled before the
// new ones are scheduled, so a superseded ramp-down can never cut the new
// ramp short.
func (c *Controller) Begin(from, to int) (Transition, bool) {
	if c.phase == PhaseTransitioning {
		return Transition{}, false
	}

	c.clock.Cancel(c.rampTimer)
	c.clock.Cancel(c.unlockTimer)

	dir := Forward
	if to <= from {
		dir = Backward
	}
	t := Transition{
		Effect:    EffectForSection(to),
		Direction: dir,
		From:      from,
		To:        to,
		StartedAt: c.clock.Now(),
	}
	c.last = t
	c.phase = PhaseTransitioning
	c.clearOverlays()

	c.target = 1
	c.rampTimer = c.clock.After(c.cfg.RampMs, func() {
		c.target = 0
		c.rampTimer = 0
	})
	c.unlockTimer = c.clock.After(c.cfg.LockMs, c.finish)

	slog.Debug("transition started",
		"from", from, "to", to, "effect", t.Effect.String(), "direction", int(dir))
	return t, true
}

// finish releases the lock and hands committed state back to idle motion.
func (c *Controller) finish() {
	c.phase = PhaseIdle
	c.unlockTimer = 0
	c.clearOverlays()
	slog.Debug("transition finished", "to", c.last.To, "warp", c.warp)
}

func (c *Controller) clearOverlays() {
	if c.overlay != nil {
		c.overlay.ClearOverlays()
	}
}

// Smooth moves the warp factor one exponential-smoothing step toward its
// target. Call once per tick.
func (c *Controller) Smooth() {
	c.warp = smoothToward(c.warp, c.target, c.cfg.Smoothing)
}

// smoothToward returns cur moved by rate of the remaining distance to target.
// At the fixed point cur == target the result is exactly cur.
func smoothToward(cur, target, rate float64) float64 {
	return cur + (target-cur)*rate
}

// Warp returns the current warp factor in [0, 1].
func (c *Controller) Warp() float64 { return c.warp }

// Target returns the value the warp factor is smoothing toward (0 or 1).
func (c *Controller) Target() float64 { return c.target }

// Phase returns the state machine's state.
func (c *Controller) Phase() Phase { return c.phase }

// Locked reports whether navigation is currently rejected.
func (c *Controller) Locked() bool { return c.phase == PhaseTransitioning }

// Last returns the most recent transition, or the initial warp/forward
// placeholder before any navigation.
func (c *Controller) Last() Transition { return c.last }

// Effect returns the effect currently selected for particle motion.
func (c *Controller) Effect() Effect { return c.last.Effect }

// Direction returns the direction of the most recent transition.
func (c *Controller) Direction() Direction { return c.last.Direction }
