package overlay

import (
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/OpticalFlyer/atlas/proj"
)

// Timing holds the fade transition delays
type Timing struct {
	// ShowDelay separates attaching at opacity 0 from requesting opacity 1,
	// so the fade in starts from a drawn transparent frame.
	ShowDelay time.Duration
	// FadeDuration is how long a full fade takes. Hidden overlays are
	// detached once it has elapsed.
	FadeDuration time.Duration
}

// DefaultTiming returns the standard 10ms show delay and 700ms fade
func DefaultTiming() Timing {
	return Timing{
		ShowDelay:    10 * time.Millisecond,
		FadeDuration: 700 * time.Millisecond,
	}
}

// Registry owns the overlays of one map and drives their visibility
type Registry struct {
	stack    *Stack
	sched    *Scheduler
	timing   Timing
	overlays []*Overlay
	byName   map[string]*Overlay
}

// NewRegistry creates a registry attaching overlays to stack
func NewRegistry(stack *Stack, timing Timing) *Registry {
	return &Registry{
		stack:  stack,
		sched:  NewScheduler(),
		timing: timing,
		byName: make(map[string]*Overlay),
	}
}

// Register creates a hidden, non-interactive overlay over bounds. The overlay
// is added to the stack once so it gets prepared, then detached again.
func (r *Registry) Register(name string, kind Kind, source string, bounds proj.Bounds) (*Overlay, error) {
	if _, ok := r.byName[name]; ok {
		return nil, eris.Errorf("overlay: duplicate name %q", name)
	}

	o := &Overlay{
		Name:        name,
		Kind:        kind,
		Source:      source,
		Bounds:      bounds,
		Interactive: false,
		zIndex:      kind.ZIndex(),
		state:       HiddenDetached,
	}
	if err := r.stack.AddLayer(o); err != nil {
		return nil, err
	}
	r.stack.RemoveLayer(o)

	r.overlays = append(r.overlays, o)
	r.byName[name] = o
	return o, nil
}

// Get looks up an overlay by name
func (r *Registry) Get(name string) (*Overlay, bool) {
	o, ok := r.byName[name]
	return o, ok
}

// All returns the overlays in registration order
func (r *Registry) All() []*Overlay {
	return append([]*Overlay(nil), r.overlays...)
}

// Scheduler exposes the timer queue driving transitions
func (r *Registry) Scheduler() *Scheduler { return r.sched }

// SetVisible shows or hides the named overlay
func (r *Registry) SetVisible(name string, visible bool) error {
	o, ok := r.byName[name]
	if !ok {
		return eris.Errorf("overlay: unknown overlay %q", name)
	}
	if visible {
		r.Show(o)
	} else {
		r.Hide(o)
	}
	return nil
}

// Show fades o in, attaching it first if needed
func (r *Registry) Show(o *Overlay) {
	defer r.Refresh()

	switch o.state {
	case Shown, Showing:
		return
	case HiddenDetached:
		// Start from a transparent frame
		o.SetOpacity(0)
		o.displayed = 0
		if err := r.stack.AddLayer(o); err != nil {
			zap.L().Error("attach overlay", zap.String("overlay", o.Name), zap.Error(err))
			return
		}
	}

	gen := r.begin(o, Showing)
	o.pending = r.sched.After(r.timing.ShowDelay, func() {
		if o.generation != gen {
			return
		}
		o.pending = 0
		o.SetOpacity(1)
	})
}

// Hide fades o out and detaches it once the fade has finished
func (r *Registry) Hide(o *Overlay) {
	defer r.Refresh()

	if o.state == HiddenDetached {
		return
	}

	gen := r.begin(o, Hiding)
	o.SetOpacity(0)
	o.pending = r.sched.After(r.timing.FadeDuration, func() {
		if o.generation != gen {
			return
		}
		o.pending = 0
		r.stack.RemoveLayer(o)
		o.displayed = 0
		o.state = HiddenDetached
		r.Refresh()
	})
}

// begin starts a new transition for o, invalidating any pending one
func (r *Registry) begin(o *Overlay, s State) uint64 {
	if o.pending != 0 {
		r.sched.Cancel(o.pending)
		o.pending = 0
	}
	o.generation++
	o.state = s
	return o.generation
}

// Refresh reassigns stacking priorities to attached overlays so labels stay
// above borders. Detached overlays are left alone.
func (r *Registry) Refresh() {
	for _, o := range r.overlays {
		if r.stack.HasLayer(o) {
			o.zIndex = o.Kind.ZIndex()
		}
	}
}

// Advance moves transitions forward by dt: due timers fire, then drawn
// opacities fade toward their targets.
func (r *Registry) Advance(dt time.Duration) {
	r.sched.Advance(dt)
	for _, o := range r.overlays {
		if !r.stack.HasLayer(o) {
			continue
		}
		o.fade(dt, r.timing.FadeDuration)
		if o.state == Showing && o.opacity == 1 && o.displayed == 1 {
			o.state = Shown
		}
	}
}
