// Package overlay manages optional image layers drawn above the base map:
// their registration, fade in/out visibility transitions and draw order.
package overlay

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/OpticalFlyer/atlas/proj"
)

// Kind classifies an overlay. It decides the overlay's stacking tier.
type Kind int

const (
	KindBorder Kind = iota
	KindNames
	KindShields
)

// Stacking priorities. Labels always render above borders.
const (
	ZBorder = 400
	ZLabels = 500
)

func (k Kind) String() string {
	switch k {
	case KindBorder:
		return "border"
	case KindNames:
		return "names"
	case KindShields:
		return "shields"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ZIndex returns the stacking priority for overlays of this kind
func (k Kind) ZIndex() int {
	if k == KindBorder {
		return ZBorder
	}
	return ZLabels
}

// ParseKind converts a config string into a Kind
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "border", "borders":
		return KindBorder, nil
	case "name", "names":
		return KindNames, nil
	case "shield", "shields":
		return KindShields, nil
	}
	return 0, eris.Errorf("overlay: unknown kind %q", s)
}

// State is an overlay's position in the show/hide lifecycle
type State int

const (
	HiddenDetached State = iota
	Showing
	Shown
	Hiding
)

func (s State) String() string {
	switch s {
	case HiddenDetached:
		return "hidden"
	case Showing:
		return "showing"
	case Shown:
		return "shown"
	case Hiding:
		return "hiding"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Overlay is an image layer covering the same bounds as the base map
type Overlay struct {
	Name   string
	Kind   Kind
	Source string
	Bounds proj.Bounds

	// Interactive overlays would capture pointer input. Overlays are created
	// non-interactive so drags and wheel events reach the map beneath.
	Interactive bool

	opacity    float64 // requested opacity
	displayed  float64 // opacity currently drawn, eased toward opacity
	zIndex     int
	state      State
	generation uint64
	pending    TimerID
}

// Opacity returns the requested opacity
func (o *Overlay) Opacity() float64 { return o.opacity }

// DisplayedOpacity returns the opacity to draw this frame
func (o *Overlay) DisplayedOpacity() float64 { return o.displayed }

func (o *Overlay) ZIndex() int  { return o.zIndex }
func (o *Overlay) State() State { return o.state }

// SetOpacity requests a new opacity. The drawn opacity fades toward it.
func (o *Overlay) SetOpacity(v float64) {
	o.opacity = math.Max(0, math.Min(1, v))
}

// fade moves the drawn opacity toward the requested one at a rate that
// covers the full 0..1 range in d
func (o *Overlay) fade(dt, d time.Duration) {
	if o.displayed == o.opacity {
		return
	}
	if d <= 0 {
		o.displayed = o.opacity
		return
	}
	step := float64(dt) / float64(d)
	if o.displayed < o.opacity {
		o.displayed = math.Min(o.opacity, o.displayed+step)
	} else {
		o.displayed = math.Max(o.opacity, o.displayed-step)
	}
}
