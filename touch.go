package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/OpticalFlyer/atlas/viewport"
)

// minPinchZoom is the smallest spread change, in zoom levels, that zooms.
// Smaller changes accumulate against the last applied positions.
const minPinchZoom = 0.1

type touchPoint struct{ x, y float64 }

// touches remembers where each active finger was last applied to the view
type touches struct {
	last map[ebiten.TouchID]touchPoint
	ids  []ebiten.TouchID
}

func (t *touches) update(view *viewport.Viewport) {
	if t.last == nil {
		t.last = make(map[ebiten.TouchID]touchPoint)
	}
	t.ids = ebiten.AppendTouchIDs(t.ids[:0])

	current := make(map[ebiten.TouchID]touchPoint, len(t.ids))
	for _, id := range t.ids {
		x, y := ebiten.TouchPosition(id)
		current[id] = touchPoint{float64(x), float64(y)}
		if _, ok := t.last[id]; !ok {
			t.last[id] = current[id]
		}
	}
	for id := range t.last {
		if _, ok := current[id]; !ok {
			delete(t.last, id)
		}
	}

	switch len(t.ids) {
	case 1:
		id := t.ids[0]
		p, prev := current[id], t.last[id]
		if p != prev {
			view.PanBy(p.x-prev.x, p.y-prev.y)
		}
		t.last[id] = p

	case 2:
		a, b := t.ids[0], t.ids[1]
		spread := distance(current[a], current[b])
		prevSpread := distance(t.last[a], t.last[b])
		if spread == 0 || prevSpread == 0 {
			break
		}
		delta := math.Log2(spread / prevSpread)
		if math.Abs(delta) < minPinchZoom {
			return
		}
		midX := (current[a].x + current[b].x) / 2
		midY := (current[a].y + current[b].y) / 2
		view.ZoomAtPoint(delta, midX, midY)
		t.last[a], t.last[b] = current[a], current[b]
	}
}

func distance(a, b touchPoint) float64 {
	return math.Hypot(b.x-a.x, b.y-a.y)
}
