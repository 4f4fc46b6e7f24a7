package overlay

import (
	"slices"
	"sort"

	"github.com/rotisserie/eris"
)

// PrepareFunc readies an overlay for drawing the first time it is added to a
// Stack, e.g. by decoding and uploading its image.
type PrepareFunc func(o *Overlay) error

// Stack holds the overlays currently attached to the map
type Stack struct {
	layers   []*Overlay
	prepared map[*Overlay]bool
	prepare  PrepareFunc
}

// NewStack creates an empty stack. prepare may be nil.
func NewStack(prepare PrepareFunc) *Stack {
	return &Stack{
		prepared: make(map[*Overlay]bool),
		prepare:  prepare,
	}
}

// AddLayer attaches o. Adding an attached overlay is a no-op.
func (s *Stack) AddLayer(o *Overlay) error {
	if s.HasLayer(o) {
		return nil
	}
	if !s.prepared[o] {
		if s.prepare != nil {
			if err := s.prepare(o); err != nil {
				return eris.Wrapf(err, "overlay: prepare %s", o.Name)
			}
		}
		s.prepared[o] = true
	}
	s.layers = append(s.layers, o)
	return nil
}

// RemoveLayer detaches o. Removing a detached overlay is a no-op.
func (s *Stack) RemoveLayer(o *Overlay) {
	if i := slices.Index(s.layers, o); i >= 0 {
		s.layers = slices.Delete(s.layers, i, i+1)
	}
}

// HasLayer reports whether o is attached
func (s *Stack) HasLayer(o *Overlay) bool {
	return slices.Contains(s.layers, o)
}

// Layers returns the attached overlays in draw order: ascending z-index,
// ties in attach order.
func (s *Stack) Layers() []*Overlay {
	out := slices.Clone(s.layers)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].zIndex < out[j].zIndex
	})
	return out
}

// CapturesPointer reports whether an attached overlay takes pointer input
// away from the map beneath it.
func (s *Stack) CapturesPointer() bool {
	for _, o := range s.layers {
		if o.Interactive {
			return true
		}
	}
	return false
}
