package layer

import "github.com/gogpu/compose"

// Stack is the ordered collection of layers. Index 0 is the bottom.
//
// Stack operations never fail: unknown ids are no-ops and indices are
// clamped into range, because ids can legitimately race with deletion in an
// interactive editor.
//
// Stack is NOT safe for concurrent use.
type Stack struct {
	layers            []*Layer
	backgroundInFront bool
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{layers: make([]*Layer, 0, 8)}
}

// Len returns the number of layers.
func (s *Stack) Len() int {
	return len(s.layers)
}

// Layers returns a copy of the layers in render order (bottom first).
func (s *Stack) Layers() []Layer {
	out := make([]Layer, len(s.layers))
	for i, l := range s.layers {
		out[i] = *l
	}
	return out
}

// At returns the layer at index i.
func (s *Stack) At(i int) (Layer, bool) {
	if i < 0 || i >= len(s.layers) {
		return Layer{}, false
	}
	return *s.layers[i], true
}

// Index returns the position of id, or -1 if it is not in the stack.
func (s *Stack) Index(id ID) int {
	for i, l := range s.layers {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// Get returns the layer with the given id.
func (s *Stack) Get(id ID) (Layer, bool) {
	i := s.Index(id)
	if i < 0 {
		return Layer{}, false
	}
	return *s.layers[i], true
}

// Background returns the background layer if there is one.
func (s *Stack) Background() (Layer, bool) {
	i := s.backgroundIndex()
	if i < 0 {
		return Layer{}, false
	}
	return *s.layers[i], true
}

// BackgroundInFront reports whether the background is pinned to the top.
func (s *Stack) BackgroundInFront() bool {
	return s.backgroundInFront
}

// SetBackgroundInFront pins the background to the top (true) or the bottom
// (false) and moves it there if it exists.
func (s *Stack) SetBackgroundInFront(front bool) {
	s.backgroundInFront = front
	s.normalize()
}

// AddStamp appends a stamp on top of the other stamps and returns its id.
// If the background is pinned to the top, the stamp goes just below it.
func (s *Stack) AddStamp(bm Bitmap, source string, t compose.Transform, name string) ID {
	l := &Layer{
		ID:        NewID(KindStamp),
		Kind:      KindStamp,
		Bitmap:    bm,
		Source:    source,
		Transform: t,
		Label:     KindStamp.DefaultLabel(),
		Name:      name,
	}
	s.insert(l)
	return l.ID
}

// Insert adds a fully specified layer, for example one restored from a
// document. A background replaces the existing background; a layer whose id
// is already present is ignored. It returns the id of the affected layer.
func (s *Stack) Insert(l Layer) ID {
	if l.ID == "" {
		l.ID = NewID(l.Kind)
	}
	if l.Kind == KindBackground {
		if i := s.backgroundIndex(); i >= 0 {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
		}
		l.Transform = compose.IdentityTransform()
	}
	if s.Index(l.ID) >= 0 {
		return l.ID
	}
	if l.Label == "" {
		l.Label = l.Kind.DefaultLabel()
	}
	s.insert(&l)
	return l.ID
}

// SetBackground replaces the bitmap of the background layer, creating the
// layer if it does not exist yet. The background keeps its id and its pin.
func (s *Stack) SetBackground(bm Bitmap, source, name string) ID {
	if i := s.backgroundIndex(); i >= 0 {
		bg := s.layers[i]
		bg.Bitmap = bm
		bg.Source = source
		bg.Name = name
		return bg.ID
	}
	l := &Layer{
		ID:        NewID(KindBackground),
		Kind:      KindBackground,
		Bitmap:    bm,
		Source:    source,
		Transform: compose.IdentityTransform(),
		Label:     KindBackground.DefaultLabel(),
		Name:      name,
	}
	s.insert(l)
	return l.ID
}

// Remove deletes the layer with the given id. It reports whether a layer
// was removed; removing an unknown id is a no-op.
func (s *Stack) Remove(id ID) bool {
	i := s.Index(id)
	if i < 0 {
		return false
	}
	copy(s.layers[i:], s.layers[i+1:])
	s.layers[len(s.layers)-1] = nil
	s.layers = s.layers[:len(s.layers)-1]
	return true
}

// UpdateTransform merges p into the transform of the layer with the given
// id. It reports whether the layer exists; unknown ids are a no-op.
func (s *Stack) UpdateTransform(id ID, p compose.Partial) bool {
	i := s.Index(id)
	if i < 0 {
		return false
	}
	l := s.layers[i]
	if l.Kind == KindBackground {
		// Backgrounds are full-bleed; their transform is implicitly identity.
		return true
	}
	l.Transform = l.Transform.Merge(p)
	return true
}

// SetBitmap rebinds the bitmap of the layer with the given id.
func (s *Stack) SetBitmap(id ID, bm Bitmap) bool {
	i := s.Index(id)
	if i < 0 {
		return false
	}
	s.layers[i].Bitmap = bm
	return true
}

// Move removes the layer at source and reinserts it at target, where target
// is an index into the stack after the removal. Both indices are clamped;
// target is further clamped so that a pinned background stays pinned.
// Moving the background itself is a no-op. Move reports whether the order
// changed.
func (s *Stack) Move(source, target int) bool {
	n := len(s.layers)
	if n < 2 {
		return false
	}
	source = clamp(source, 0, n-1)
	l := s.layers[source]
	if l.Kind == KindBackground {
		return false
	}

	rest := make([]*Layer, 0, n)
	rest = append(rest, s.layers[:source]...)
	rest = append(rest, s.layers[source+1:]...)

	lo, hi := 0, len(rest)
	if bg := indexOfKind(rest, KindBackground); bg >= 0 {
		if s.backgroundInFront {
			hi = bg
		} else {
			lo = bg + 1
		}
	}
	target = clamp(target, lo, hi)
	if target == source {
		return false
	}

	rest = append(rest, nil)
	copy(rest[target+1:], rest[target:])
	rest[target] = l
	s.layers = rest
	return true
}

func (s *Stack) insert(l *Layer) {
	switch l.Kind {
	case KindBackground:
		if s.backgroundInFront {
			s.layers = append(s.layers, l)
		} else {
			s.layers = append([]*Layer{l}, s.layers...)
		}
	case KindStamp:
		if bg := s.backgroundIndex(); bg >= 0 && s.backgroundInFront {
			s.layers = append(s.layers, nil)
			copy(s.layers[bg+1:], s.layers[bg:])
			s.layers[bg] = l
			return
		}
		s.layers = append(s.layers, l)
	}
}

// normalize moves the background to its pinned end.
func (s *Stack) normalize() {
	i := s.backgroundIndex()
	if i < 0 {
		return
	}
	bg := s.layers[i]
	s.layers = append(s.layers[:i], s.layers[i+1:]...)
	s.insert(bg)
}

func (s *Stack) backgroundIndex() int {
	return indexOfKind(s.layers, KindBackground)
}

func indexOfKind(ls []*Layer, k Kind) int {
	for i, l := range ls {
		if l.Kind == k {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
