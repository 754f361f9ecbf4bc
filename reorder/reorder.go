// Package reorder computes drop targets for drag-and-drop reordering of a
// layer list.
//
// The list is addressed in stack index space. While a row is dragged the
// Engine tracks an insertion point: the slot between two rows where the
// dragged row would land. On drop the insertion point is converted into a
// target index in post-removal space and handed to a Mover.
package reorder

import "github.com/gogpu/compose"

// Mover applies a reorder. scene.Scene implements it.
type Mover interface {
	MoveLayer(source, target int)
}

// Engine tracks one list drag gesture. The zero value is not usable; create
// it with New. Engine is NOT safe for concurrent use.
type Engine struct {
	mover  Mover
	source int
	marker int
}

// New creates an engine that commits drops to m.
func New(m Mover) *Engine {
	return &Engine{mover: m, source: -1, marker: -1}
}

// DragStart records the row the gesture started on.
func (e *Engine) DragStart(source int) {
	e.source = source
	e.marker = -1
}

// Dragging reports whether a gesture is in progress.
func (e *Engine) Dragging() bool {
	return e.source >= 0
}

// Source returns the dragged row, or -1.
func (e *Engine) Source() int {
	return e.source
}

// Marker returns the current insertion point, or -1 when no marker is shown.
func (e *Engine) Marker() int {
	return e.marker
}

// DragOver updates the insertion point from the pointer's vertical position
// y over the row at hover, which spans [rowTop, rowTop+rowHeight). The upper
// half of a row inserts above it, the lower half below it. Hovering the
// dragged row itself clears the marker.
func (e *Engine) DragOver(hover int, y, rowTop, rowHeight float64) {
	if e.source < 0 {
		return
	}
	if hover == e.source {
		e.marker = -1
		return
	}
	e.marker = InsertionPoint(hover, y, rowTop, rowHeight)
}

// DragOverTail sets the insertion point to the sentinel after the last of n
// rows.
func (e *Engine) DragOverTail(n int) {
	if e.source < 0 {
		return
	}
	e.marker = n
}

// DragLeave clears the marker when the pointer leaves the list.
func (e *Engine) DragLeave() {
	e.marker = -1
}

// Drop finishes the gesture. The insertion point is the marker if one is
// shown, otherwise index. It reports whether a move was committed. The
// gesture state is cleared either way.
func (e *Engine) Drop(index int) bool {
	defer e.End()
	if e.source < 0 {
		return false
	}
	p := index
	if e.marker >= 0 {
		p = e.marker
	}
	if p == e.source {
		return false
	}
	target := AdjustTarget(e.source, p)
	compose.Logger().Debug("reorder: drop", "source", e.source, "insertion", p, "target", target)
	e.mover.MoveLayer(e.source, target)
	return true
}

// End clears the gesture without committing, for example on cancel.
func (e *Engine) End() {
	e.source = -1
	e.marker = -1
}

// AdjustTarget converts insertion point p into a post-removal target index
// for a row moving from source. Moving up leaves p unaffected; moving down
// shifts it by one because the row's own removal moves later rows up.
func AdjustTarget(source, p int) int {
	if source > p {
		return p
	}
	return max(0, p-1)
}

// InsertionPoint returns the insertion point for a pointer at y over the row
// at hover, without any gesture state.
func InsertionPoint(hover int, y, rowTop, rowHeight float64) int {
	if y-rowTop < rowHeight/2 {
		return hover
	}
	return hover + 1
}
