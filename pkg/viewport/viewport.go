// Package viewport implements the pan/zoom/rotate transform applied to a
// rendered venue diagram.
//
// The engine is a pure state machine: gestures and programmatic controls set
// spring targets, an explicit Step(dt) relaxes the current transform toward
// them, and the host applies State() to its coordinate space each frame. No
// render loop or clock is owned here, so behavior is fully testable.
//
// Transform origin is the content's top-left corner (0, 0), matching vector
// drawing semantics: a content point p renders at screen position
// (x + p.x*scale, y + p.y*scale).
//
// The engine is single-goroutine by design; callers drive it from one
// event/animation loop.
package viewport

import (
	dErrors "boxoffice/pkg/domain-errors"
)

// Default scale factor bounds. minScale = viewportWidth/(contentWidth*MinScaleFactor),
// maxScale = viewportWidth/(contentWidth*MaxScaleFactor).
const (
	DefaultMinScaleFactor = 1.15
	DefaultMaxScaleFactor = 0.35

	// initialScaleRatio and restScaleRatio shape the mount animation: the
	// content springs from a near-zero scale up to just above minScale.
	initialScaleRatio = 0.1
	restScaleRatio    = 1.025
)

// State is the continuous transform owned by the engine. Never persisted.
type State struct {
	X         float64
	Y         float64
	Scale     float64
	RotationZ float64
}

// Config describes the host geometry and behavior toggles.
type Config struct {
	// ViewportWidth/Height is the display surface size, the only external
	// geometry input.
	ViewportWidth  float64
	ViewportHeight float64
	// ContentWidth/Height is the drawing's native (unscaled) size.
	ContentWidth  float64
	ContentHeight float64
	// MinScaleFactor/MaxScaleFactor derive the scale clamp; zero values take
	// the defaults.
	MinScaleFactor float64
	MaxScaleFactor float64
	// WithRotation enables z-axis rotation from pinch gestures. When false,
	// rotation is held at zero regardless of gesture input.
	WithRotation bool
}

// Engine owns the viewport transform.
type Engine struct {
	cfg Config

	x, y, scale, rotation spring

	minScale float64
	maxScale float64

	dragging  bool
	pinching  bool
	pinchMemo pinchMemo
}

// pinchMemo captures the gesture-start snapshot that anchors zoom at the pinch
// origin.
type pinchMemo struct {
	x, y float64 // transform at pinch start
	tx   float64 // pivot offset from content origin, in screen pixels
	ty   float64
	s0   float64 // scale at pinch start
}

// New creates an engine and starts the mount animation: the content springs
// from a near-zero scale to minScale*1.025, centered in the viewport.
func New(cfg Config) (*Engine, error) {
	if cfg.ViewportWidth <= 0 || cfg.ViewportHeight <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidGeometry, "viewport dimensions must be positive")
	}
	if cfg.ContentWidth <= 0 || cfg.ContentHeight <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidGeometry, "content dimensions must be positive")
	}
	if cfg.MinScaleFactor == 0 {
		cfg.MinScaleFactor = DefaultMinScaleFactor
	}
	if cfg.MaxScaleFactor == 0 {
		cfg.MaxScaleFactor = DefaultMaxScaleFactor
	}

	e := &Engine{cfg: cfg}
	e.computeScaleBounds()

	initial := e.minScale * initialScaleRatio
	e.scale.jump(initial)
	e.x.jump(e.centeredX(initial))
	e.y.jump(e.centeredY(initial))
	e.rotation.jump(0)

	e.retargetCentered(e.minScale * restScaleRatio)
	return e, nil
}

func (e *Engine) computeScaleBounds() {
	e.minScale = e.cfg.ViewportWidth / (e.cfg.ContentWidth * e.cfg.MinScaleFactor)
	e.maxScale = e.cfg.ViewportWidth / (e.cfg.ContentWidth * e.cfg.MaxScaleFactor)
}

func (e *Engine) centeredX(scale float64) float64 {
	return e.cfg.ViewportWidth/2 - e.cfg.ContentWidth*scale/2
}

func (e *Engine) centeredY(scale float64) float64 {
	return e.cfg.ViewportHeight/2 - e.cfg.ContentHeight*scale/2
}

func (e *Engine) retargetCentered(scale float64) {
	e.scale.target = scale
	e.x.target = e.centeredX(scale)
	e.y.target = e.centeredY(scale)
	e.rotation.target = 0
}

// MinScale returns the lower scale clamp.
func (e *Engine) MinScale() float64 { return e.minScale }

// MaxScale returns the upper scale clamp.
func (e *Engine) MaxScale() float64 { return e.maxScale }

// State returns the current (animated) transform.
func (e *Engine) State() State {
	return State{X: e.x.value, Y: e.y.value, Scale: e.scale.value, RotationZ: e.rotation.value}
}

// Target returns the transform the springs are relaxing toward.
func (e *Engine) Target() State {
	return State{X: e.x.target, Y: e.y.target, Scale: e.scale.target, RotationZ: e.rotation.target}
}

// Step advances the animation by dt seconds and returns the new state. Gesture
// input may retarget the springs between any two steps; the integration never
// has to settle first.
func (e *Engine) Step(dt float64) State {
	e.x.step(dt)
	e.y.step(dt)
	e.scale.step(dt)
	e.rotation.step(dt)
	return e.State()
}

// Settled reports whether all springs have reached their targets.
func (e *Engine) Settled() bool {
	return e.x.settled() && e.y.settled() && e.scale.settled() && e.rotation.settled()
}

// Resize updates host or content geometry, recomputes the scale clamp, and
// re-centers the content at the rest scale.
func (e *Engine) Resize(viewportWidth, viewportHeight, contentWidth, contentHeight float64) error {
	if viewportWidth <= 0 || viewportHeight <= 0 || contentWidth <= 0 || contentHeight <= 0 {
		return dErrors.New(dErrors.CodeInvalidGeometry, "resize dimensions must be positive")
	}
	e.cfg.ViewportWidth = viewportWidth
	e.cfg.ViewportHeight = viewportHeight
	e.cfg.ContentWidth = contentWidth
	e.cfg.ContentHeight = contentHeight
	e.computeScaleBounds()
	e.retargetCentered(e.minScale * restScaleRatio)
	return nil
}

// DragStart begins a pan gesture. A drag cannot start while a pinch is active.
func (e *Engine) DragStart() bool {
	if e.pinching {
		return false
	}
	e.dragging = true
	return true
}

// Drag sets the pan target to the gesture offset. Returns false when the drag
// has been cancelled (a pinch supersedes any drag in flight).
func (e *Engine) Drag(offsetX, offsetY float64) bool {
	if e.pinching || !e.dragging {
		return false
	}
	e.x.target = offsetX
	e.y.target = offsetY
	return true
}

// DragEnd finishes the pan gesture.
func (e *Engine) DragEnd() {
	e.dragging = false
}

// PinchStart begins a zoom gesture anchored at the given screen position. The
// pivot offset against the content's current screen rectangle is captured once
// and reused for every update of this gesture. Any in-flight drag is cancelled.
func (e *Engine) PinchStart(originX, originY float64) {
	e.dragging = false
	e.pinching = true
	e.pinchMemo = pinchMemo{
		x:  e.x.value,
		y:  e.y.value,
		tx: originX - e.x.value,
		ty: originY - e.y.value,
		s0: e.scale.value,
	}
}

// PinchUpdate applies a gesture update with the desired absolute scale and
// rotation. Scale is hard-clamped to [MinScale, MaxScale]; x/y are derived so
// the pivot point stays visually stationary under the new scale. Rotation input
// is ignored unless rotation is enabled.
func (e *Engine) PinchUpdate(scale, rotation float64) {
	if !e.pinching {
		return
	}
	clamped := e.clampScale(scale)
	ms := clamped / e.pinchMemo.s0

	e.scale.target = clamped
	e.x.target = e.pinchMemo.x - (ms-1)*e.pinchMemo.tx
	e.y.target = e.pinchMemo.y - (ms-1)*e.pinchMemo.ty
	if e.cfg.WithRotation {
		e.rotation.target = rotation
	} else {
		e.rotation.target = 0
	}
}

// PinchEnd finishes the zoom gesture.
func (e *Engine) PinchEnd() {
	e.pinching = false
}

// ZoomBy adds a fixed increment to the current scale (clamped) and shifts x/y
// proportionally to the content's native dimensions so the zoom reads as
// centered on the content.
func (e *Engine) ZoomBy(increment float64) {
	scale := e.clampScale(e.scale.value + increment)
	applied := scale - e.scale.value

	e.scale.target = scale
	e.x.target = e.x.value - e.cfg.ContentWidth*applied/2
	e.y.target = e.y.value - e.cfg.ContentHeight*applied/2
}

func (e *Engine) clampScale(s float64) float64 {
	if s < e.minScale {
		return e.minScale
	}
	if s > e.maxScale {
		return e.maxScale
	}
	return s
}
