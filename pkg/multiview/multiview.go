// Package multiview implements a linear flow of named views with declarative
// per-view predicates (enabled / visible / selectable / loading).
//
// The machine is deliberately permissive: ChangeView never blocks a
// transition. Policy lives in the predicates and mechanism in the transition,
// so callers that must gate a move consult ViewIs first. The trade-off is
// that the machine stays generic while hosts keep full control over when a
// transition is legal.
package multiview

import (
	dErrors "boxoffice/pkg/domain-errors"
	"boxoffice/pkg/strictmap"
)

// Prop names one of the four per-view predicates.
type Prop string

const (
	PropEnabled    Prop = "enabled"
	PropVisible    Prop = "visible"
	PropSelectable Prop = "selectable"
	PropLoading    Prop = "loading"
)

// Helpers are passed to computed predicates so they can reason about flow
// position without reaching back into the machine.
type Helpers[V comparable] struct {
	// GetIndex returns the configured index of a view, -1 when absent.
	GetIndex func(view V) int
	// IsSameOrAfter reports whether the given view is at or before the active
	// view in configuration order.
	IsSameOrAfter func(view V) bool
}

// Check is a computed predicate evaluated against the active view.
type Check[V comparable] func(active V, h Helpers[V]) bool

// Predicate is a tagged variant: either a static boolean or a function of the
// current state, evaluated lazily per query since the supporting state can
// change between queries. The zero value is Static(false).
type Predicate[V comparable] struct {
	static bool
	check  Check[V]
}

// Static builds a constant predicate.
func Static[V comparable](v bool) Predicate[V] {
	return Predicate[V]{static: v}
}

// Computed builds a predicate evaluated at query time.
func Computed[V comparable](check Check[V]) Predicate[V] {
	return Predicate[V]{check: check}
}

// ViewConfig declares one view of the flow.
type ViewConfig[V comparable] struct {
	View       V
	Enabled    Predicate[V]
	Visible    Predicate[V]
	Selectable Predicate[V]
	Loading    Predicate[V]
}

func (c ViewConfig[V]) predicate(prop Prop) Predicate[V] {
	switch prop {
	case PropEnabled:
		return c.Enabled
	case PropVisible:
		return c.Visible
	case PropSelectable:
		return c.Selectable
	default:
		return c.Loading
	}
}

// Meta is the derived per-view state.
type Meta struct {
	Enabled    bool `json:"enabled"`
	Visible    bool `json:"visible"`
	Selectable bool `json:"selectable"`
	Loading    bool `json:"loading"`
	First      bool `json:"first"`
	Last       bool `json:"last"`
}

// Progress describes how far along the visible flow the active view is.
type Progress struct {
	Percent          int `json:"percent"`
	CurrentStepIndex int `json:"currentStepIndex"`
	LastStepIndex    int `json:"lastStepIndex"`
}

// Machine is the navigation state machine. Not safe for concurrent use; session
// state serializes access.
type Machine[V comparable] struct {
	views    []ViewConfig[V]
	active   V
	onChange func(view V)
}

// Option configures a Machine.
type Option[V comparable] func(*Machine[V])

// WithOnChange registers a transition side-effect callback.
func WithOnChange[V comparable](fn func(view V)) Option[V] {
	return func(m *Machine[V]) { m.onChange = fn }
}

// New creates a machine with the given initial view and ordered view list. An
// empty view list is permitted; helpers that need it fail with an
// invalid-state error at first use.
func New[V comparable](initial V, views []ViewConfig[V], opts ...Option[V]) *Machine[V] {
	m := &Machine[V]{views: views, active: initial}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ActiveView returns the current view.
func (m *Machine[V]) ActiveView() V {
	return m.active
}

// ChangeView unconditionally sets the active view and fires the transition
// callback. The machine does not block disallowed transitions; callers consult
// ViewIs beforehand.
func (m *Machine[V]) ChangeView(view V) {
	m.active = view
	if m.onChange != nil {
		m.onChange(view)
	}
}

func (m *Machine[V]) requireViews(op string) error {
	if len(m.views) == 0 {
		return dErrors.Newf(dErrors.CodeInvalidState, "multiview: cannot use %s, no view list configured", op)
	}
	return nil
}

func (m *Machine[V]) indexOf(view V) int {
	for i, v := range m.views {
		if v.View == view {
			return i
		}
	}
	return -1
}

func (m *Machine[V]) helpers() Helpers[V] {
	return Helpers[V]{
		GetIndex: m.indexOf,
		IsSameOrAfter: func(view V) bool {
			return m.indexOf(view) <= m.indexOf(m.active)
		},
	}
}

// Is evaluates a predicate against the current state.
func (m *Machine[V]) Is(p Predicate[V]) bool {
	if p.check == nil {
		return p.static
	}
	return p.check(m.active, m.helpers())
}

// Position returns the index of the view among visible views (-1 when the view
// is not visible) and the count of visible views.
func (m *Machine[V]) Position(view V) (index, total int, err error) {
	if err := m.requireViews("Position"); err != nil {
		return 0, 0, err
	}
	index = -1
	for _, v := range m.views {
		if !m.Is(v.Visible) {
			continue
		}
		if v.View == view {
			index = total
		}
		total++
	}
	return index, total, nil
}

// ViewIs returns the derived meta state of a view.
func (m *Machine[V]) ViewIs(view V) (Meta, error) {
	if err := m.requireViews("ViewIs"); err != nil {
		return Meta{}, err
	}
	i := m.indexOf(view)
	if i < 0 {
		return Meta{}, nil
	}
	cfg := m.views[i]
	enabled := m.Is(cfg.Enabled)

	pos, total, err := m.Position(view)
	if err != nil {
		return Meta{}, err
	}
	return Meta{
		Enabled:    enabled,
		Visible:    m.Is(cfg.Visible),
		Selectable: enabled && m.Is(cfg.Selectable),
		Loading:    m.Is(cfg.Loading),
		First:      pos == 0,
		Last:       total > 0 && pos == total-1,
	}, nil
}

// GetNext scans forward from the given view and returns the first later view
// whose named predicate holds. When none matches, the given view is returned
// unchanged; the boundary is a no-op, not an error.
func (m *Machine[V]) GetNext(prop Prop, from V) (V, error) {
	if err := m.requireViews("GetNext"); err != nil {
		return from, err
	}
	for _, v := range m.views[m.indexOf(from)+1:] {
		if m.Is(v.predicate(prop)) {
			return v.View, nil
		}
	}
	return from, nil
}

// GetPrev scans backward from the given view and returns the first earlier view
// whose named predicate holds, or the given view unchanged when none matches.
func (m *Machine[V]) GetPrev(prop Prop, from V) (V, error) {
	if err := m.requireViews("GetPrev"); err != nil {
		return from, err
	}
	i := m.indexOf(from)
	if i < 0 {
		i = len(m.views)
	}
	for j := i - 1; j >= 0; j-- {
		if m.Is(m.views[j].predicate(prop)) {
			return m.views[j].View, nil
		}
	}
	return from, nil
}

// Progress computes flow progress over visible views:
// (index of active among visible + 1) / (count of visible) * 100.
func (m *Machine[V]) Progress() (Progress, error) {
	index, total, err := m.Position(m.active)
	if err != nil {
		return Progress{}, err
	}
	percent := 0
	if total > 0 {
		percent = int(float64(index+1)/float64(total)*100 + 0.5)
	}
	return Progress{
		Percent:          percent,
		CurrentStepIndex: index,
		LastStepIndex:    total - 1,
	}, nil
}

// StepsWithMeta snapshots the meta state of every configured view, in
// configuration order.
func (m *Machine[V]) StepsWithMeta() (*strictmap.Map[V, Meta], error) {
	if err := m.requireViews("StepsWithMeta"); err != nil {
		return nil, err
	}
	out := strictmap.New[V, Meta]()
	for _, v := range m.views {
		meta, err := m.ViewIs(v.View)
		if err != nil {
			return nil, err
		}
		out.Set(v.View, meta)
	}
	return out, nil
}
