// Package seatstyle computes the visual presentation of a single seat from
// its bound data and interaction state. The computation is pure so it can be
// rendered anywhere and tested exhaustively.
package seatstyle

import (
	"boxoffice/internal/venue/models"
	"boxoffice/pkg/colors"
)

// Radius is the fixed seat radius in drawing units.
const Radius = 25

// Derived sizes for the seat label and the carted check icon.
const (
	TextSize = Radius * 0.65
	IconSize = Radius * 0.75
)

// soldOutFill is the neutral gray used for seats with no capacity left.
var soldOutFill = colors.MustParse("#DEE2E6")

// Interaction classifies how the seat responds to the pointer.
type Interaction string

const (
	// InteractionSelectable marks a seat that can be clicked to select or
	// unselect it.
	InteractionSelectable Interaction = "selectable"
	// InteractionNotAllowed marks a sold-out seat that cannot be selected.
	InteractionNotAllowed Interaction = "not-allowed"
)

// Appearance is the resolved presentation of one seat.
type Appearance struct {
	Fill        string      `json:"fill"`
	Stroke      string      `json:"stroke"`
	StrokeWidth float64     `json:"strokeWidth"`
	Foreground  string      `json:"foreground"`
	Interaction Interaction `json:"interaction"`
	Pulse       bool        `json:"pulse"`
}

// State is the interaction state the appearance depends on.
type State struct {
	Selected bool
	Carted   bool
}

// Compute resolves the appearance of a seat. Overrides apply in a fixed
// order: base, selected, carted, sold out, selected while sold out. Later
// overrides win so a sold-out seat looks unavailable even when selected.
func Compute(seat models.BoundSeat, state State) Appearance {
	primary, err := colors.Parse(seat.Category.Color)
	if err != nil {
		primary = colors.Black
	}

	soldOut := seat.Seat.SoldOut()

	app := Appearance{
		Fill:        primary.Hex(),
		Stroke:      "none",
		StrokeWidth: 0,
		Foreground:  colors.Foreground(primary).Hex(),
		Interaction: InteractionSelectable,
	}

	if state.Selected {
		lightened := primary.Lighten(0.85)
		app.Fill = lightened.Hex()
		app.Foreground = colors.Foreground(lightened).Hex()
		app.Stroke = primary.Hex()
		app.StrokeWidth = Radius / 10.0
	}

	if state.Carted {
		lightened := primary.Lighten(0.85)
		app.Fill = lightened.Hex()
		app.Foreground = colors.Foreground(lightened).Hex()
		app.Stroke = primary.Hex()
		app.StrokeWidth = Radius / 10.0
		app.Pulse = true
	}

	if soldOut && !state.Selected {
		app.Fill = soldOutFill.Hex()
		app.Foreground = colors.Foreground(soldOutFill).Fade(0.5).Hex()
		app.Stroke = "none"
		app.StrokeWidth = 0
		app.Interaction = InteractionNotAllowed
	}

	if state.Selected && soldOut {
		app.Fill = soldOutFill.Hex()
		app.Stroke = colors.Foreground(soldOutFill).Fade(0.5).Hex()
		app.StrokeWidth = Radius / 10.0
	}

	return app
}
