// Package binding fuses the venue's vector drawing with its seat, category
// and ticket data. The drawing is treated as untrusted input: anything the
// resolver cannot bind passes through unchanged with a diagnostic, while
// inconsistencies in the venue data itself abort the bind.
package binding

import (
	"fmt"
	"strconv"
	"strings"

	"boxoffice/internal/venue/models"
	id "boxoffice/pkg/domain"
	dErrors "boxoffice/pkg/domain-errors"
	"boxoffice/pkg/strictmap"
	"boxoffice/pkg/svgdoc"
)

// SeatIDAttr is the attribute added to drawing nodes that resolved to a seat.
const SeatIDAttr = "data-seat-id"

const seatContainerMarker = "seats:"

// Defaults supplies fallback values for drawings that omit them.
type Defaults struct {
	Width      float64
	Height     float64
	Background string
}

// Diagnostic records a recoverable oddity found while binding. The bind still
// succeeds; the offending node is left exactly as it was in the drawing.
type Diagnostic struct {
	NodeID string `json:"nodeId"`
	Detail string `json:"detail"`
}

// Result is a fully bound drawing.
type Result struct {
	Width       float64
	Height      float64
	Background  string
	Root        *svgdoc.Node
	Seats       *strictmap.Map[id.SeatID, models.BoundSeat]
	Diagnostics []Diagnostic
}

// Resolver binds drawings against one venue's data.
type Resolver struct {
	venue      *models.Venue
	categories map[id.CategoryID]models.Category
	tickets    map[id.TicketID]models.Ticket
	byRowPlace map[string]models.Seat
}

// NewResolver indexes the venue for binding.
func NewResolver(venue *models.Venue) *Resolver {
	r := &Resolver{
		venue:      venue,
		categories: make(map[id.CategoryID]models.Category, len(venue.Categories)),
		tickets:    make(map[id.TicketID]models.Ticket, len(venue.Tickets)),
		byRowPlace: make(map[string]models.Seat, len(venue.Seats)),
	}
	for _, c := range venue.Categories {
		r.categories[c.CategoryID] = c
	}
	for _, t := range venue.Tickets {
		r.tickets[t.TicketID] = t
	}
	for _, s := range venue.Seats {
		r.byRowPlace[rowPlaceKey(s.Row, s.Place)] = s
	}
	return r
}

// Bind parses the drawing and resolves its seat references.
func (r *Resolver) Bind(drawing string, defaults Defaults) (*Result, error) {
	root, err := svgdoc.ParseString(drawing)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Root:       root,
		Seats:      strictmap.New[id.SeatID, models.BoundSeat](),
		Background: defaults.Background,
	}
	res.Width, res.Height = r.baseSize(root, defaults)

	if fill, ok := root.Attr("fill"); ok && fill != "none" {
		res.Background = fill
	}

	b := &bindState{res: res, seatNodes: make(map[id.SeatID]*svgdoc.Node)}
	if err := r.bindNode(root, b); err != nil {
		return nil, err
	}
	return res, nil
}

type bindState struct {
	res       *Result
	seatNodes map[id.SeatID]*svgdoc.Node
}

// ProjectSeat resolves a seat's category and per-category ticket prices.
// A dangling reference means the venue data itself is inconsistent.
func (r *Resolver) ProjectSeat(seat models.Seat) (models.BoundSeat, error) {
	category, ok := r.categories[seat.CategoryID]
	if !ok {
		return models.BoundSeat{}, dErrors.Newf(dErrors.CodeDataIntegrity,
			"seat %s references unknown category %s", seat.FullName, seat.CategoryID)
	}

	bound := models.BoundSeat{Seat: seat, Category: category}
	for _, ticketID := range seat.Tickets {
		ticket, ok := r.tickets[ticketID]
		if !ok {
			return models.BoundSeat{}, dErrors.Newf(dErrors.CodeDataIntegrity,
				"seat %s references unknown ticket %s", seat.FullName, ticketID)
		}
		price, ok := ticket.CategoryPrice(seat.CategoryID)
		if !ok {
			return models.BoundSeat{}, dErrors.Newf(dErrors.CodeDataIntegrity,
				"ticket %s has no price for category %s", ticket.Name, category.Name)
		}
		bound.Tickets = append(bound.Tickets, models.BoundTicket{
			TicketID:    ticket.TicketID,
			Name:        ticket.Name,
			Description: ticket.Description,
			Price:       price,
		})
	}
	return bound, nil
}

// baseSize derives the drawing's native size: explicit width/height attributes
// win, then the viewBox extent, then the caller's defaults.
func (r *Resolver) baseSize(root *svgdoc.Node, defaults Defaults) (float64, float64) {
	w, werr := root.FloatAttr("width")
	h, herr := root.FloatAttr("height")
	if werr == nil && herr == nil {
		return w, h
	}
	if _, _, vbW, vbH, err := root.ViewBox(); err == nil {
		return vbW, vbH
	}
	return defaults.Width, defaults.Height
}

// bindNode walks the tree looking for seat containers. Only the direct
// children of a container are treated as seat references.
func (r *Resolver) bindNode(node *svgdoc.Node, b *bindState) error {
	if node.Tag == "g" && strings.Contains(node.ID(), seatContainerMarker) {
		for _, child := range node.Children {
			if err := r.bindSeatRef(child, b); err != nil {
				return err
			}
		}
		return nil
	}

	for _, child := range node.Children {
		if err := r.bindNode(child, b); err != nil {
			return err
		}
	}
	return nil
}

// bindSeatRef resolves one child of a seat container. The child's id encodes
// "<prefix>:<row>+<place>"; anything that does not parse or does not match a
// known seat is left alone and reported.
func (r *Resolver) bindSeatRef(node *svgdoc.Node, b *bindState) error {
	if node.IsText() {
		return nil
	}
	nodeID := node.ID()
	if nodeID == "" {
		b.res.Diagnostics = append(b.res.Diagnostics, Diagnostic{
			Detail: fmt.Sprintf("element %q in seat container has no id", node.Tag),
		})
		return nil
	}

	row, place, ok := parseSeatRef(nodeID)
	if !ok {
		b.res.Diagnostics = append(b.res.Diagnostics, Diagnostic{
			NodeID: nodeID,
			Detail: fmt.Sprintf("malformed seat reference %q", nodeID),
		})
		return nil
	}

	seat, ok := r.byRowPlace[rowPlaceKey(row, place)]
	if !ok {
		b.res.Diagnostics = append(b.res.Diagnostics, Diagnostic{
			NodeID: nodeID,
			Detail: fmt.Sprintf("no seat for row %s place %d", row, place),
		})
		return nil
	}

	bound, err := r.ProjectSeat(seat)
	if err != nil {
		return err
	}

	// Duplicate references keep the later node in document order.
	if prev, ok := b.seatNodes[seat.SeatID]; ok {
		prev.RemoveAttr(SeatIDAttr)
		b.res.Diagnostics = append(b.res.Diagnostics, Diagnostic{
			NodeID: nodeID,
			Detail: fmt.Sprintf("duplicate reference to seat %s, keeping the later node", seat.FullName),
		})
	}
	b.res.Seats.Set(seat.SeatID, bound)
	b.seatNodes[seat.SeatID] = node
	node.SetAttr(SeatIDAttr, seat.SeatID.String())
	return nil
}

// parseSeatRef splits "<prefix>:<row>+<place>".
func parseSeatRef(nodeID string) (row string, place int, ok bool) {
	_, ref, found := strings.Cut(nodeID, ":")
	if !found {
		return "", 0, false
	}
	row, placeStr, found := strings.Cut(ref, "+")
	if !found || row == "" {
		return "", 0, false
	}
	place, err := strconv.Atoi(placeStr)
	if err != nil {
		return "", 0, false
	}
	return row, place, true
}

func rowPlaceKey(row string, place int) string {
	return row + "+" + strconv.Itoa(place)
}
