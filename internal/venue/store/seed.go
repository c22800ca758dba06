package store

import (
	"fmt"
	"strings"

	"boxoffice/internal/venue/models"
	id "boxoffice/pkg/domain"
)

// Seat layout constants for the generated demo drawing. The drawing uses a
// 50-unit seat diameter on a 60-unit pitch.
const (
	seatSize  = 50
	seatPitch = 60
	blockGap  = 80
	stageGap  = 120
)

// SeedVenue builds the demo venue served when no external store is
// configured: three pricing zones, three ticket types and a generated
// seating-map drawing whose seat nodes reference seats by row and place.
func SeedVenue() *models.Venue {
	categoryBalcony := models.Category{
		CategoryID:  id.NewCategoryID(),
		Name:        "Balcony",
		Description: "Elevated seating with a full view of the stage.",
		Color:       "#1570EFFF",
	}
	categorySide := models.Category{
		CategoryID:  id.NewCategoryID(),
		Name:        "Side",
		Description: "Seating along the sides of the main floor.",
		Color:       "#EE46BCFF",
	}
	categoryMiddle := models.Category{
		CategoryID:  id.NewCategoryID(),
		Name:        "Middle",
		Description: "Center seating closest to the stage.",
		Color:       "#FB6514FF",
	}

	ticketRegular := models.Ticket{
		TicketID:    id.NewTicketID(),
		Name:        "Regular Ticket",
		Description: "Standard admission.",
		Price:       1990_00,
		Categories: []models.TicketCategoryPrice{
			{CategoryID: categoryMiddle.CategoryID, Price: 1990_00},
			{CategoryID: categorySide.CategoryID, Price: 1490_00},
			{CategoryID: categoryBalcony.CategoryID, Price: 990_00},
		},
	}
	ticketVIP := models.Ticket{
		TicketID:    id.NewTicketID(),
		Name:        "VIP Ticket",
		Description: "Priority entry and a welcome drink.",
		Price:       2990_00,
		Categories: []models.TicketCategoryPrice{
			{CategoryID: categoryMiddle.CategoryID, Price: 2990_00},
			{CategoryID: categorySide.CategoryID, Price: 2490_00},
			{CategoryID: categoryBalcony.CategoryID, Price: 1990_00},
		},
	}
	ticketVIPPlus := models.Ticket{
		TicketID:    id.NewTicketID(),
		Name:        "VIP+ Ticket",
		Description: "Front-row access with backstage tour.",
		Price:       3990_00,
		Categories: []models.TicketCategoryPrice{
			{CategoryID: categoryMiddle.CategoryID, Price: 3990_00},
		},
	}

	var seats []models.Seat

	// Side blocks flank the middle block; the balcony sits behind.
	for _, row := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		for place := 1; place <= 6; place++ {
			tickets := []id.TicketID{ticketRegular.TicketID}
			if row == "A" || row == "B" {
				tickets = []id.TicketID{ticketVIP.TicketID}
			}
			seats = append(seats, newSeat(row, place, 1, tickets, categorySide.CategoryID))
		}
	}
	for _, row := range []string{"B", "C", "D", "E", "F"} {
		for place := 7; place <= 11; place++ {
			tickets := []id.TicketID{ticketRegular.TicketID}
			if row == "B" || row == "C" {
				tickets = []id.TicketID{ticketVIPPlus.TicketID, ticketVIP.TicketID}
			}
			seats = append(seats, newSeat(row, place, 1, tickets, categoryMiddle.CategoryID))
		}
	}
	for _, row := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		for place := 12; place <= 17; place++ {
			tickets := []id.TicketID{ticketRegular.TicketID}
			if row == "A" || row == "B" {
				tickets = []id.TicketID{ticketVIP.TicketID}
			}
			seats = append(seats, newSeat(row, place, 1, tickets, categorySide.CategoryID))
		}
	}
	for _, row := range []string{"H", "I", "J", "K", "L"} {
		for place := 1; place <= 20; place++ {
			tickets := []id.TicketID{ticketRegular.TicketID}
			if (row == "H" || row == "I") && place >= 8 && place <= 14 {
				tickets = []id.TicketID{ticketVIP.TicketID}
			}
			capacity := 1
			if place%4 == 0 {
				capacity = 0
			}
			seats = append(seats, newSeat(row, place, capacity, tickets, categoryBalcony.CategoryID))
		}
	}

	return &models.Venue{
		VenueID:    id.NewVenueID(),
		Name:       "Seating map",
		Seats:      seats,
		Categories: []models.Category{categoryBalcony, categorySide, categoryMiddle},
		Tickets:    []models.Ticket{ticketRegular, ticketVIP, ticketVIPPlus},
		Drawing:    demoDrawing(),
	}
}

func newSeat(row string, place, capacity int, tickets []id.TicketID, categoryID id.CategoryID) models.Seat {
	return models.Seat{
		SeatID:       id.NewSeatID(),
		Row:          row,
		Place:        place,
		CapacityLeft: capacity,
		FullName:     fmt.Sprintf("%s%d", row, place),
		Tickets:      tickets,
		CategoryID:   categoryID,
	}
}

// demoDrawing generates the seating-map drawing for the demo venue. The
// root fill is none so the host background shows through.
func demoDrawing() string {
	floorTop := stageGap
	rowIndex := func(row string) int { return int(row[0] - 'A') }

	var b strings.Builder

	width := 18*seatPitch + 2*blockGap
	floorHeight := 7 * seatPitch
	balconyTop := floorTop + floorHeight + blockGap
	height := balconyTop + 5*seatPitch + blockGap

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" fill="none">`, width, height)
	fmt.Fprintf(&b, `<rect id="stage" x="%d" y="20" width="%d" height="60" rx="8" fill="#444444"/>`, 6*seatPitch, 6*seatPitch)
	b.WriteString(`<text id="stage-label" x="0" y="0">STAGE</text>`)

	writeBlock := func(groupID string, rows []string, fromPlace, toPlace, xShift, top int, yOf func(string) int) {
		fmt.Fprintf(&b, `<g id="%s">`, groupID)
		for _, row := range rows {
			for place := fromPlace; place <= toPlace; place++ {
				x := xShift + (place-fromPlace)*seatPitch
				y := top + yOf(row)*seatPitch
				fmt.Fprintf(&b, `<rect id="seat:%s+%d" x="%d" y="%d" width="%d" height="%d" rx="%d"/>`,
					row, place, x, y, seatSize, seatSize, seatSize/2)
			}
		}
		b.WriteString(`</g>`)
	}

	writeBlock("seats:left", []string{"A", "B", "C", "D", "E", "F", "G"}, 1, 6,
		0, floorTop, rowIndex)
	writeBlock("seats:middle", []string{"B", "C", "D", "E", "F"}, 7, 11,
		6*seatPitch+blockGap, floorTop, rowIndex)
	writeBlock("seats:right", []string{"A", "B", "C", "D", "E", "F", "G"}, 12, 17,
		11*seatPitch+2*blockGap, floorTop, rowIndex)
	writeBlock("seats:balcony", []string{"H", "I", "J", "K", "L"}, 1, 20,
		0, balconyTop, func(row string) int { return rowIndex(row) - rowIndex("H") })

	b.WriteString(`</svg>`)
	return b.String()
}
