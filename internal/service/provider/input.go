package provider

import (
	"strings"
	"time"

	"github.com/kirinyoku/evently/internal/domain"
)

type TicketTypeInput struct {
	// ID is set for existing ticket types and nil for new ones.
	ID         *int64
	Name       string
	PriceCents int64
	// Quantity is the initial stock of a new ticket type.
	Quantity int
	// AddQuantity is added to the remaining stock of an existing ticket type.
	AddQuantity int
}

type EventInput struct {
	Name            string
	EventType       string
	StartsAt        time.Time
	Description     string
	ImageURL        string
	TeamA           string
	TeamB           string
	StadiumName     string
	Performers      string
	PlaceName       string
	LocationAddress string
	Latitude        *float64
	Longitude       *float64
	FixedPriceCents *int64
	Documents       domain.Documents
	TicketTypes     []TicketTypeInput
}

func (in *EventInput) validate(now time.Time, creating bool) error {
	in.Name = strings.TrimSpace(in.Name)
	in.EventType = strings.TrimSpace(in.EventType)

	switch {
	case in.Name == "":
		return ValidationError{Field: "name", Reason: "is required"}
	case in.EventType == "":
		return ValidationError{Field: "event_type", Reason: "is required"}
	case in.StartsAt.IsZero():
		return ValidationError{Field: "starts_at", Reason: "is required"}
	case creating && !in.StartsAt.After(now):
		return ValidationError{Field: "starts_at", Reason: "must be in the future"}
	case in.FixedPriceCents != nil && *in.FixedPriceCents < 0:
		return ValidationError{Field: "fixed_price", Reason: "must not be negative"}
	}

	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return err
	}

	seen := make(map[int64]bool)
	for _, tt := range in.TicketTypes {
		switch {
		case strings.TrimSpace(tt.Name) == "":
			return ValidationError{Field: "ticket_types.name", Reason: "is required"}
		case tt.PriceCents < 0:
			return ValidationError{Field: "ticket_types.price", Reason: "must not be negative"}
		case tt.Quantity < 0 || tt.AddQuantity < 0:
			return ValidationError{Field: "ticket_types.quantity", Reason: "must not be negative"}
		case tt.ID != nil && creating:
			return ValidationError{Field: "ticket_types.id", Reason: "must be empty for a new event"}
		case tt.ID != nil && seen[*tt.ID]:
			return ValidationError{Field: "ticket_types.id", Reason: "is duplicated"}
		}
		if tt.ID != nil {
			seen[*tt.ID] = true
		}
	}

	return nil
}

func (in *EventInput) apply(e *domain.Event) {
	e.Name = in.Name
	e.EventType = in.EventType
	e.StartsAt = in.StartsAt
	e.Description = in.Description
	e.TeamA = in.TeamA
	e.TeamB = in.TeamB
	e.StadiumName = in.StadiumName
	e.Performers = in.Performers
	e.PlaceName = in.PlaceName
	e.LocationAddress = in.LocationAddress
	e.Latitude = in.Latitude
	e.Longitude = in.Longitude
	e.FixedPriceCents = in.FixedPriceCents

	// Empty upload fields keep what is stored.
	if in.ImageURL != "" {
		e.ImageURL = in.ImageURL
	}

	if len(in.Documents) > 0 {
		if e.Documents == nil {
			e.Documents = domain.Documents{}
		}
		for k, v := range in.Documents {
			e.Documents[k] = v
		}
	}
}

type PlaceInput struct {
	Name         string
	Location     string
	PlaceType    string
	MaxAttendees int
	PriceCents   int64
	ImageURL     string
	Documents    domain.Documents
	Latitude     *float64
	Longitude    *float64
}

func (in *PlaceInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)

	switch {
	case in.Name == "":
		return ValidationError{Field: "name", Reason: "is required"}
	case in.Location == "":
		return ValidationError{Field: "location", Reason: "is required"}
	case strings.TrimSpace(in.PlaceType) == "":
		return ValidationError{Field: "place_type", Reason: "is required"}
	case in.MaxAttendees <= 0:
		return ValidationError{Field: "max_attendees", Reason: "must be positive"}
	case in.PriceCents < 0:
		return ValidationError{Field: "price", Reason: "must not be negative"}
	}

	return validateCoordinates(in.Latitude, in.Longitude)
}

func (in *PlaceInput) apply(p *domain.Place) {
	p.Name = in.Name
	p.Location = in.Location
	p.PlaceType = strings.TrimSpace(in.PlaceType)
	p.MaxAttendees = in.MaxAttendees
	p.PriceCents = in.PriceCents
	p.Latitude = in.Latitude
	p.Longitude = in.Longitude

	if in.ImageURL != "" {
		p.ImageURL = in.ImageURL
	}

	if len(in.Documents) > 0 {
		if p.Documents == nil {
			p.Documents = domain.Documents{}
		}
		for k, v := range in.Documents {
			p.Documents[k] = v
		}
	}
}

func validateCoordinates(lat, lng *float64) error {
	if (lat == nil) != (lng == nil) {
		return ValidationError{Field: "coordinates", Reason: "latitude and longitude go together"}
	}

	if lat != nil && (*lat < -90 || *lat > 90) {
		return ValidationError{Field: "latitude", Reason: "out of range"}
	}

	if lng != nil && (*lng < -180 || *lng > 180) {
		return ValidationError{Field: "longitude", Reason: "out of range"}
	}

	return nil
}
