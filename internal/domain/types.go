package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin           Role = "Admin"
	RoleUser            Role = "User"
	RoleServiceProvider Role = "Service Provider"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleServiceProvider:
		return true
	}
	return false
}

type User struct {
	ID              int64
	UserName        string
	Email           string
	PasswordHash    string `json:"-"`
	FirstName       string
	LastName        string
	BirthDate       *time.Time
	GatewayCustomer *string
	Roles           []Role
	CreatedAt       time.Time
}

func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Documents maps a document kind (e.g. "insurance") to its stored URL.
type Documents map[string]string

type Event struct {
	ID               int64
	OwnerID          int64
	Name             string
	EventType        string
	StartsAt         time.Time
	Description      string
	ImageURL         string
	TeamA            string
	TeamB            string
	StadiumName      string
	Performers       string
	PlaceName        string
	LocationAddress  string
	Latitude         *float64
	Longitude        *float64
	FixedPriceCents  *int64
	Documents        Documents
	GatewayProductID *string
	Approval         Approval
	CreatedAt        time.Time
	UpdatedAt        time.Time
	TicketTypes      []TicketType
}

type TicketType struct {
	ID             int64
	EventID        int64
	Name           string
	PriceCents     int64
	Quantity       int
	Version        int64
	GatewayPriceID *string
}

type Place struct {
	ID           int64
	OwnerID      int64
	Name         string
	Location     string
	PlaceType    string
	MaxAttendees int
	PriceCents   int64
	ImageURL     string
	Documents    Documents
	Latitude     *float64
	Longitude    *float64
	Approval     Approval
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type PlaceAvailability struct {
	ID        int64
	PlaceID   int64
	Date      time.Time
	IsBlocked bool
	Note      string
}

// PlaceCalendar is the display view of a place's unavailable dates.
type PlaceCalendar struct {
	PlaceID  int64
	Blocked  []PlaceAvailability
	Reserved []time.Time
}

type ReservationKind string

const (
	ReservationTickets ReservationKind = "tickets"
	ReservationPlace   ReservationKind = "place"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

type Reservation struct {
	ID           int64
	UserID       int64
	Kind         ReservationKind
	EventID      *int64
	TicketTypeID *int64
	PlaceID      *int64
	ReservedDate *time.Time
	Quantity     int
	TotalCents   int64
	Status       ReservationStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Ticket struct {
	ID            uuid.UUID
	ReservationID int64
	TicketTypeID  int64
	EventID       int64
	UserID        int64
	Code          string
	IsUsed        bool
	UsedAt        *time.Time
	CreatedAt     time.Time
}

// TicketView is a ticket joined with what a holder needs to print it.
type TicketView struct {
	Ticket
	EventName         string
	EventStartsAt     time.Time
	LocationAddress   string
	TicketTypeName    string
	PriceCents        int64
	ReservationStatus ReservationStatus
}

// PlaceReservationView is a place reservation joined with the place it books.
type PlaceReservationView struct {
	Reservation
	PlaceName     string
	PlaceLocation string
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
)

type Payment struct {
	ID             int64
	ReservationID  int64
	UserID         int64
	AmountCents    int64
	Provider       string
	Status         PaymentStatus
	TransactionRef string
	CheckoutURL    string
	CreatedAt      time.Time
	PaidAt         *time.Time
}

type ProviderRequest struct {
	ID          int64
	UserID      int64
	Documents   Documents
	PaymentLink string
	Approval    Approval
	RequestedAt time.Time
	ReviewedAt  *time.Time
}

type EventFilter struct {
	EventType string
	Search    string
	Limit     int
	Offset    int
}

type PlaceFilter struct {
	PlaceType string
	Search    string
	Limit     int
	Offset    int
}

// Day truncates t to its UTC calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
