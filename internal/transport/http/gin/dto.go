package httpgin

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/repository/postgres"
)

const dateLayout = time.DateOnly

var (
	errNegativeAmount = errors.New("amount must not be negative")
	errAmountScale    = errors.New("amount has more than two decimal places")
)

// toCents converts a decimal amount to integer cents.
func toCents(d decimal.Decimal) (int64, error) {
	if d.IsNegative() {
		return 0, errNegativeAmount
	}

	shifted := d.Shift(2)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, errAmountScale
	}

	return shifted.IntPart(), nil
}

func fromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

func optionalCents(d *decimal.Decimal) (*int64, error) {
	if d == nil {
		return nil, nil
	}

	c, err := toCents(*d)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// --- requests ---

type RegisterRequest struct {
	UserName  string `json:"user_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TicketTypeRequest struct {
	ID          *int64          `json:"id"`
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" binding:"gte=0"`
	AddQuantity int             `json:"add_quantity" binding:"gte=0"`
}

type EventRequest struct {
	Name            string              `json:"name" binding:"required"`
	EventType       string              `json:"event_type" binding:"required"`
	StartsAt        time.Time           `json:"starts_at" binding:"required"`
	Description     string              `json:"description"`
	ImageURL        string              `json:"image_url"`
	TeamA           string              `json:"team_a"`
	TeamB           string              `json:"team_b"`
	StadiumName     string              `json:"stadium_name"`
	Performers      string              `json:"performers"`
	PlaceName       string              `json:"place_name"`
	LocationAddress string              `json:"location_address"`
	Latitude        *float64            `json:"latitude"`
	Longitude       *float64            `json:"longitude"`
	FixedPrice      *decimal.Decimal    `json:"fixed_price"`
	Documents       map[string]string   `json:"documents"`
	TicketTypes     []TicketTypeRequest `json:"ticket_types" binding:"dive"`
}

type PlaceRequest struct {
	Name         string            `json:"name" binding:"required"`
	Location     string            `json:"location" binding:"required"`
	PlaceType    string            `json:"place_type" binding:"required"`
	MaxAttendees int               `json:"max_attendees" binding:"required,gt=0"`
	Price        decimal.Decimal   `json:"price"`
	ImageURL     string            `json:"image_url"`
	Documents    map[string]string `json:"documents"`
	Latitude     *float64          `json:"latitude"`
	Longitude    *float64          `json:"longitude"`
}

type BlockDatesRequest struct {
	Dates []string `json:"dates" binding:"required,min=1"`
	Note  string   `json:"note"`
}

type PurchaseRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

type ReservePlaceRequest struct {
	Date string `json:"date" binding:"required"`
}

type RejectRequest struct {
	Note string `json:"note" binding:"required"`
}

// ProviderRejectRequest carries the optional note of a provider request rejection.
type ProviderRejectRequest struct {
	Note string `json:"note"`
}

type RedeemRequest struct {
	Code string `json:"code" binding:"required"`
}

type CheckoutRequest struct {
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

type ReconcileRequest struct {
	TransactionRef string `json:"transaction_ref"`
	// OrderID is the field name of gateway notifications that use order ids.
	OrderID string `json:"order_id"`
}

type PortalRequest struct {
	ReturnURL string `json:"return_url"`
}

type ProviderRequestRequest struct {
	Documents   map[string]string `json:"documents"`
	PaymentLink string            `json:"payment_link"`
}

// --- responses ---

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type IDResponse struct {
	ID int64 `json:"id"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID        int64     `json:"id"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	BirthDate *string   `json:"birth_date,omitempty"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) UserResponse {
	out := UserResponse{
		ID:        u.ID,
		UserName:  u.UserName,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Roles:     make([]string, 0, len(u.Roles)),
		CreatedAt: u.CreatedAt,
	}

	if u.BirthDate != nil {
		s := u.BirthDate.Format(dateLayout)
		out.BirthDate = &s
	}

	for _, r := range u.Roles {
		out.Roles = append(out.Roles, string(r))
	}

	return out
}

type ApprovalResponse struct {
	Status string  `json:"status"`
	Note   *string `json:"note,omitempty"`
}

func toApproval(a domain.Approval) ApprovalResponse {
	return ApprovalResponse{Status: string(a.Status), Note: a.Note}
}

type TicketTypeResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Remaining int             `json:"remaining"`
}

type EventResponse struct {
	ID              int64                `json:"id"`
	OwnerID         int64                `json:"owner_id"`
	Name            string               `json:"name"`
	EventType       string               `json:"event_type"`
	StartsAt        time.Time            `json:"starts_at"`
	Description     string               `json:"description"`
	ImageURL        string               `json:"image_url"`
	TeamA           string               `json:"team_a,omitempty"`
	TeamB           string               `json:"team_b,omitempty"`
	StadiumName     string               `json:"stadium_name,omitempty"`
	Performers      string               `json:"performers,omitempty"`
	PlaceName       string               `json:"place_name,omitempty"`
	LocationAddress string               `json:"location_address"`
	Latitude        *float64             `json:"latitude,omitempty"`
	Longitude       *float64             `json:"longitude,omitempty"`
	FixedPrice      *decimal.Decimal     `json:"fixed_price,omitempty"`
	Documents       map[string]string    `json:"documents,omitempty"`
	Approval        ApprovalResponse     `json:"approval"`
	TicketTypes     []TicketTypeResponse `json:"ticket_types"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// toEventResponse renders an event. Documents are only shown to the owner and
// admins.
func toEventResponse(e *domain.Event, withDocuments bool) EventResponse {
	out := EventResponse{
		ID:              e.ID,
		OwnerID:         e.OwnerID,
		Name:            e.Name,
		EventType:       e.EventType,
		StartsAt:        e.StartsAt,
		Description:     e.Description,
		ImageURL:        e.ImageURL,
		TeamA:           e.TeamA,
		TeamB:           e.TeamB,
		StadiumName:     e.StadiumName,
		Performers:      e.Performers,
		PlaceName:       e.PlaceName,
		LocationAddress: e.LocationAddress,
		Latitude:        e.Latitude,
		Longitude:       e.Longitude,
		Approval:        toApproval(e.Approval),
		TicketTypes:     make([]TicketTypeResponse, 0, len(e.TicketTypes)),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}

	if e.FixedPriceCents != nil {
		p := fromCents(*e.FixedPriceCents)
		out.FixedPrice = &p
	}

	if withDocuments {
		out.Documents = e.Documents
	}

	for _, tt := range e.TicketTypes {
		out.TicketTypes = append(out.TicketTypes, TicketTypeResponse{
			ID:        tt.ID,
			Name:      tt.Name,
			Price:     fromCents(tt.PriceCents),
			Remaining: tt.Quantity,
		})
	}

	return out
}

func toEventResponses(events []domain.Event, withDocuments bool) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, toEventResponse(&events[i], withDocuments))
	}
	return out
}

type PlaceResponse struct {
	ID           int64             `json:"id"`
	OwnerID      int64             `json:"owner_id"`
	Name         string            `json:"name"`
	Location     string            `json:"location"`
	PlaceType    string            `json:"place_type"`
	MaxAttendees int               `json:"max_attendees"`
	Price        decimal.Decimal   `json:"price"`
	ImageURL     string            `json:"image_url"`
	Documents    map[string]string `json:"documents,omitempty"`
	Latitude     *float64          `json:"latitude,omitempty"`
	Longitude    *float64          `json:"longitude,omitempty"`
	Approval     ApprovalResponse  `json:"approval"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func toPlaceResponse(p *domain.Place, withDocuments bool) PlaceResponse {
	out := PlaceResponse{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Name:         p.Name,
		Location:     p.Location,
		PlaceType:    p.PlaceType,
		MaxAttendees: p.MaxAttendees,
		Price:        fromCents(p.PriceCents),
		ImageURL:     p.ImageURL,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		Approval:     toApproval(p.Approval),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}

	if withDocuments {
		out.Documents = p.Documents
	}

	return out
}

func toPlaceResponses(places []domain.Place, withDocuments bool) []PlaceResponse {
	out := make([]PlaceResponse, 0, len(places))
	for i := range places {
		out = append(out, toPlaceResponse(&places[i], withDocuments))
	}
	return out
}

type BlockedDateResponse struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
	Note string `json:"note,omitempty"`
}

type CalendarResponse struct {
	PlaceID  int64                 `json:"place_id"`
	Blocked  []BlockedDateResponse `json:"blocked"`
	Reserved []string              `json:"reserved"`
}

func toCalendarResponse(cal *domain.PlaceCalendar, withNotes bool) CalendarResponse {
	out := CalendarResponse{
		PlaceID:  cal.PlaceID,
		Blocked:  make([]BlockedDateResponse, 0, len(cal.Blocked)),
		Reserved: make([]string, 0, len(cal.Reserved)),
	}

	for _, b := range cal.Blocked {
		d := BlockedDateResponse{ID: b.ID, Date: b.Date.Format(dateLayout)}
		if withNotes {
			d.Note = b.Note
		}
		out.Blocked = append(out.Blocked, d)
	}

	for _, r := range cal.Reserved {
		out.Reserved = append(out.Reserved, r.Format(dateLayout))
	}

	return out
}

type BlockDatesResponse struct {
	Blocked int64 `json:"blocked"`
}

type ReservationResponse struct {
	ID           int64           `json:"id"`
	Kind         string          `json:"kind"`
	Status       string          `json:"status"`
	EventID      *int64          `json:"event_id,omitempty"`
	TicketTypeID *int64          `json:"ticket_type_id,omitempty"`
	PlaceID      *int64          `json:"place_id,omitempty"`
	PlaceName    string          `json:"place_name,omitempty"`
	PlaceAddress string          `json:"place_location,omitempty"`
	Date         *string         `json:"date,omitempty"`
	Quantity     int             `json:"quantity"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
}

func toReservationResponse(r *domain.Reservation) ReservationResponse {
	out := ReservationResponse{
		ID:           r.ID,
		Kind:         string(r.Kind),
		Status:       string(r.Status),
		EventID:      r.EventID,
		TicketTypeID: r.TicketTypeID,
		PlaceID:      r.PlaceID,
		Quantity:     r.Quantity,
		Total:        fromCents(r.TotalCents),
		CreatedAt:    r.CreatedAt,
	}

	if r.ReservedDate != nil {
		d := r.ReservedDate.Format(dateLayout)
		out.Date = &d
	}

	return out
}

func toPlaceReservationResponses(in []domain.PlaceReservationView) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(in))
	for i := range in {
		r := toReservationResponse(&in[i].Reservation)
		r.PlaceName = in[i].PlaceName
		r.PlaceAddress = in[i].PlaceLocation
		out = append(out, r)
	}
	return out
}

type TicketResponse struct {
	ID             string           `json:"id"`
	ReservationID  int64            `json:"reservation_id"`
	Code           string           `json:"code"`
	EventID        int64            `json:"event_id"`
	EventName      string           `json:"event_name,omitempty"`
	EventStartsAt  *time.Time       `json:"event_starts_at,omitempty"`
	TicketTypeName string           `json:"ticket_type_name,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	Status         string           `json:"reservation_status,omitempty"`
	IsUsed         bool             `json:"is_used"`
	UsedAt         *time.Time       `json:"used_at,omitempty"`
}

func toTicketViewResponse(v *domain.TicketView) TicketResponse {
	price := fromCents(v.PriceCents)
	starts := v.EventStartsAt

	return TicketResponse{
		ID:             v.ID.String(),
		ReservationID:  v.ReservationID,
		Code:           v.Code,
		EventID:        v.EventID,
		EventName:      v.EventName,
		EventStartsAt:  &starts,
		TicketTypeName: v.TicketTypeName,
		Price:          &price,
		Status:         string(v.ReservationStatus),
		IsUsed:         v.IsUsed,
		UsedAt:         v.UsedAt,
	}
}

type PurchaseResponse struct {
	Reservation ReservationResponse `json:"reservation"`
	Tickets     []TicketResponse    `json:"tickets"`
}

func toPurchaseResponse(p *postgresrepo.Purchase) PurchaseResponse {
	out := PurchaseResponse{
		Reservation: toReservationResponse(&p.Reservation),
		Tickets:     make([]TicketResponse, 0, len(p.Tickets)),
	}

	for _, t := range p.Tickets {
		out.Tickets = append(out.Tickets, TicketResponse{
			ID:            t.ID.String(),
			ReservationID: t.ReservationID,
			Code:          t.Code,
			EventID:       t.EventID,
		})
	}

	return out
}

type PaymentResponse struct {
	ID             int64           `json:"id"`
	ReservationID  int64           `json:"reservation_id"`
	Amount         decimal.Decimal `json:"amount"`
	Provider       string          `json:"provider"`
	Status         string          `json:"status"`
	TransactionRef string          `json:"transaction_ref"`
	CheckoutURL    string          `json:"checkout_url,omitempty"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
}

func toPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:             p.ID,
		ReservationID:  p.ReservationID,
		Amount:         fromCents(p.AmountCents),
		Provider:       p.Provider,
		Status:         string(p.Status),
		TransactionRef: p.TransactionRef,
		CheckoutURL:    p.CheckoutURL,
		PaidAt:         p.PaidAt,
	}
}

type URLResponse struct {
	URL string `json:"url"`
}

type CustomerResponse struct {
	CustomerID string `json:"customer_id"`
}

type ProviderRequestResponse struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"user_id"`
	Documents   map[string]string `json:"documents"`
	PaymentLink string            `json:"payment_link,omitempty"`
	Approval    ApprovalResponse  `json:"approval"`
	RequestedAt time.Time         `json:"requested_at"`
	ReviewedAt  *time.Time        `json:"reviewed_at,omitempty"`
}

func toProviderRequestResponses(in []domain.ProviderRequest) []ProviderRequestResponse {
	out := make([]ProviderRequestResponse, 0, len(in))
	for _, pr := range in {
		out = append(out, ProviderRequestResponse{
			ID:          pr.ID,
			UserID:      pr.UserID,
			Documents:   pr.Documents,
			PaymentLink: pr.PaymentLink,
			Approval:    toApproval(pr.Approval),
			RequestedAt: pr.RequestedAt,
			ReviewedAt:  pr.ReviewedAt,
		})
	}
	return out
}
