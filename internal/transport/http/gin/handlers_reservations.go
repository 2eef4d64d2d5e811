package httpgin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	redisrepo "github.com/kirinyoku/evently/internal/repository/redis"
	"github.com/kirinyoku/evently/internal/service"
)

// @Summary  Buy tickets (idempotent)
// @Tags     reservations
// @Security BearerAuth
// @Param    id  path  int  true  "Ticket type ID"
// @Param    Idempotency-Key header string false "retry-safe key"
// @Param    req body  PurchaseRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} PurchaseResponse
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "sold out / not approved / idem in progress"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /ticket-types/{id}/purchase [post]
func handlePurchaseTickets(svcs *service.Services, idem *idempotency) gin.HandlerFunc {
	return func(c *gin.Context) {
		ticketTypeID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		var req PurchaseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		idem.run(c, redisrepo.IdemScopePurchase, ticketTypeID, http.StatusCreated, func() (any, error) {
			p, err := svcs.Inventory.PurchaseTickets(c.Request.Context(), userID(c), ticketTypeID, req.Quantity)
			if err != nil {
				return nil, err
			}
			return toPurchaseResponse(p), nil
		})
	}
}

// @Summary  Reserve a place for a date (idempotent)
// @Tags     reservations
// @Security BearerAuth
// @Param    id  path  int  true  "Place ID"
// @Param    Idempotency-Key header string false "retry-safe key"
// @Param    req body  ReservePlaceRequest true "payload"
// @Success  201 {object} ReservationResponse
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "date blocked or reserved"
// @Router   /places/{id}/reservations [post]
func handleReservePlace(svcs *service.Services, idem *idempotency) gin.HandlerFunc {
	return func(c *gin.Context) {
		placeID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		var req ReservePlaceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		date, err := parseDate(req.Date)
		if err != nil {
			badRequest(c, "invalid date (YYYY-MM-DD)")
			return
		}

		idem.run(c, redisrepo.IdemScopePlace, placeID, http.StatusCreated, func() (any, error) {
			r, err := svcs.Inventory.ReservePlace(c.Request.Context(), userID(c), placeID, date)
			if err != nil {
				return nil, err
			}
			return toReservationResponse(r), nil
		})
	}
}

// @Summary  My tickets
// @Tags     reservations
// @Security BearerAuth
// @Success  200 {array} TicketResponse
// @Router   /me/tickets [get]
func handleMyTickets(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		views, err := svcs.Tickets.MyTickets(c.Request.Context(), userID(c))
		if err != nil {
			respondErr(c, err)
			return
		}

		out := make([]TicketResponse, 0, len(views))
		for i := range views {
			out = append(out, toTicketViewResponse(&views[i]))
		}

		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Download one ticket as PDF
// @Tags     reservations
// @Security BearerAuth
// @Produce  application/pdf
// @Param    id  path  string  true  "Ticket ID (uuid)"
// @Success  200 {file} binary
// @Failure  409 {object} ErrorResponse "reservation not confirmed"
// @Router   /me/tickets/{id}/pdf [get]
func handleTicketPDF(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ticketID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			badRequest(c, "invalid id")
			return
		}

		b, err := svcs.Tickets.TicketPDF(c.Request.Context(), userID(c), ticketID)
		if err != nil {
			respondErr(c, err)
			return
		}

		writePDF(c, "ticket-"+ticketID.String()+".pdf", b)
	}
}

// @Summary  My place reservations
// @Tags     reservations
// @Security BearerAuth
// @Success  200 {array} ReservationResponse
// @Router   /me/place-reservations [get]
func handleMyPlaceReservations(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		views, err := svcs.Tickets.MyPlaceReservations(c.Request.Context(), userID(c))
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toPlaceReservationResponses(views))
	}
}

// @Summary  Get one of my reservations
// @Tags     reservations
// @Security BearerAuth
// @Param    id  path  int  true  "Reservation ID"
// @Success  200 {object} ReservationResponse
// @Failure  403 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Router   /me/reservations/{id} [get]
func handleGetReservation(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		r, err := svcs.Tickets.GetReservation(c.Request.Context(), userID(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toReservationResponse(r))
	}
}

// @Summary  Cancel a pending reservation
// @Tags     reservations
// @Security BearerAuth
// @Param    id  path  int  true  "Reservation ID"
// @Success  204
// @Failure  409 {object} ErrorResponse "not pending"
// @Router   /me/reservations/{id}/cancel [post]
func handleCancelReservation(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		if err := svcs.Inventory.CancelReservation(c.Request.Context(), userID(c), id); err != nil {
			respondErr(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// @Summary  Download all tickets of a confirmed reservation
// @Tags     reservations
// @Security BearerAuth
// @Produce  application/pdf
// @Param    id  path  int  true  "Reservation ID"
// @Success  200 {file} binary
// @Failure  409 {object} ErrorResponse "reservation not confirmed"
// @Router   /me/reservations/{id}/tickets.pdf [get]
func handleReservationTicketsPDF(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		b, err := svcs.Tickets.ReservationTicketsPDF(c.Request.Context(), userID(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}

		writePDF(c, "tickets-"+strconv.FormatInt(id, 10)+".pdf", b)
	}
}

// @Summary  Download a place booking confirmation
// @Tags     reservations
// @Security BearerAuth
// @Produce  application/pdf
// @Param    id  path  int  true  "Reservation ID"
// @Success  200 {file} binary
// @Failure  409 {object} ErrorResponse "reservation cancelled"
// @Router   /me/reservations/{id}/booking.pdf [get]
func handlePlaceBookingPDF(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		b, err := svcs.Tickets.PlaceReservationPDF(c.Request.Context(), userID(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}

		writePDF(c, "booking-"+strconv.FormatInt(id, 10)+".pdf", b)
	}
}
