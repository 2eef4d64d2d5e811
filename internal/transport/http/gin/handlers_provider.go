package httpgin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/evently/internal/service"
	"github.com/kirinyoku/evently/internal/service/provider"
	"github.com/kirinyoku/evently/internal/storage"
)

func (req *EventRequest) toInput() (provider.EventInput, error) {
	fixed, err := optionalCents(req.FixedPrice)
	if err != nil {
		return provider.EventInput{}, provider.ValidationError{Field: "fixed_price", Reason: err.Error()}
	}

	in := provider.EventInput{
		Name:            req.Name,
		EventType:       req.EventType,
		StartsAt:        req.StartsAt,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		TeamA:           req.TeamA,
		TeamB:           req.TeamB,
		StadiumName:     req.StadiumName,
		Performers:      req.Performers,
		PlaceName:       req.PlaceName,
		LocationAddress: req.LocationAddress,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		FixedPriceCents: fixed,
		Documents:       req.Documents,
		TicketTypes:     make([]provider.TicketTypeInput, 0, len(req.TicketTypes)),
	}

	for _, tt := range req.TicketTypes {
		cents, err := toCents(tt.Price)
		if err != nil {
			return provider.EventInput{}, provider.ValidationError{Field: "ticket_types.price", Reason: err.Error()}
		}

		in.TicketTypes = append(in.TicketTypes, provider.TicketTypeInput{
			ID:          tt.ID,
			Name:        tt.Name,
			PriceCents:  cents,
			Quantity:    tt.Quantity,
			AddQuantity: tt.AddQuantity,
		})
	}

	return in, nil
}

func (req *PlaceRequest) toInput() (provider.PlaceInput, error) {
	cents, err := toCents(req.Price)
	if err != nil {
		return provider.PlaceInput{}, provider.ValidationError{Field: "price", Reason: err.Error()}
	}

	return provider.PlaceInput{
		Name:         req.Name,
		Location:     req.Location,
		PlaceType:    req.PlaceType,
		MaxAttendees: req.MaxAttendees,
		PriceCents:   cents,
		ImageURL:     req.ImageURL,
		Documents:    req.Documents,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	}, nil
}

// bindEvent decodes an event from JSON or multipart and uploads its files.
func bindEvent(c *gin.Context, up storage.Uploader) (provider.EventInput, bool) {
	var req EventRequest
	form, err := bindEntry(c, &req)
	if err != nil {
		badRequest(c, err.Error())
		return provider.EventInput{}, false
	}

	in, err := req.toInput()
	if err != nil {
		respondErr(c, err)
		return provider.EventInput{}, false
	}

	img, err := uploadImage(c, up, form, storage.FolderEvents)
	if err != nil {
		respondErr(c, err)
		return provider.EventInput{}, false
	}
	if img != "" {
		in.ImageURL = img
	}

	docs, err := uploadDocuments(c, up, form)
	if err != nil {
		respondErr(c, err)
		return provider.EventInput{}, false
	}
	in.Documents = mergeDocuments(in.Documents, docs)

	return in, true
}

func bindPlace(c *gin.Context, up storage.Uploader) (provider.PlaceInput, bool) {
	var req PlaceRequest
	form, err := bindEntry(c, &req)
	if err != nil {
		badRequest(c, err.Error())
		return provider.PlaceInput{}, false
	}

	in, err := req.toInput()
	if err != nil {
		respondErr(c, err)
		return provider.PlaceInput{}, false
	}

	img, err := uploadImage(c, up, form, storage.FolderPlaces)
	if err != nil {
		respondErr(c, err)
		return provider.PlaceInput{}, false
	}
	if img != "" {
		in.ImageURL = img
	}

	docs, err := uploadDocuments(c, up, form)
	if err != nil {
		respondErr(c, err)
		return provider.PlaceInput{}, false
	}
	in.Documents = mergeDocuments(in.Documents, docs)

	return in, true
}

// @Summary  Create event (pending review)
// @Description Accepts JSON, or multipart with the JSON in "payload", an "image" file and "doc_<kind>" files.
// @Tags     provider
// @Security BearerAuth
// @Accept   json,mpfd
// @Param    req body  EventRequest true "payload"
// @Success  201 {object} IDResponse
// @Failure  400 {object} ErrorResponse
// @Router   /provider/events [post]
func handleCreateEvent(svcs *service.Services, up storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := bindEvent(c, up)
		if !ok {
			return
		}

		id, err := svcs.Provider.CreateEvent(c.Request.Context(), userID(c), in)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, IDResponse{ID: id})
	}
}

// @Summary  List own events in every review state
// @Tags     provider
// @Security BearerAuth
// @Success  200 {array} EventResponse
// @Router   /provider/events [get]
func handleProviderEvents(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := svcs.Provider.ListEvents(c.Request.Context(), userID(c))
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toEventResponses(events, true))
	}
}

// @Summary  Get own event
// @Tags     provider
// @Security BearerAuth
// @Param    id  path  int  true  "Event ID"
// @Success  200 {object} EventResponse
// @Failure  403 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Router   /provider/events/{id} [get]
func handleProviderEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		e, err := svcs.Provider.GetEvent(c.Request.Context(), userID(c), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toEventResponse(e, true))
	}
}

// @Summary  Edit own event (returns it to pending review)
// @Tags     provider
// @Security BearerAuth
// @Accept   json,mpfd
// @Param    id  path  int  true  "Event ID"
// @Param    req body  EventRequest true "payload"
// @Success  204
// @Failure  400 {object} ErrorResponse
// @Failure  403 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Router   /provider/events/{id} [put]
func handleUpdateEvent(svcs *service.Services, up storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		in, ok := bindEvent(c, up)
		if !ok {
			return
		}

		if err := svcs.Provider.UpdateEvent(c.Request.Context(), userID(c), eventID, in); err != nil {
			respondErr(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// @Summary  Delete own event
// @Tags     provider
// @Security BearerAuth
// @Param    id  path  int  true  "Event ID"
// @Success  204
// @Failure  403 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Router   /provider/events/{id} [delete]
func handleDeleteEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		if err := svcs.Provider.DeleteEvent(c.Request.Context(), userID(c), eventID); err != nil {
			respondErr(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// @Summary  Create place (pending review)
// @Tags     provider
// @Security BearerAuth
// @Accept   json,mpfd
// @Param    req body  PlaceRequest true "payload"
// @Success  201 {object} IDResponse
// @Failure  400 {object} ErrorResponse
// @Router   /provider/places [post]
func handleCreatePlace(svcs *service.Services, up storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := bindPlace(c, up)
		if !ok {
			return
		}

		id, err := svcs.Provider.CreatePlace(c.Request.Context(), userID(c), in)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, IDResponse{ID: id})
	}
}

// @Summary  List own places in every review state
// @Tags     provider
// @Security BearerAuth
// @Success  200 {array} PlaceResponse
// @Router   /provider/places [get]
func handleProviderPlaces(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		places, err := svcs.Provider.ListPlaces(c.Request.Context(), userID(c))
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toPlaceResponses(places, true))
	}
}

// @Summary  Get own place
// @Tags     provider
// @Security BearerAuth
// @Param    id  path  int  true  "Place ID"
// @Success  200 {object} PlaceResponse
// @Failure  403 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Router   /provider/places/{id} [get]
func handleProviderPlace(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		placeID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		p, err := svcs.Provider.GetPlace(c.Request.Context(), userID(c), placeID)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toPlaceResponse(p, true))
	}
}

// @Summary  Edit own place (returns it to pending review)
// @Tags     provider
// @Security BearerAuth
// @Accept   json,mpfd
// @Param    id  path  int  true  "Place ID"
// @Param    req body  PlaceRequest true "payload"
// @Success  204
// @Failure  400 {object} ErrorResponse
// @Failure  403 {object} ErrorResponse
// @Router   /provider/places/{id} [put]
func handleUpdatePlace(svcs *service.Services, up storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		placeID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		in, ok := bindPlace(c, up)
		if !ok {
			return
		}

		if err := svcs.Provider.UpdatePlace(c.Request.Context(), userID(c), placeID, in); err != nil {
			respondErr(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// @Summary  Delete own place
// @Tags     provider
// @Security BearerAuth
// @Param    id  path  int  true  "Place ID"
// @Success  204
// @Failure  403 {object} ErrorResponse
// @Router   /provider/places/{id} [delete]
func handleDeletePlace(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		placeID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		if err := svcs.Provider.DeletePlace(c.Request.Context(), userID(c), placeID); err != nil {
			respondErr(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// @Summary  Calendar of an own place with block notes
// @Tags     provider
// @Security BearerAuth
// @Param    id    path   int     true  "Place ID"
// @Param    from  query  string  false "YYYY-MM-DD"
// @Param    to    query  string  false "YYYY-MM-DD"
// @Success  200 {object} CalendarResponse
// @Router   /provider/places/{id}/calendar [get]
func handlePlaceCalendar(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		placeID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		from, ok := parseDateQuery(c, "from")
		if !ok {
			return
		}

		to, ok := parseDateQuery(c, "to")
		if !ok {
			return
		}

		cal, err := svcs.Provider.Calendar(c.Request.Context(), userID(c), placeID, from, to)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toCalendarResponse(cal, true))
	}
}

// @Summary  Block dates of an own place
// @Tags     provider
// @Security BearerAuth
// @Param    id  path  int  true  "Place ID"
// @Param    req body  BlockDatesRequest true "payload"
// @Success  200 {object} BlockDatesResponse
// @Failure  400 {object} ErrorResponse
// @Router   /provider/places/{id}/blocked-dates [post]
func handleBlockDates(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		placeID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		var req BlockDatesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		dates := make([]time.Time, 0, len(req.Dates))
		for _, s := range req.Dates {
			d, err := parseDate(s)
			if err != nil {
				badRequest(c, "invalid date "+s+" (YYYY-MM-DD)")
				return
			}
			dates = append(dates, d)
		}

		n, err := svcs.Provider.BlockDates(c.Request.Context(), userID(c), placeID, dates, req.Note)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, BlockDatesResponse{Blocked: n})
	}
}

// @Summary  Remove a blocked date
// @Tags     provider
// @Security BearerAuth
// @Param    id  path  int  true  "Availability entry ID"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /provider/availability/{id} [delete]
func handleUnblockDate(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		if err := svcs.Provider.UnblockDate(c.Request.Context(), userID(c), id); err != nil {
			respondErr(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// @Summary  Redeem a ticket at the door
// @Tags     provider
// @Security BearerAuth
// @Param    req body  RedeemRequest true "payload"
// @Success  200 {object} TicketResponse
// @Failure  403 {object} ErrorResponse "ticket for another provider's event"
// @Failure  409 {object} ErrorResponse "already used or unpaid"
// @Router   /provider/tickets/redeem [post]
func handleRedeemTicket(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RedeemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		t, err := svcs.Provider.RedeemTicket(c.Request.Context(), userID(c), req.Code)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toTicketViewResponse(t))
	}
}
