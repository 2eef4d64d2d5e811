package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/service"
)

// @Summary  List approved events
// @Tags     catalog
// @Param    event_type query string false "event type"
// @Param    q          query string false "search in name and description"
// @Param    limit      query int    false "page size"
// @Param    offset     query int    false "offset"
// @Success  200 {array} EventResponse
// @Router   /events [get]
func handleListEvents(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := svcs.Catalog.ListEvents(c.Request.Context(), domain.EventFilter{
			EventType: c.Query("event_type"),
			Search:    c.Query("q"),
			Limit:     parseIntDefault(c.Query("limit"), 0),
			Offset:    parseIntDefault(c.Query("offset"), 0),
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, toEventResponses(events, false), cacheListing)
	}
}

// @Summary  Get approved event with ticket types
// @Tags     catalog
// @Param    id  path  int  true  "Event ID"
// @Success  200  {object}  EventResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /events/{id} [get]
func handleGetEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		e, err := svcs.Catalog.GetEvent(c.Request.Context(), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, toEventResponse(e, false), cacheDetails)
	}
}

// @Summary  List approved places
// @Tags     catalog
// @Param    place_type query string false "place type"
// @Param    q          query string false "search in name and location"
// @Param    limit      query int    false "page size"
// @Param    offset     query int    false "offset"
// @Success  200 {array} PlaceResponse
// @Router   /places [get]
func handleListPlaces(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		places, err := svcs.Catalog.ListPlaces(c.Request.Context(), domain.PlaceFilter{
			PlaceType: c.Query("place_type"),
			Search:    c.Query("q"),
			Limit:     parseIntDefault(c.Query("limit"), 0),
			Offset:    parseIntDefault(c.Query("offset"), 0),
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, toPlaceResponses(places, false), cacheListing)
	}
}

// @Summary  Get approved place
// @Tags     catalog
// @Param    id  path  int  true  "Place ID"
// @Success  200  {object}  PlaceResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /places/{id} [get]
func handleGetPlace(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		placeID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		p, err := svcs.Catalog.GetPlace(c.Request.Context(), placeID)
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, toPlaceResponse(p, false), cacheDetails)
	}
}

// @Summary  Unavailable dates of a place
// @Tags     catalog
// @Param    id    path   int     true  "Place ID"
// @Param    from  query  string  false "YYYY-MM-DD, default today"
// @Param    to    query  string  false "YYYY-MM-DD, default from + 30 days"
// @Success  200 {object} CalendarResponse
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Router   /places/{id}/availability [get]
func handlePlaceAvailability(svcs *service.Services) gin.HandlerFunc {
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

		cal, err := svcs.Catalog.Availability(c.Request.Context(), placeID, from, to)
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, toCalendarResponse(cal, false), cacheCalendar)
	}
}
