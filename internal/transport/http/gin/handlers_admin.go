package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/evently/internal/service"
	"github.com/kirinyoku/evently/internal/storage"
)

// @Summary  Events awaiting review
// @Tags     admin
// @Security BearerAuth
// @Success  200 {array} EventResponse
// @Router   /admin/events/pending [get]
func handlePendingEvents(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := svcs.Admin.PendingEvents(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toEventResponses(events, true))
	}
}

// @Summary  Approve an event
// @Tags     admin
// @Security BearerAuth
// @Param    id  path  int  true  "Event ID"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "not pending"
// @Router   /admin/events/{id}/approve [post]
func handleApproveEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		respondErr(c, svcs.Admin.ApproveEvent(c.Request.Context(), id))
	}
}

// @Summary  Reject an event with a note
// @Tags     admin
// @Security BearerAuth
// @Param    id  path  int  true  "Event ID"
// @Param    req body  RejectRequest true "payload"
// @Success  204
// @Failure  400 {object} ErrorResponse "note required"
// @Router   /admin/events/{id}/reject [post]
func handleRejectEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		var req RejectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		respondErr(c, svcs.Admin.RejectEvent(c.Request.Context(), id, req.Note))
	}
}

// @Summary  Places awaiting review
// @Tags     admin
// @Security BearerAuth
// @Success  200 {array} PlaceResponse
// @Router   /admin/places/pending [get]
func handlePendingPlaces(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		places, err := svcs.Admin.PendingPlaces(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toPlaceResponses(places, true))
	}
}

// @Summary  Approve a place
// @Tags     admin
// @Security BearerAuth
// @Param    id  path  int  true  "Place ID"
// @Success  204
// @Router   /admin/places/{id}/approve [post]
func handleApprovePlace(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		respondErr(c, svcs.Admin.ApprovePlace(c.Request.Context(), id))
	}
}

// @Summary  Reject a place with a note
// @Tags     admin
// @Security BearerAuth
// @Param    id  path  int  true  "Place ID"
// @Param    req body  RejectRequest true "payload"
// @Success  204
// @Router   /admin/places/{id}/reject [post]
func handleRejectPlace(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		var req RejectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		respondErr(c, svcs.Admin.RejectPlace(c.Request.Context(), id, req.Note))
	}
}

// @Summary  Provider requests awaiting review
// @Tags     admin
// @Security BearerAuth
// @Success  200 {array} ProviderRequestResponse
// @Router   /admin/provider-requests/pending [get]
func handlePendingProviderRequests(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqs, err := svcs.Promotion.Pending(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toProviderRequestResponses(reqs))
	}
}

// @Summary  Approve a provider request
// @Description Grants the Service Provider role and removes the User role.
// @Tags     admin
// @Security BearerAuth
// @Param    id  path  int  true  "Request ID"
// @Success  204
// @Router   /admin/provider-requests/{id}/approve [post]
func handleApproveProviderRequest(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		respondErr(c, svcs.Promotion.Approve(c.Request.Context(), id))
	}
}

// @Summary  Reject a provider request
// @Tags     admin
// @Security BearerAuth
// @Param    id  path  int  true  "Request ID"
// @Param    req body  ProviderRejectRequest false "payload"
// @Success  204
// @Router   /admin/provider-requests/{id}/reject [post]
func handleRejectProviderRequest(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		var req ProviderRejectRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				badRequest(c, err.Error())
				return
			}
		}

		respondErr(c, svcs.Promotion.Reject(c.Request.Context(), id, req.Note))
	}
}

// @Summary  Grant the Admin role
// @Tags     admin
// @Security BearerAuth
// @Param    id  path  int  true  "User ID"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /admin/users/{id}/admin [post]
func handleAssignAdmin(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		respondErr(c, svcs.Account.AssignAdmin(c.Request.Context(), id))
	}
}

// @Summary  Ask to become a service provider
// @Description Accepts JSON with document URLs, or multipart with "doc_national_id_front", "doc_national_id_back" and "doc_holding_id" files.
// @Tags     provider-requests
// @Security BearerAuth
// @Accept   json,mpfd
// @Param    req body  ProviderRequestRequest true "payload"
// @Success  201 {object} IDResponse
// @Failure  400 {object} ErrorResponse "missing documents"
// @Failure  409 {object} ErrorResponse "request already pending"
// @Router   /me/provider-requests [post]
func handleSubmitProviderRequest(svcs *service.Services, up storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProviderRequestRequest
		form, err := bindEntry(c, &req)
		if err != nil {
			badRequest(c, err.Error())
			return
		}

		if form != nil {
			if v := form.Value["payment_link"]; len(v) > 0 && req.PaymentLink == "" {
				req.PaymentLink = v[0]
			}
		}

		docs, err := uploadDocuments(c, up, form)
		if err != nil {
			respondErr(c, err)
			return
		}
		docs = mergeDocuments(req.Documents, docs)

		id, err := svcs.Promotion.Submit(c.Request.Context(), userID(c), docs, req.PaymentLink)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, IDResponse{ID: id})
	}
}

// @Summary  My provider requests
// @Tags     provider-requests
// @Security BearerAuth
// @Success  200 {array} ProviderRequestResponse
// @Router   /me/provider-requests [get]
func handleMyProviderRequests(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqs, err := svcs.Promotion.MyRequests(c.Request.Context(), userID(c))
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toProviderRequestResponses(reqs))
	}
}
