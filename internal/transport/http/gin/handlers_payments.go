package httpgin

import (
	"cmp"
	"net/http"

	"github.com/gin-gonic/gin"

	redisrepo "github.com/kirinyoku/evently/internal/repository/redis"
	"github.com/kirinyoku/evently/internal/service"
)

// @Summary  Start hosted checkout for a pending reservation
// @Tags     payments
// @Security BearerAuth
// @Param    id  path  int  true  "Reservation ID"
// @Param    Idempotency-Key header string false "retry-safe key"
// @Param    req body  CheckoutRequest false "return links"
// @Success  201 {object} PaymentResponse
// @Failure  400 {object} ErrorResponse "payments disabled"
// @Failure  409 {object} ErrorResponse "not pending / already paid"
// @Failure  502 {object} ErrorResponse "gateway failure"
// @Router   /me/reservations/{id}/checkout [post]
func handleCheckout(svcs *service.Services, idem *idempotency) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		var req CheckoutRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				badRequest(c, err.Error())
				return
			}
		}

		idem.run(c, redisrepo.IdemScopeCheckout, id, http.StatusCreated, func() (any, error) {
			p, err := svcs.Payments.CreateCheckout(c.Request.Context(), userID(c), id, req.SuccessURL, req.CancelURL)
			if err != nil {
				return nil, err
			}
			return toPaymentResponse(p), nil
		})
	}
}

// @Summary  Payment of one of my reservations
// @Tags     payments
// @Security BearerAuth
// @Param    id  path  int  true  "Reservation ID"
// @Success  200 {object} PaymentResponse
// @Failure  404 {object} ErrorResponse
// @Router   /me/reservations/{id}/payment [get]
func handleGetPayment(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		p, err := svcs.Payments.PaymentFor(c.Request.Context(), userID(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toPaymentResponse(p))
	}
}

// @Summary  Reconcile a checkout with the gateway
// @Description Safe to call repeatedly. The payment status is always read back from the gateway.
// @Tags     payments
// @Param    req body  ReconcileRequest true "transaction_ref or order_id"
// @Success  200 {object} PaymentResponse
// @Failure  404 {object} ErrorResponse
// @Failure  502 {object} ErrorResponse
// @Router   /payments/reconcile [post]
func handleReconcile(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReconcileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		ref := cmp.Or(req.TransactionRef, req.OrderID)
		if ref == "" {
			badRequest(c, "transaction_ref is required")
			return
		}

		p, err := svcs.Payments.Reconcile(c.Request.Context(), ref)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toPaymentResponse(p))
	}
}

// @Summary  Register me as a gateway customer
// @Tags     payments
// @Security BearerAuth
// @Success  200 {object} CustomerResponse
// @Failure  400 {object} ErrorResponse "unsupported by provider"
// @Router   /me/payment-customer [post]
func handleCreateCustomer(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := svcs.Payments.CreateCustomer(c.Request.Context(), userID(c))
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, CustomerResponse{CustomerID: id})
	}
}

// @Summary  Open the billing portal
// @Tags     payments
// @Security BearerAuth
// @Param    req body  PortalRequest false "return link"
// @Success  200 {object} URLResponse
// @Failure  400 {object} ErrorResponse "no customer on file"
// @Router   /me/billing-portal [post]
func handlePortalSession(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PortalRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				badRequest(c, err.Error())
				return
			}
		}

		url, err := svcs.Payments.PortalSession(c.Request.Context(), userID(c), req.ReturnURL)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, URLResponse{URL: url})
	}
}
