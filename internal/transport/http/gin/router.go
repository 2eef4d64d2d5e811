package httpgin

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kirinyoku/evently/internal/auth"
	"github.com/kirinyoku/evently/internal/domain"
	redisrepo "github.com/kirinyoku/evently/internal/repository/redis"
	"github.com/kirinyoku/evently/internal/service"
	"github.com/kirinyoku/evently/internal/storage"
)

const (
	maxUploadMemory = 16 << 20
)

func NewRouter(
	svcs *service.Services,
	idemStore *redisrepo.IdempotencyStore,
	tokens *auth.TokenManager,
	uploader storage.Uploader,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = maxUploadMemory

	if uploader == nil {
		uploader = storage.Disabled{}
	}
	idem := newIdempotency(idemStore, logger)

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), MetricsMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public API
	r.POST("/auth/register", handleRegister(svcs))
	r.POST("/auth/login", handleLogin(svcs))

	r.GET("/events", handleListEvents(svcs))
	r.GET("/events/:id", handleGetEvent(svcs))
	r.GET("/places", handleListPlaces(svcs))
	r.GET("/places/:id", handleGetPlace(svcs))
	r.GET("/places/:id/availability", handlePlaceAvailability(svcs))

	r.POST("/payments/reconcile", handleReconcile(svcs))

	// Any signed-in user
	user := r.Group("/", Authenticate(tokens))
	{
		user.GET("/me", handleMe(svcs))

		user.POST("/ticket-types/:id/purchase", handlePurchaseTickets(svcs, idem))
		user.POST("/places/:id/reservations", handleReservePlace(svcs, idem))

		user.GET("/me/tickets", handleMyTickets(svcs))
		user.GET("/me/tickets/:id/pdf", handleTicketPDF(svcs))
		user.GET("/me/place-reservations", handleMyPlaceReservations(svcs))
		user.GET("/me/reservations/:id", handleGetReservation(svcs))
		user.POST("/me/reservations/:id/cancel", handleCancelReservation(svcs))
		user.GET("/me/reservations/:id/tickets.pdf", handleReservationTicketsPDF(svcs))
		user.GET("/me/reservations/:id/booking.pdf", handlePlaceBookingPDF(svcs))
		user.POST("/me/reservations/:id/checkout", handleCheckout(svcs, idem))
		user.GET("/me/reservations/:id/payment", handleGetPayment(svcs))

		user.POST("/me/payment-customer", handleCreateCustomer(svcs))
		user.POST("/me/billing-portal", handlePortalSession(svcs))

		user.POST("/me/provider-requests", handleSubmitProviderRequest(svcs, uploader))
		user.GET("/me/provider-requests", handleMyProviderRequests(svcs))
	}

	// Service providers
	prov := r.Group("/provider", Authenticate(tokens), RequireRole(domain.RoleServiceProvider))
	{
		prov.POST("/events", handleCreateEvent(svcs, uploader))
		prov.GET("/events", handleProviderEvents(svcs))
		prov.GET("/events/:id", handleProviderEvent(svcs))
		prov.PUT("/events/:id", handleUpdateEvent(svcs, uploader))
		prov.DELETE("/events/:id", handleDeleteEvent(svcs))

		prov.POST("/places", handleCreatePlace(svcs, uploader))
		prov.GET("/places", handleProviderPlaces(svcs))
		prov.GET("/places/:id", handleProviderPlace(svcs))
		prov.PUT("/places/:id", handleUpdatePlace(svcs, uploader))
		prov.DELETE("/places/:id", handleDeletePlace(svcs))

		prov.GET("/places/:id/calendar", handlePlaceCalendar(svcs))
		prov.POST("/places/:id/blocked-dates", handleBlockDates(svcs))
		prov.DELETE("/availability/:id", handleUnblockDate(svcs))

		prov.POST("/tickets/redeem", handleRedeemTicket(svcs))
	}

	// Admin-API
	adm := r.Group("/admin", Authenticate(tokens), RequireRole(domain.RoleAdmin))
	{
		adm.GET("/events/pending", handlePendingEvents(svcs))
		adm.POST("/events/:id/approve", handleApproveEvent(svcs))
		adm.POST("/events/:id/reject", handleRejectEvent(svcs))

		adm.GET("/places/pending", handlePendingPlaces(svcs))
		adm.POST("/places/:id/approve", handleApprovePlace(svcs))
		adm.POST("/places/:id/reject", handleRejectPlace(svcs))

		adm.GET("/provider-requests/pending", handlePendingProviderRequests(svcs))
		adm.POST("/provider-requests/:id/approve", handleApproveProviderRequest(svcs))
		adm.POST("/provider-requests/:id/reject", handleRejectProviderRequest(svcs))

		adm.POST("/users/:id/admin", handleAssignAdmin(svcs))
	}

	return r
}

// --- Helpers ---

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	s := c.Param(name)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	s := c.Query(name)
	if s == "" {
		return time.Time{}, true
	}

	d, err := parseDate(s)
	if err != nil {
		badRequest(c, "invalid "+name+" (YYYY-MM-DD)")
		return time.Time{}, false
	}

	return d, true
}

func writePDF(c *gin.Context, filename string, b []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", b)
}
