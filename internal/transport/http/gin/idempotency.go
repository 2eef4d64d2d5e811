package httpgin

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	redisrepo "github.com/kirinyoku/evently/internal/repository/redis"
)

const idempotencyHeader = "Idempotency-Key"

// idempotency guards mutating handlers with the Idempotency-Key header. Redis
// failures fail open: the request runs unguarded and the error is logged, the
// same policy the rate limiter applies.
type idempotency struct {
	store  *redisrepo.IdempotencyStore
	logger *slog.Logger
}

func newIdempotency(store *redisrepo.IdempotencyStore, logger *slog.Logger) *idempotency {
	if logger == nil {
		logger = slog.Default()
	}
	return &idempotency{store: store, logger: logger}
}

// run executes fn at most once per Idempotency-Key, scope and resource,
// replaying the stored response to retries. Requests without the header run
// unguarded.
func (i *idempotency) run(c *gin.Context, scope string, resource int64, status int, fn func() (any, error)) {
	ctx := c.Request.Context()

	clientKey := strings.TrimSpace(c.GetHeader(idempotencyHeader))
	if i == nil || i.store == nil || clientKey == "" {
		i.respond(c, status, fn)
		return
	}

	k := redisrepo.IdemKey{Scope: scope, Resource: resource, UserID: userID(c), Key: clientKey}
	log := i.logger.With(slog.String("idempotency_key", k.String()))

	state, payload, err := i.store.Lookup(ctx, k)
	if err != nil {
		log.WarnContext(ctx, "idempotency lookup failed, running unguarded", slog.Any("error", err))
		i.respond(c, status, fn)
		return
	}
	if state == redisrepo.IdemDone {
		replay(c, status, clientKey, payload)
		return
	}

	locked := false
	if state == redisrepo.IdemAbsent {
		locked, err = i.store.AcquireLock(ctx, k)
		if err != nil {
			log.WarnContext(ctx, "idempotency lock failed, running unguarded", slog.Any("error", err))
			i.respond(c, status, fn)
			return
		}
	}
	if !locked {
		if state, payload, err = i.store.Lookup(ctx, k); err == nil && state == redisrepo.IdemDone {
			replay(c, status, clientKey, payload)
			return
		}
		if err != nil {
			log.WarnContext(ctx, "idempotency lookup failed", slog.Any("error", err))
		}
		c.Header("Retry-After", "1")
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: "idempotency key in progress",
			Code:  "idempotency_in_progress",
		})
		return
	}

	resp, err := fn()
	if err != nil {
		if rerr := i.store.Release(ctx, k); rerr != nil {
			log.WarnContext(ctx, "idempotency release failed", slog.Any("error", rerr))
		}
		respondErr(c, err)
		return
	}

	b, err := json.Marshal(resp)
	if err != nil {
		log.ErrorContext(ctx, "idempotency encode failed", slog.Any("error", err))
		if rerr := i.store.Release(ctx, k); rerr != nil {
			log.WarnContext(ctx, "idempotency release failed", slog.Any("error", rerr))
		}
	} else if err := i.store.SaveResult(ctx, k, string(b)); err != nil {
		log.ErrorContext(ctx, "idempotency save failed", slog.Any("error", err))
	}

	c.Header(idempotencyHeader, clientKey)
	c.JSON(status, resp)
}

func (i *idempotency) respond(c *gin.Context, status int, fn func() (any, error)) {
	resp, err := fn()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(status, resp)
}

func replay(c *gin.Context, status int, clientKey, payload string) {
	c.Header(idempotencyHeader, clientKey)
	c.Data(status, "application/json; charset=utf-8", []byte(payload))
}
