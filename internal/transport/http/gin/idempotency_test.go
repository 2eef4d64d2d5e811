package httpgin

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/evently/internal/auth"
	redisrepo "github.com/kirinyoku/evently/internal/repository/redis"
)

var idemTestKey = redisrepo.IdemKey{Scope: redisrepo.IdemScopePurchase, Resource: 7, UserID: 42, Key: "k-1"}

type idemHarness struct {
	mock   redismock.ClientMock
	logs   *bytes.Buffer
	engine *gin.Engine
	calls  int
	fnErr  error
}

func newIdemHarness(t *testing.T) *idemHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock := redismock.NewClientMock()
	h := &idemHarness{mock: mock, logs: &bytes.Buffer{}}
	store := redisrepo.NewIdempotencyStore(db, redisrepo.IdempotencyConfig{LockTTL: time.Minute, ResultTTL: time.Hour})
	idem := newIdempotency(store, slog.New(slog.NewTextHandler(h.logs, nil)))

	h.engine = gin.New()
	h.engine.POST("/ticket-types/:id/purchase", func(c *gin.Context) {
		c.Set(principalKey, auth.Principal{UserID: 42})
		idem.run(c, redisrepo.IdemScopePurchase, 7, http.StatusCreated, func() (any, error) {
			h.calls++
			if h.fnErr != nil {
				return nil, h.fnErr
			}
			return gin.H{"id": 1}, nil
		})
	})
	return h
}

func (h *idemHarness) do(key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/ticket-types/7/purchase", nil)
	if key != "" {
		req.Header.Set(idempotencyHeader, key)
	}
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)
	return w
}

func TestIdempotency_StoresFirstResponse(t *testing.T) {
	h := newIdemHarness(t)
	k := idemTestKey.String()

	h.mock.ExpectGet(k).RedisNil()
	h.mock.ExpectSetNX(k, "LOCK", time.Minute).SetVal(true)
	h.mock.ExpectSet(k, `RES:{"id":1}`, time.Hour).SetVal("OK")

	w := h.do("k-1")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "k-1", w.Header().Get(idempotencyHeader))
	assert.JSONEq(t, `{"id":1}`, w.Body.String())
	assert.Equal(t, 1, h.calls)
	assert.NoError(t, h.mock.ExpectationsWereMet())
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	h := newIdemHarness(t)

	h.mock.ExpectGet(idemTestKey.String()).SetVal(`RES:{"id":9}`)

	w := h.do("k-1")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":9}`, w.Body.String())
	assert.Zero(t, h.calls)
	assert.NoError(t, h.mock.ExpectationsWereMet())
}

func TestIdempotency_InFlight(t *testing.T) {
	h := newIdemHarness(t)
	k := idemTestKey.String()

	h.mock.ExpectGet(k).SetVal("LOCK")
	h.mock.ExpectGet(k).SetVal("LOCK")

	w := h.do("k-1")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Zero(t, h.calls)
	assert.NoError(t, h.mock.ExpectationsWereMet())
}

func TestIdempotency_FailsOpenWhenRedisDown(t *testing.T) {
	t.Run("lookup", func(t *testing.T) {
		h := newIdemHarness(t)
		h.mock.ExpectGet(idemTestKey.String()).SetErr(errors.New("connection refused"))

		w := h.do("k-1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, h.calls)
		assert.Contains(t, h.logs.String(), "idempotency lookup failed")
		assert.Contains(t, h.logs.String(), "connection refused")
	})

	t.Run("lock", func(t *testing.T) {
		h := newIdemHarness(t)
		k := idemTestKey.String()
		h.mock.ExpectGet(k).RedisNil()
		h.mock.ExpectSetNX(k, "LOCK", time.Minute).SetErr(errors.New("connection refused"))

		w := h.do("k-1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, h.calls)
		assert.Contains(t, h.logs.String(), "idempotency lock failed")
		assert.NoError(t, h.mock.ExpectationsWereMet())
	})
}

func TestIdempotency_ReleasesOnFailure(t *testing.T) {
	h := newIdemHarness(t)
	h.fnErr = errors.New("boom")
	k := idemTestKey.String()

	h.mock.ExpectGet(k).RedisNil()
	h.mock.ExpectSetNX(k, "LOCK", time.Minute).SetVal(true)
	h.mock.ExpectDel(k).SetErr(errors.New("connection reset"))

	w := h.do("k-1")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, h.logs.String(), "idempotency release failed")
	assert.NoError(t, h.mock.ExpectationsWereMet())
}

func TestIdempotency_LogsSaveFailure(t *testing.T) {
	h := newIdemHarness(t)
	k := idemTestKey.String()

	h.mock.ExpectGet(k).RedisNil()
	h.mock.ExpectSetNX(k, "LOCK", time.Minute).SetVal(true)
	h.mock.ExpectSet(k, `RES:{"id":1}`, time.Hour).SetErr(errors.New("OOM"))

	w := h.do("k-1")

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, h.logs.String(), "idempotency save failed")
	assert.Contains(t, h.logs.String(), idemTestKey.String())
	assert.NoError(t, h.mock.ExpectationsWereMet())
}

func TestIdempotency_NoHeaderRunsUnguarded(t *testing.T) {
	h := newIdemHarness(t)

	w := h.do("")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Header().Get(idempotencyHeader))
	assert.Equal(t, 1, h.calls)
	assert.NoError(t, h.mock.ExpectationsWereMet())
}
