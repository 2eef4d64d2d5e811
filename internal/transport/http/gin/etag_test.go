package httpgin

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONWithCache(t *testing.T) {
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		writeJSONWithCache(c, http.StatusOK, gin.H{"a": 1}, cacheDetails)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	etag := w.Header().Get("ETag")
	assert.Regexp(t, `^W/"[0-9a-f]{32}"$`, etag)
	assert.Equal(t, "public, max-age=60, stale-while-revalidate=120", w.Header().Get("Cache-Control"))
	assert.Equal(t, "Accept-Encoding", w.Header().Get("Vary"))

	for name, inm := range map[string]string{
		"exact":  etag,
		"strong": etag[2:],
		"listed": `"other", ` + etag,
		"any":    "*",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("If-None-Match", inm)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusNotModified, w.Code)
			assert.Empty(t, w.Body.String())
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("If-None-Match", `W/"stale"`)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"a":1}`, w.Body.String())
}

func TestCachePolicyHeader(t *testing.T) {
	assert.Equal(t, "public, max-age=15", cacheCalendar.header())
	assert.Equal(t, "public, max-age=15, stale-while-revalidate=30", cacheListing.header())
}
