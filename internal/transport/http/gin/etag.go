package httpgin

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// cachePolicy is how long shared caches may keep a public catalog response.
type cachePolicy struct {
	maxAge int
	// staleWhileRevalidate lets caches serve an old copy while refetching.
	staleWhileRevalidate int
}

var (
	// Listings and calendars move with every approval and booking.
	cacheListing  = cachePolicy{maxAge: 15, staleWhileRevalidate: 30}
	cacheCalendar = cachePolicy{maxAge: 15}
	cacheDetails  = cachePolicy{maxAge: 60, staleWhileRevalidate: 120}
)

func (p cachePolicy) header() string {
	h := "public, max-age=" + strconv.Itoa(p.maxAge)
	if p.staleWhileRevalidate > 0 {
		h += ", stale-while-revalidate=" + strconv.Itoa(p.staleWhileRevalidate)
	}
	return h
}

// writeJSONWithCache writes v with a weak ETag derived from its body and
// replies 304 when If-None-Match already lists that tag.
func writeJSONWithCache(c *gin.Context, status int, v any, policy cachePolicy) {
	b, err := json.Marshal(v)
	if err != nil {
		respondErr(c, err)
		return
	}

	tag := bodyETag(b)
	c.Header("ETag", tag)
	c.Header("Cache-Control", policy.header())
	c.Header("Vary", "Accept-Encoding")

	if etagMatches(c.GetHeader("If-None-Match"), tag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(status, "application/json; charset=utf-8", b)
}

func bodyETag(b []byte) string {
	sum := sha256.Sum256(b)
	return `W/"` + hex.EncodeToString(sum[:16]) + `"`
}

// etagMatches applies the weak comparison If-None-Match calls for: any listed
// tag matches ignoring the W/ prefix, and "*" matches everything.
func etagMatches(header, tag string) bool {
	if header == "" {
		return false
	}
	want := strings.TrimPrefix(tag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == want {
			return true
		}
	}
	return false
}
