package httpgin

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kirinyoku/evently/internal/auth"
	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/service"
)

func TestRouter_AccessControl(t *testing.T) {
	tokens := auth.NewTokenManager("secret", "evently", "evently-api", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewRouter(&service.Services{}, nil, tokens, nil, logger)

	user := bearer(t, tokens, domain.RoleUser)

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		body   string
		want   int
	}{
		{"health", http.MethodGet, "/healthz", "", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", "", http.StatusOK},
		{"me needs token", http.MethodGet, "/me", "", "", http.StatusUnauthorized},
		{"admin needs role", http.MethodGet, "/admin/events/pending", user, "", http.StatusForbidden},
		{"provider needs role", http.MethodPost, "/provider/events", user, "{}", http.StatusForbidden},
		{"bad id", http.MethodPost, "/ticket-types/abc/purchase", user, `{"quantity":1}`, http.StatusBadRequest},
		{"zero quantity", http.MethodPost, "/ticket-types/1/purchase", user, `{"quantity":0}`, http.StatusBadRequest},
		{"bad date", http.MethodPost, "/places/1/reservations", user, `{"date":"tomorrow"}`, http.StatusBadRequest},
		{"reconcile needs ref", http.MethodPost, "/payments/reconcile", "", `{}`, http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/nope", "", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}

			req := httptest.NewRequest(tt.method, tt.path, body)
			req.Header.Set("Content-Type", "application/json")
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
