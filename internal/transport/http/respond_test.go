package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"aptitude-quiz-service/internal/domain"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrUnauthenticated, http.StatusUnauthorized},
		{domain.Invalid("bad option"), http.StatusBadRequest},
		{fmt.Errorf("question 9: %w", domain.ErrQuestionNotFound), http.StatusNotFound},
		{domain.DataAccess("list answers", errors.New("conn refused")), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Errorf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/report?access_token=query", nil)
	if got := bearerToken(r); got != "query" {
		t.Fatalf("expected query token, got %q", got)
	}
	r.Header.Set("Authorization", "Bearer header")
	if got := bearerToken(r); got != "header" {
		t.Fatalf("header should win, got %q", got)
	}
	r.Header.Set("Authorization", "Basic abc")
	if got := bearerToken(r); got != "" {
		t.Fatalf("non-bearer scheme should yield nothing, got %q", got)
	}
}

func TestPercent(t *testing.T) {
	if got := percent(200.0/3, 1); got != "66.7%" {
		t.Fatalf("got %s", got)
	}
	if got := percent(200.0/3, 2); got != "66.67%" {
		t.Fatalf("got %s", got)
	}
}
