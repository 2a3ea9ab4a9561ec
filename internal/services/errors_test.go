package services_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/gitxyzlabs/levoyageur/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrTimeout, "places", "nearby", "request failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"places", "nearby", "request failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "places", "search", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		code int
		want error
	}{
		{http.StatusUnauthorized, services.ErrConfiguration},
		{http.StatusForbidden, services.ErrConfiguration},
		{http.StatusTooManyRequests, services.ErrConfiguration},
		{http.StatusNotFound, services.ErrNotFound},
		{http.StatusGatewayTimeout, services.ErrTimeout},
		{http.StatusBadGateway, services.ErrTransient},
		{http.StatusInternalServerError, services.ErrTransient},
	}
	for _, tc := range cases {
		if got := services.ClassifyStatus(tc.code); !errors.Is(got, tc.want) {
			t.Fatalf("status %d: expected %v, got %v", tc.code, tc.want, got)
		}
	}
}

func TestRetryable(t *testing.T) {
	if !services.Retryable(services.Wrap(services.ErrTransient, "places", "nearby", "", nil)) {
		t.Fatal("expected transient failure to be retryable")
	}
	if services.Retryable(services.Wrap(services.ErrConfiguration, "places", "nearby", "bad key", nil)) {
		t.Fatal("expected configuration failure to be terminal")
	}
	if services.Retryable(nil) {
		t.Fatal("expected nil error to be non-retryable")
	}
}
