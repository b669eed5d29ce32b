package identity

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestValidSessionID(t *testing.T) {
	t.Parallel()

	valid := []string{"sess-1", "wa:919876543210", "a", "user_42.chat", strings.Repeat("x", 128)}
	for _, id := range valid {
		if !ValidSessionID(id) {
			t.Errorf("expected %q to be valid", id)
		}
	}

	invalid := []string{"", " ", "sess 1", "sess/1", "sess\n1", strings.Repeat("x", 129)}
	for _, id := range invalid {
		if ValidSessionID(id) {
			t.Errorf("expected %q to be rejected", id)
		}
	}
}

func TestIPFromRequest(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.9:51442"
	if got := IPFromRequest(r); got != "203.0.113.9" {
		t.Fatalf("expected bare IP, got %q", got)
	}

	r.RemoteAddr = "203.0.113.9"
	if got := IPFromRequest(r); got != "203.0.113.9" {
		t.Fatalf("expected passthrough for portless address, got %q", got)
	}
}
