package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSessionAssignsAndReusesID(t *testing.T) {
	var seen []string
	handler := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, GetSessionID(r.Context()))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if len(seen) != 1 || seen[0] == "" {
		t.Fatalf("session ID not assigned: %v", seen)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "session_id" || cookies[0].Value != seen[0] {
		t.Fatalf("cookie = %v, want session_id=%s", cookies, seen[0])
	}

	// A returning client keeps its ID and gets no new cookie.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if len(seen) != 2 || seen[1] != seen[0] {
		t.Fatalf("session ID not reused: %v", seen)
	}
	if extra := rec.Result().Cookies(); len(extra) != 0 {
		t.Fatalf("cookie re-set for returning client: %v", extra)
	}
}

func TestValidateQuestion(t *testing.T) {
	if err := ValidateQuestion("What is diabetes?"); err != nil {
		t.Fatalf("valid question rejected: %v", err)
	}
	if err := ValidateQuestion("   "); err == nil {
		t.Fatal("blank question accepted")
	}
	if err := ValidateQuestion(strings.Repeat("a", MaxQuestionLen+1)); err == nil {
		t.Fatal("oversized question accepted")
	}
	if err := ValidateQuestion(string([]byte{0xff, 0xfe})); err == nil {
		t.Fatal("invalid UTF-8 accepted")
	}
}

func TestValidateReaction(t *testing.T) {
	for _, ok := range []string{"", "like", "dislike"} {
		if err := ValidateReaction(ok); err != nil {
			t.Fatalf("ValidateReaction(%q) = %v", ok, err)
		}
	}
	if err := ValidateReaction("love"); err == nil {
		t.Fatal("unknown reaction accepted")
	}
}

func TestValidateMessageID(t *testing.T) {
	if err := ValidateMessageID("msg-123"); err != nil {
		t.Fatalf("valid ID rejected: %v", err)
	}
	if err := ValidateMessageID(""); err == nil {
		t.Fatal("empty ID accepted")
	}
	if err := ValidateMessageID(strings.Repeat("x", 129)); err == nil {
		t.Fatal("oversized ID accepted")
	}
}

func TestAdminGateOpenWhenUnset(t *testing.T) {
	handler := AdminGate("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/feedback", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want open access with no secret configured", rec.Code)
	}
}
