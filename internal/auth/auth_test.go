package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mkowalik/peervote/internal/auth"
)

// TestLogin tests password validation and session issuance
func TestLogin(t *testing.T) {
	a := auth.New("correct-password")

	if _, ok := a.Login("wrong-password"); ok {
		t.Error("expected login to fail with the wrong password")
	}

	token, ok := a.Login("correct-password")
	if !ok {
		t.Fatal("expected login to succeed")
	}
	if token == "" {
		t.Error("expected a non-empty session token")
	}
	if !a.ValidateSession(token) {
		t.Error("expected the issued session to validate")
	}
}

// TestLogout tests session invalidation
func TestLogout(t *testing.T) {
	a := auth.New("pw")
	token, _ := a.Login("pw")

	a.Logout(token)
	if a.ValidateSession(token) {
		t.Error("expected the session to be invalid after logout")
	}
}

// TestValidateSession_Unknown tests an unissued token
func TestValidateSession_Unknown(t *testing.T) {
	a := auth.New("pw")

	if a.ValidateSession("made-up-token") {
		t.Error("expected an unknown token to be invalid")
	}
}

// TestGeneratePassword tests the generated password shape
func TestGeneratePassword(t *testing.T) {
	pw := auth.GeneratePassword()
	parts := strings.Split(pw, "-")
	if len(parts) != 3 {
		t.Fatalf("expected a 3-word password, got %q", pw)
	}
	for _, part := range parts {
		if part == "" {
			t.Errorf("expected non-empty words, got %q", pw)
		}
	}

	// Two draws colliding is possible but unlikely enough to flag.
	if auth.GeneratePassword() == pw && auth.GeneratePassword() == pw {
		t.Errorf("expected varied passwords, kept getting %q", pw)
	}
}

// TestRequireAuthAPI tests the API middleware
func TestRequireAuthAPI(t *testing.T) {
	a := auth.New("pw")
	handler := a.RequireAuthAPI(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// No cookie.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/periods", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a cookie, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "UNAUTHORIZED") {
		t.Errorf("expected the UNAUTHORIZED code in the body, got %q", rec.Body.String())
	}

	// Invalid cookie.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/periods", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "bogus"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with a bogus cookie, got %d", rec.Code)
	}

	// Valid session.
	token, _ := a.Login("pw")
	req = httptest.NewRequest(http.MethodGet, "/api/admin/periods", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with a valid session, got %d", rec.Code)
	}
}

// TestSessionCookieHelpers tests cookie set and clear
func TestSessionCookieHelpers(t *testing.T) {
	rec := httptest.NewRecorder()
	auth.SetSessionCookie(rec, "token-123")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != auth.CookieName || cookies[0].Value != "token-123" {
		t.Fatalf("expected the session cookie set, got %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Error("expected an HttpOnly cookie")
	}

	rec = httptest.NewRecorder()
	auth.ClearSessionCookie(rec)
	cookies = rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Fatalf("expected an expiring cookie, got %+v", cookies)
	}
}
