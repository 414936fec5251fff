package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := IssueToken(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	uid, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if uid != 42 {
		t.Errorf("uid = %d, want 42", uid)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	for _, tok := range []string{"", "not.a.token", "eyJhbGciOiJIUzI1NiJ9.e30.invalid"} {
		if _, err := VerifyToken(tok); err == nil {
			t.Errorf("token %q should be rejected", tok)
		}
	}
}

func TestMiddlewareAttachesUserID(t *testing.T) {
	token, err := IssueToken(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	var got uint
	var ok bool
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = UserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if !ok || got != 7 {
		t.Errorf("context uid = %d (ok=%v), want 7", got, ok)
	}
}

func TestRequireAuthWithoutToken(t *testing.T) {
	h := Middleware(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run without a token")
	})))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 got %d", w.Code)
	}
}

func TestMiddlewareIgnoresTamperedToken(t *testing.T) {
	token, _ := IssueToken(7)
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserIDFromContext(r.Context()); ok {
			t.Error("tampered token must not authenticate")
		}
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")
	h.ServeHTTP(httptest.NewRecorder(), req)
}
