package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cvforge/cvforge-go/internal/identity"
	"github.com/cvforge/cvforge-go/internal/model"
	"github.com/cvforge/cvforge-go/internal/service"
)

const testSecret = "test-secret"

func newTestAuthHandler(store *mockUserStore, verifier identity.Verifier) *AuthHandler {
	svc := service.NewAuthService(store, verifier, testSecret, time.Hour)
	return NewAuthHandler(svc)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestHandleRegister_ThenLogin(t *testing.T) {
	h := newTestAuthHandler(newMockUserStore(), nil)

	rr := postJSON(t, h.HandleRegister, "/register",
		`{"username":"ann","email":"ann@x.com","password":"Passw0rd"}`)

	if rr.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body)
	}

	var reg model.AuthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &reg); err != nil {
		t.Fatalf("decoding register response: %v", err)
	}
	if reg.Token == "" {
		t.Fatal("register returned empty token")
	}
	if reg.ID == 0 || reg.Username != "ann" || reg.Email != "ann@x.com" {
		t.Errorf("register projection = %+v", reg)
	}

	rr = postJSON(t, h.HandleLogin, "/login",
		`{"email":"ann@x.com","password":"Passw0rd"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("login status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body)
	}

	var login model.AuthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &login); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}
	if login.ID != reg.ID {
		t.Errorf("login user = %d, want %d", login.ID, reg.ID)
	}
}

func TestHandleRegister_MissingFields(t *testing.T) {
	h := newTestAuthHandler(newMockUserStore(), nil)

	rr := postJSON(t, h.HandleRegister, "/register", `{"email":"ann@x.com"}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}

	var body errorBody
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if len(body.Errors) != 2 {
		t.Errorf("errors = %v, want entries for username and password", body.Errors)
	}
}

func TestHandleRegister_DuplicateEmail(t *testing.T) {
	h := newTestAuthHandler(newMockUserStore(), nil)

	body := `{"username":"ann","email":"ann@x.com","password":"Passw0rd"}`
	if rr := postJSON(t, h.HandleRegister, "/register", body); rr.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", rr.Code)
	}

	rr := postJSON(t, h.HandleRegister, "/register", body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("second register status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rr.Body.String(), "already exists") {
		t.Errorf("body = %s, want duplicate message", rr.Body)
	}
}

func TestHandleRegister_InvalidJSON(t *testing.T) {
	h := newTestAuthHandler(newMockUserStore(), nil)

	rr := postJSON(t, h.HandleRegister, "/register", `{not json`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestHandleLogin_NoAccountEnumeration(t *testing.T) {
	h := newTestAuthHandler(newMockUserStore(), nil)

	if rr := postJSON(t, h.HandleRegister, "/register",
		`{"username":"ann","email":"ann@x.com","password":"Passw0rd"}`); rr.Code != http.StatusCreated {
		t.Fatalf("register status = %d", rr.Code)
	}

	unknown := postJSON(t, h.HandleLogin, "/login", `{"email":"no-such@x.com","password":"anything"}`)
	wrongPw := postJSON(t, h.HandleLogin, "/login", `{"email":"ann@x.com","password":"wrong-password"}`)

	if unknown.Code != http.StatusUnauthorized || wrongPw.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d and %d, want both %d", unknown.Code, wrongPw.Code, http.StatusUnauthorized)
	}
	if unknown.Body.String() != wrongPw.Body.String() {
		t.Errorf("error bodies differ: %s vs %s", unknown.Body, wrongPw.Body)
	}
}

func TestHandleGoogleLogin(t *testing.T) {
	claims := &identity.Claims{
		Subject: "10769150350006150715",
		Email:   "ann@x.com",
		Name:    "Ann Example",
		Picture: "https://lh3.googleusercontent.com/a/photo",
	}
	h := newTestAuthHandler(newMockUserStore(), &mockVerifier{claims: claims})

	rr := postJSON(t, h.HandleGoogleLogin, "/federated-login", `{"externalToken":"google-id-token"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body)
	}

	var resp model.AuthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Avatar != claims.Picture {
		t.Errorf("avatar = %q, want %q", resp.Avatar, claims.Picture)
	}
	if resp.Token == "" {
		t.Error("empty token")
	}
}

func TestHandleGoogleLogin_MissingToken(t *testing.T) {
	h := newTestAuthHandler(newMockUserStore(), &mockVerifier{})

	rr := postJSON(t, h.HandleGoogleLogin, "/federated-login", `{}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestHandleGoogleLogin_RejectedToken(t *testing.T) {
	h := newTestAuthHandler(newMockUserStore(), &mockVerifier{err: identity.ErrVerificationFailed})

	rr := postJSON(t, h.HandleGoogleLogin, "/federated-login", `{"externalToken":"forged"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}
