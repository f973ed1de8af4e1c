package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func adminToken(t *testing.T, h http.Handler, apiKey string) (string, int) {
	t.Helper()
	rec := postJSON(t, h, "/admin/token", `{"api_key":"`+apiKey+`"}`)
	if rec.Code != http.StatusOK {
		return "", rec.Code
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode token response: %v", err)
	}
	return resp.Token, rec.Code
}

func TestAdminTokenExchange(t *testing.T) {
	h := newTestRouter(t)

	if _, code := adminToken(t, h, "wrong-key"); code != http.StatusUnauthorized {
		t.Errorf("wrong key: status = %d, want 401", code)
	}

	token, code := adminToken(t, h, "test-key")
	if code != http.StatusOK {
		t.Fatalf("right key: status = %d, want 200", code)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
}

func TestAdminEndpointsRequireAuth(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		bearer string
	}{
		{"reload no header", http.MethodPost, "/admin/reload", ""},
		{"stats no header", http.MethodGet, "/admin/stats", ""},
		{"requests no header", http.MethodGet, "/admin/requests", ""},
		{"garbage token", http.MethodPost, "/admin/reload", "not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestAdminReload(t *testing.T) {
	h := newTestRouter(t)

	token, _ := adminToken(t, h, "test-key")

	req := httptest.NewRequest(http.MethodPost, "/admin/reload", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Loaded    int               `json:"loaded"`
		Languages []json.RawMessage `json:"languages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Loaded != 2 {
		t.Errorf("loaded = %d, want 2 (en_US and yue fixtures)", resp.Loaded)
	}
	if len(resp.Languages) == 0 {
		t.Error("expected per-language results")
	}
}

func TestAdminStatsWithoutDatabase(t *testing.T) {
	h := newTestRouter(t)

	token, _ := adminToken(t, h, "test-key")

	for _, path := range []string{"/admin/stats", "/admin/requests"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: status = %d, want 503", path, rec.Code)
		}
	}
}

func TestAdminRejectsTokensWithoutSecret(t *testing.T) {
	h := newTestRouterWithConfig(t, RouterConfig{JWTExpiry: time.Hour})

	// A token signed with an empty HMAC key must not pass verification
	// when no secret is configured.
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: "admin",
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(""))
	if err != nil {
		t.Fatalf("sign forged token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/reload", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status with empty-key token = %d, want 503", rec.Code)
	}
}

func TestAdminTokenNotConfigured(t *testing.T) {
	h := newTestRouterWithConfig(t, RouterConfig{})

	rec := postJSON(t, h, "/admin/token", `{"api_key":"anything"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
