package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/config"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/auth"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/payments"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/store"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/store/memory"
)

var tokens = map[string]string{
	"root-token":  "root@eyeside.io",
	"guest-token": "guest@eyeside.io",
}

type stubGateway struct{ calls int }

func (g *stubGateway) CreateIntent(context.Context, payments.IntentRequest) (string, error) {
	g.calls++
	return "pi_1_secret_x", nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{CORSOrigins: []string{"*"}},
		Payment: config.PaymentConfig{Currency: "usd", RateLimit: 1, RateBurst: 2},
		App:     config.AppConfig{Environment: "test"},
	}
}

func setupRouter(t *testing.T) (*gin.Engine, store.Store, *stubGateway) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := memory.New()
	for _, d := range []store.Document{
		{"email": "root@eyeside.io", "role": "admin"},
		{"email": "guest@eyeside.io"},
	} {
		_, err := store.Users(s).InsertOne(context.Background(), d)
		require.NoError(t, err)
	}

	verifier := auth.VerifierFunc(func(_ context.Context, token string) (string, error) {
		if email, ok := tokens[token]; ok {
			return email, nil
		}
		return "", auth.ErrInvalidToken
	})

	gw := &stubGateway{}
	r := BuildRouter(RouterDeps{
		ServiceName: "eyeside-api",
		Version:     "test",
		Config:      testConfig(),
		Store:       s,
		Verifier:    verifier,
		Gateway:     gw,
	})
	return r, s, gw
}

func do(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func assertForbidden(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, http.StatusForbidden, rr.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, auth.ForbiddenMessage, body["message"])
}

func TestRouter_Liveness(t *testing.T) {
	r, _, _ := setupRouter(t)

	rr := do(r, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Server is running fine", rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
}

func TestRouter_AdminRoutes(t *testing.T) {
	r, _, _ := setupRouter(t)

	adminCalls := []struct{ method, path, body string }{
		{http.MethodGet, "/admin/orders", ""},
		{http.MethodPost, "/admin/addproduct", `{"name":"Sylhet"}`},
		{http.MethodPut, "/admin/status/abc", `{"status":"approved"}`},
		{http.MethodPut, "/admin/addadmin", `{"email":"guest@eyeside.io"}`},
		{http.MethodDelete, "/admin/order/abc", ""},
	}

	for _, tc := range adminCalls {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			assertForbidden(t, do(r, tc.method, tc.path, "", tc.body))
			assertForbidden(t, do(r, tc.method, tc.path, "bad-token", tc.body))
			assertForbidden(t, do(r, tc.method, tc.path, "guest-token", tc.body))
		})
	}

	// Admin calls run last; addadmin promotes the guest.
	for _, tc := range adminCalls {
		rr := do(r, tc.method, tc.path, "root-token", tc.body)
		assert.Equal(t, http.StatusOK, rr.Code, "%s %s", tc.method, tc.path)
	}

	rr := do(r, http.MethodGet, "/user/guest@eyeside.io", "", "")
	assert.JSONEq(t, `{"admin":true}`, rr.Body.String())
}

func TestRouter_AddReview(t *testing.T) {
	r, s, _ := setupRouter(t)

	assertForbidden(t, do(r, http.MethodPost, "/addreview", "", `{"text":"great"}`))
	assertForbidden(t, do(r, http.MethodPost, "/addreview", "bad-token", `{"text":"great"}`))

	rr := do(r, http.MethodPost, "/addreview", "guest-token", `{"text":"great"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	reviews, err := store.Reviews(s).Find(context.Background(), store.All(), 0)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestRouter_PublicRoutesIgnoreBadTokens(t *testing.T) {
	r, _, _ := setupRouter(t)

	rr := do(r, http.MethodGet, "/products", "bad-token", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestRouter_PaymentIntentRateLimited(t *testing.T) {
	r, _, gw := setupRouter(t)

	for i := 0; i < 2; i++ {
		rr := do(r, http.MethodPost, "/create-payment-intent", "", `{"price":19.999}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"clientSecret":"pi_1_secret_x"}`, rr.Body.String())
	}

	rr := do(r, http.MethodPost, "/create-payment-intent", "", `{"price":19.999}`)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, 2, gw.calls)
}

func TestRouter_CORSPreflight(t *testing.T) {
	r, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/adduser", nil)
	req.Header.Set("Origin", "https://eyeside.web.app")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSConfig(t *testing.T) {
	all := corsConfig([]string{"*"})
	assert.True(t, all.AllowAllOrigins)
	assert.False(t, all.AllowCredentials)

	listed := corsConfig([]string{"https://eyeside.web.app"})
	assert.False(t, listed.AllowAllOrigins)
	assert.True(t, listed.AllowCredentials)
	assert.Equal(t, []string{"https://eyeside.web.app"}, listed.AllowOrigins)
}

func TestRouter_AddUserKeepsDuplicates(t *testing.T) {
	r, s, _ := setupRouter(t)

	for i := 0; i < 2; i++ {
		rr := do(r, http.MethodPost, "/adduser", "", `{"email":"dup@eyeside.io"}`)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	docs, err := store.Users(s).Find(context.Background(), store.Eq("email", "dup@eyeside.io"), 0)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestRouter_RateLimitIgnoresForwardedFor(t *testing.T) {
	r, _, gw := setupRouter(t)

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(`{"price":5}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{200, 200, 429, 429, 429}, codes)
	assert.Equal(t, 2, gw.calls)
}

func TestRouter_TrustedProxyForwardedFor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.Server.TrustedProxies = []string{"192.0.2.1"}

	gw := &stubGateway{}
	r := BuildRouter(RouterDeps{Config: cfg, Store: memory.New(), Verifier: auth.DisabledVerifier{}, Gateway: gw})

	// httptest requests come from 192.0.2.1, so each forwarded client gets its own budget.
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(`{"price":5}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	}
	assert.Equal(t, 3, gw.calls)
}
