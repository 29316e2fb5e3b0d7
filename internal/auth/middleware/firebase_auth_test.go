package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/auth"
)

func TestGate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var calls int
	verifier := auth.VerifierFunc(func(_ context.Context, token string) (string, error) {
		calls++
		if token == "good" {
			return "joy@eyeside.io", nil
		}
		return "", auth.ErrInvalidToken
	})

	testCases := []struct {
		name      string
		header    string
		wantEmail string
		wantCalls int
	}{
		{"no header", "", "", 0},
		{"valid token", "Bearer good", "joy@eyeside.io", 1},
		{"invalid token passes through", "Bearer expired", "", 1},
		{"wrong scheme", "Basic good", "", 0},
		{"bare prefix", "Bearer ", "", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			calls = 0
			router := gin.New()
			router.Use(Gate(verifier, true))

			var gotEmail string
			router.GET("/addreview", func(c *gin.Context) {
				if id, ok := auth.IdentityFrom(c); ok {
					gotEmail = id.Email
				}
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/addreview", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusNoContent, rr.Code, "gate never rejects")
			assert.Equal(t, tc.wantEmail, gotEmail)
			assert.Equal(t, tc.wantCalls, calls)
		})
	}
}
