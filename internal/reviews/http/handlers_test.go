package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/auth"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/store/memory"
)

func setupRouter(email string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if email != "" {
			auth.WithIdentity(c, auth.Identity{Email: email})
		}
		c.Next()
	})
	New(memory.New()).Register(router)
	return router
}

func addReview(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/addreview", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func listReviews(t *testing.T, router *gin.Engine) []map[string]any {
	t.Helper()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/reviews", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestAddReview_Authenticated(t *testing.T) {
	router := setupRouter("joy@eyeside.io")

	rr := addReview(router, `{"name":"Joy","rating":5,"text":"Loved Sajek"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	reviews := listReviews(t, router)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Loved Sajek", reviews[0]["text"])
}

func TestAddReview_Anonymous(t *testing.T) {
	router := setupRouter("")

	rr := addReview(router, `{"text":"spam"}`)
	require.Equal(t, http.StatusForbidden, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, auth.ForbiddenMessage, body["message"])

	assert.Empty(t, listReviews(t, router), "nothing stored")
}

func TestListReviews_Empty(t *testing.T) {
	assert.Empty(t, listReviews(t, setupRouter("")))
}
