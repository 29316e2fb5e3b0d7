package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/store"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/store/memory"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/users"
)

func setupRouter(t *testing.T, upsertOnCreate bool) (*gin.Engine, store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := memory.New()
	router := gin.New()
	New(users.NewService(s, upsertOnCreate)).Register(router)
	return router, s
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestAdminStatus(t *testing.T) {
	router, s := setupRouter(t, false)
	_, err := store.Users(s).InsertOne(context.Background(), store.Document{"email": "root@eyeside.io", "role": "admin"})
	require.NoError(t, err)
	_, err = store.Users(s).InsertOne(context.Background(), store.Document{"email": "guest@eyeside.io"})
	require.NoError(t, err)

	for email, want := range map[string]bool{
		"root@eyeside.io":   true,
		"guest@eyeside.io":  false,
		"nobody@eyeside.io": false,
	} {
		t.Run(email, func(t *testing.T) {
			rr := do(router, http.MethodGet, "/user/"+email, "")
			require.Equal(t, http.StatusOK, rr.Code)

			var body map[string]bool
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, want, body["admin"])
		})
	}
}

func TestSaveUser(t *testing.T) {
	router, s := setupRouter(t, false)

	rr := do(router, http.MethodPut, "/adduser", `{"email":"joy@eyeside.io","displayName":"Joy"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var res store.UpdateResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, int64(1), res.UpsertedCount)

	rr = do(router, http.MethodPut, "/adduser", `{"email":"joy@eyeside.io","displayName":"Joy"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, int64(1), res.MatchedCount)
	assert.Equal(t, int64(0), res.UpsertedCount)

	docs, err := store.Users(s).Find(context.Background(), store.Eq("email", "joy@eyeside.io"), 0)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	t.Run("missing email", func(t *testing.T) {
		rr := do(router, http.MethodPut, "/adduser", `{"displayName":"anon"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rr := do(router, http.MethodPut, "/adduser", `{"email":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCreateUser_InsertsEveryCall(t *testing.T) {
	router, s := setupRouter(t, false)

	for i := 0; i < 2; i++ {
		rr := do(router, http.MethodPost, "/adduser", `{"email":"joy@eyeside.io"}`)
		require.Equal(t, http.StatusOK, rr.Code)

		var res store.InsertResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
		assert.True(t, res.Acknowledged)
		assert.NotEmpty(t, res.InsertedID)
	}

	docs, err := store.Users(s).Find(context.Background(), store.Eq("email", "joy@eyeside.io"), 0)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestCreateUser_UpsertOnCreate(t *testing.T) {
	router, s := setupRouter(t, true)

	for i := 0; i < 2; i++ {
		rr := do(router, http.MethodPost, "/adduser", `{"email":"joy@eyeside.io"}`)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	docs, err := store.Users(s).Find(context.Background(), store.Eq("email", "joy@eyeside.io"), 0)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}
