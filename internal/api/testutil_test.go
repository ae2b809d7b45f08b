package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	svc    Services
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLite(t)
	svc := NewServices(db, nil, testSecret)

	router := gin.New()
	router.Use(middleware.Recovery())
	RegisterOpsRoutes(router, NewHealthHandler(db, nil))
	SetupAPI(router, svc)
	router.NoRoute(middleware.NotFound())

	return &testEnv{router: router, db: db, svc: svc}
}

// PerformRequestWithToken performs an HTTP request, adding a bearer token
// when token is not empty
func PerformRequestWithToken(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	router.ServeHTTP(w, req)
	return w
}

// signup creates an account through the API and returns its access token
func (e *testEnv) signup(t *testing.T, username string) string {
	t.Helper()
	w := PerformRequestWithToken(e.router, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Tokens struct {
			Access string `json:"access"`
		} `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Tokens.Access)
	return resp.Tokens.Access
}

type summary struct {
	RecipeID int64  `json:"recipe_id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
}

func decodeResults(t *testing.T, w *httptest.ResponseRecorder) []int64 {
	t.Helper()
	var resp struct {
		Results []summary `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return summaryIDs(resp.Results)
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []int64 {
	t.Helper()
	var list []summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	return summaryIDs(list)
}

func summaryIDs(list []summary) []int64 {
	ids := make([]int64, len(list))
	for i, s := range list {
		ids[i] = s.RecipeID
	}
	return ids
}
