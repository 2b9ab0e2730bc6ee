package http_nominations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/oscarparty/internal/delivery/http/common"
	http_session_middleware "github.com/humanbelnik/oscarparty/internal/delivery/http/middleware/session"
	infra_catalog "github.com/humanbelnik/oscarparty/internal/infra/catalog"
	infra_memory_session "github.com/humanbelnik/oscarparty/internal/infra/memory/session"
	service_password_auth "github.com/humanbelnik/oscarparty/internal/service/auth/password"
	usecase_auth "github.com/humanbelnik/oscarparty/internal/usecase/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) (*gin.Engine, string) {
	gin.SetMode(gin.TestMode)
	auth := usecase_auth.New(service_password_auth.New(service_password_auth.Hash("pw"), ""), infra_memory_session.New(time.Hour))
	sess, err := auth.Login(context.Background(), "pw")
	require.NoError(t, err)

	r := gin.New()
	New(infra_catalog.MustLoad(), http_session_middleware.New(auth)).RegisterRoutes(r.Group("/api"))
	return r, sess.Token
}

func get[T any](t *testing.T, r http.Handler, path, token string) (int, T) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(http_common.SessionHeader, token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out T
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func TestList(t *testing.T) {
	r, token := newRouter(t)

	testCases := []struct {
		tier  string
		count int
		first string
	}{
		{tier: "", count: 24, first: "bestPicture"},
		{tier: "?tier=above", count: 8, first: "bestPicture"},
		{tier: "?tier=below", count: 16},
	}

	for _, tc := range testCases {
		t.Run("tier"+tc.tier, func(t *testing.T) {
			code, cats := get[[]http_common.CategoryDTO](t, r, "/api/nominations"+tc.tier, token)

			require.Equal(t, http.StatusOK, code)
			require.Len(t, cats, tc.count)
			if tc.first != "" {
				assert.Equal(t, tc.first, cats[0].ID)
			}
			for _, c := range cats {
				if tc.tier == "?tier=below" {
					assert.False(t, c.AboveTheLine)
				}
				assert.NotEmpty(t, c.Nominees)
			}
		})
	}

	code, _ := get[[]http_common.CategoryDTO](t, r, "/api/nominations?tier=middle", token)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCategory(t *testing.T) {
	r, token := newRouter(t)

	code, cat := get[http_common.CategoryDTO](t, r, "/api/nominations/bestPicture", token)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "film", cat.DisplayMode)
	assert.NotEmpty(t, cat.Nominees[0].Producers)

	code, cat = get[http_common.CategoryDTO](t, r, "/api/nominations/directing", token)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "person", cat.DisplayMode)
	assert.Empty(t, cat.Nominees[0].Producers)
	assert.Equal(t, "Hamnet", cat.Nominees[0].Film)

	code, _ = get[http_common.CategoryDTO](t, r, "/api/nominations/bestGrip", token)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestFilms(t *testing.T) {
	r, token := newRouter(t)

	code, films := get[[]http_common.FilmDTO](t, r, "/api/films", token)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, films, 50)

	code, trailers := get[[]http_common.FilmDTO](t, r, "/api/films/trailers", token)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, trailers, 10)
	for _, f := range trailers {
		assert.NotEmpty(t, f.TrailerURL)
	}

	code, featured := get[FeaturedResponseDTO](t, r, "/api/films/featured", token)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, featured.Titles)
	assert.Equal(t, "Bugonia", featured.Titles[0])
}

func TestRequiresSession(t *testing.T) {
	r, _ := newRouter(t)

	code, _ := get[[]http_common.FilmDTO](t, r, "/api/films", "bogus")

	assert.Equal(t, http.StatusUnauthorized, code)
}
