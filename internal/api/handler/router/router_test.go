package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/vikareta-analytics-api/pkg/apiErrors"
)

func tagMiddleware(tag string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Trace", tag)
			next.ServeHTTP(w, r)
		})
	}
}

func TestRouter_AddRoutes(t *testing.T) {
	rt := New(WithRoutes(Route{
		Path:   "/v1/campaigns/:id",
		Method: http.MethodGet,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(httprouter.ParamsFromContext(r.Context()).ByName("id")))
		}),
		Middlewares: []func(http.Handler) http.Handler{tagMiddleware("first"), tagMiddleware("second")},
	}))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/campaigns/c-42", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "c-42", rec.Body.String())
	assert.Equal(t, []string{"first", "second"}, rec.Header().Values("X-Trace"))
}

func TestRouter_Fallbacks(t *testing.T) {
	rt := New(WithRoutes(Route{
		Path:    "/healthcheck",
		Method:  http.MethodGet,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	}))

	t.Run("rota inexistente", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.True(t, strings.Contains(rec.Body.String(), apiErrors.ErrRouteNotFound))
	})

	t.Run("método não permitido", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/healthcheck", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Contains(t, rec.Body.String(), apiErrors.ErrMethodNotAllowed)
		assert.Contains(t, rec.Header().Get("Allow"), http.MethodGet)
	})
}
