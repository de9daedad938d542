package category_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-gudang/internal/category"
)

func newRouter(handler *category.Handler) chi.Router {
	r := chi.NewRouter()
	r.Route("/api/v1/categories", func(c chi.Router) {
		c.Get("/", handler.List)
		c.Post("/", handler.Create)
		c.Get("/{id}", handler.Get)
		c.Put("/{id}", handler.Update)
		c.Delete("/{id}", handler.Delete)
	})
	return r
}

func TestCategoryHandlers(t *testing.T) {
	svc, _ := newService()
	router := newRouter(&category.Handler{Service: svc})

	var created category.Item

	t.Run("create", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/categories/", strings.NewReader(`{"name":"Coffee"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Data category.Item `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "Coffee", resp.Data.Name)
		created = resp.Data
	})

	t.Run("get", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/"+created.ID.String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("update", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/categories/"+created.ID.String(), strings.NewReader(`{"name":"Tea"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing name rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/categories/", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/categories/"+created.ID.String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)

		listReq := httptest.NewRequest(http.MethodGet, "/api/v1/categories/", nil)
		listRec := httptest.NewRecorder()
		router.ServeHTTP(listRec, listReq)
		require.Equal(t, http.StatusOK, listRec.Code)

		var resp struct {
			Data []category.Item `json:"data"`
		}
		require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &resp))
		require.Empty(t, resp.Data)
	})
}
