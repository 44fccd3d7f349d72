package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-storefront/internal/i18n"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/stretchr/testify/assert"
)

type stubUseCase struct {
	cats []model.Category
	err  error
}

func (s *stubUseCase) ListCategories(context.Context) ([]model.Category, error) { return s.cats, s.err }
func (s *stubUseCase) InvalidateCache(context.Context) error                    { return nil }

func TestListCategories(t *testing.T) {
	h := NewCategoryHandler(&stubUseCase{cats: []model.Category{{ID: 1, Name: "Almacén", Slug: "almacen"}}}, i18n.MustNew("es"), logger.NewNop())

	rec := httptest.NewRecorder()
	h.ListCategories(rec, httptest.NewRequest(http.MethodGet, "/api/categories", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Almacén","slug":"almacen"}]`, rec.Body.String())
}

func TestListCategoriesFailureIsGeneric(t *testing.T) {
	h := NewCategoryHandler(&stubUseCase{err: errors.New("dial tcp: refused")}, i18n.MustNew("es"), logger.NewNop())

	rec := httptest.NewRecorder()
	h.ListCategories(rec, httptest.NewRequest(http.MethodGet, "/api/categories", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"Error al cargar categorías"}`, rec.Body.String())
}
