package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-storefront/internal/api"
	"github.com/fekuna/omnipos-storefront/internal/category"
	"github.com/fekuna/omnipos-storefront/internal/i18n"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/internal/site"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type HomeResponse struct {
	Categories    []model.Category     `json:"categories"`
	Products      *dto.ProductList     `json:"products"`
	Announcements []model.Announcement `json:"announcements"`
}

// HomeHandler loads everything the landing page shows in one round trip.
type HomeHandler struct {
	categories category.UseCase
	products   product.UseCase
	site       site.UseCase
	tr         i18n.Translator
	logger     logger.ZapLogger
}

func NewHomeHandler(categories category.UseCase, products product.UseCase, siteUC site.UseCase, tr i18n.Translator, log logger.ZapLogger) *HomeHandler {
	return &HomeHandler{
		categories: categories,
		products:   products,
		site:       siteUC,
		tr:         tr,
		logger:     log,
	}
}

func (h *HomeHandler) GetHome(w http.ResponseWriter, r *http.Request) {
	var resp HomeResponse
	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		list, err := h.categories.ListCategories(ctx)
		if err != nil {
			return &loadError{key: "catalog.categories_failed", err: err}
		}
		resp.Categories = list
		return nil
	})
	g.Go(func() error {
		list, err := h.products.ListProducts(ctx, &dto.ProductFilters{})
		if err != nil {
			return &loadError{key: "catalog.products_failed", err: err}
		}
		resp.Products = list
		return nil
	})
	g.Go(func() error {
		resp.Announcements = h.announcements(ctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		key := "catalog.products_failed"
		var le *loadError
		if errors.As(err, &le) {
			key = le.key
		}
		h.logger.Error("failed to load home", zap.Error(err))
		api.WriteError(w, http.StatusBadGateway, h.tr.T(key, nil))
		return
	}
	api.WriteJSON(w, http.StatusOK, resp)
}

// announcements are optional on the landing page.
func (h *HomeHandler) announcements(ctx context.Context) []model.Announcement {
	list, err := h.site.ListAnnouncements(ctx)
	if err != nil {
		h.logger.Warn("failed to load announcements", zap.Error(err))
		return []model.Announcement{}
	}
	return list
}

type loadError struct {
	key string
	err error
}

func (e *loadError) Error() string { return e.key + ": " + e.err.Error() }
func (e *loadError) Unwrap() error { return e.err }
