package handler

import (
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-storefront/internal/api"
	"github.com/fekuna/omnipos-storefront/internal/i18n"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc     product.UseCase
	tr     i18n.Translator
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, tr i18n.Translator, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		tr:     tr,
		logger: log,
	}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filters, err := dto.ParseFilters(r.URL.Query())
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.uc.ListProducts(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		api.WriteError(w, http.StatusBadGateway, h.tr.T("catalog.products_failed", nil))
		return
	}
	api.WriteJSON(w, http.StatusOK, list)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, h.tr.T("catalog.product_not_found", nil))
		return
	}

	p, err := h.uc.GetProduct(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get product", zap.Int64("product_id", id), zap.Error(err))
		api.WriteError(w, http.StatusBadGateway, h.tr.T("catalog.products_failed", nil))
		return
	}
	if p == nil {
		api.WriteError(w, http.StatusNotFound, h.tr.T("catalog.product_not_found", nil))
		return
	}
	api.WriteJSON(w, http.StatusOK, p)
}
