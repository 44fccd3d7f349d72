package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-storefront/internal/api"
	"github.com/fekuna/omnipos-storefront/internal/category"
	"github.com/fekuna/omnipos-storefront/internal/i18n"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	uc     category.UseCase
	tr     i18n.Translator
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, tr i18n.Translator, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		tr:     tr,
		logger: log,
	}
}

func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.uc.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		api.WriteError(w, http.StatusBadGateway, h.tr.T("catalog.categories_failed", nil))
		return
	}
	api.WriteJSON(w, http.StatusOK, cats)
}
