package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-storefront/internal/api"
	"github.com/fekuna/omnipos-storefront/internal/i18n"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/site"
	"go.uber.org/zap"
)

type SiteHandler struct {
	uc     site.UseCase
	tr     i18n.Translator
	logger logger.ZapLogger
}

func NewSiteHandler(uc site.UseCase, tr i18n.Translator, log logger.ZapLogger) *SiteHandler {
	return &SiteHandler{uc: uc, tr: tr, logger: log}
}

func (h *SiteHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.uc.GetConfig(r.Context())
	if err != nil {
		h.logger.Error("failed to load site config", zap.Error(err))
		api.WriteError(w, http.StatusBadGateway, h.tr.T("catalog.config_failed", nil))
		return
	}
	api.WriteJSON(w, http.StatusOK, cfg)
}

func (h *SiteHandler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	ann, err := h.uc.ListAnnouncements(r.Context())
	if err != nil {
		h.logger.Error("failed to list announcements", zap.Error(err))
		api.WriteError(w, http.StatusBadGateway, h.tr.T("catalog.announcements_failed", nil))
		return
	}
	api.WriteJSON(w, http.StatusOK, ann)
}
