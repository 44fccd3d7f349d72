package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/api"
	"github.com/fekuna/omnipos-storefront/internal/checkout"
	"github.com/fekuna/omnipos-storefront/internal/checkout/dto"
	"github.com/fekuna/omnipos-storefront/internal/coupon"
	"github.com/fekuna/omnipos-storefront/internal/i18n"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/pricing"
	"github.com/fekuna/omnipos-storefront/internal/session"
	"github.com/fekuna/omnipos-storefront/internal/site"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const lockTTL = 30 * time.Second

// Locker guards a checkout across storefront instances. *cache.RedisClient
// implements it.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}

type CheckoutHandler struct {
	coupons    coupon.Repository
	site       site.UseCase
	aggregator *pricing.Aggregator
	locker     Locker
	tr         i18n.Translator
	logger     logger.ZapLogger
}

// NewCheckoutHandler builds the handler. locker may be nil when only one
// instance serves a session.
func NewCheckoutHandler(coupons coupon.Repository, siteUC site.UseCase, locker Locker, tr i18n.Translator, log logger.ZapLogger) *CheckoutHandler {
	return &CheckoutHandler{
		coupons:    coupons,
		site:       siteUC,
		aggregator: pricing.NewAggregator(tr),
		locker:     locker,
		tr:         tr,
		logger:     log,
	}
}

func (h *CheckoutHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	var req dto.ApplyCouponRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, h.tr.T("request.invalid", nil))
		return
	}

	code := strings.TrimSpace(req.Code)
	sess.DropCoupon()
	if code == "" {
		api.WriteError(w, http.StatusUnprocessableEntity, h.tr.T("coupon.empty", nil))
		return
	}
	// The typed code travels with the order even when it does not validate.
	sess.CouponCode = code

	info, err := h.coupons.ValidateCoupon(r.Context(), code)
	if err != nil {
		h.logger.Error("failed to validate coupon", zap.String("code", code), zap.Error(err))
		api.WriteError(w, http.StatusBadGateway, h.tr.T("coupon.validation_failed", nil))
		return
	}
	sess.ApplyCoupon(code, info)

	status := coupon.Check(info, sess.Cart.Subtotal())
	var msg string
	switch status {
	case coupon.StatusInvalid:
		msg = h.tr.T("coupon.invalid", nil)
	case coupon.StatusBelowMinimum:
		msg = h.tr.T("coupon.below_minimum", map[string]any{"Amount": pricing.FormatARS(info.MinSubtotal)})
	default:
		msg = h.tr.T("coupon.applied", nil)
	}

	api.WriteJSON(w, http.StatusOK, dto.CouponResponse{
		Code:    code,
		Status:  status,
		Message: msg,
		Coupon:  info,
	})
}

func (h *CheckoutHandler) DropCoupon(w http.ResponseWriter, r *http.Request) {
	session.FromContext(r.Context()).DropCoupon()
	w.WriteHeader(http.StatusNoContent)
}

func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	delivery := model.DeliveryMethod(r.URL.Query().Get("delivery_method"))
	if delivery == "" {
		delivery = model.DeliveryHome
	}
	if !delivery.Valid() {
		api.WriteError(w, http.StatusBadRequest, h.tr.T("request.invalid", nil))
		return
	}

	cfg := h.site.ConfigOrDefault(r.Context())
	summary := h.aggregator.Aggregate(pricing.Input{
		Lines:          sess.Cart.Lines(),
		Coupon:         sess.Coupon,
		DeliveryMethod: delivery,
		BaseShipping:   cfg.ShippingCost,
	})
	api.WriteJSON(w, http.StatusOK, summary)
}

func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	var req dto.SubmitRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, h.tr.T("request.invalid", nil))
		return
	}

	release, ok := h.lock(r.Context(), sess.ID)
	if !ok {
		api.WriteError(w, http.StatusConflict, h.tr.T("checkout.in_progress", nil))
		return
	}
	defer release()

	res, err := sess.Checkout.Submit(r.Context(), checkout.Request{
		Form:       req.CheckoutForm,
		CouponCode: sess.CouponCode,
		Site:       h.site.ConfigOrDefault(r.Context()),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	sess.DropCoupon()
	api.WriteJSON(w, http.StatusCreated, res)
}

// lock takes the cross-instance checkout lock. When the lock store is down
// the session mutex alone guards the submission.
func (h *CheckoutHandler) lock(ctx context.Context, sessionID string) (func(), bool) {
	if h.locker == nil {
		return func() {}, true
	}

	key := "checkout:lock:" + sessionID
	token := uuid.NewString()
	ok, err := h.locker.AcquireLock(ctx, key, token, lockTTL)
	if err != nil {
		h.logger.Warn("checkout lock unavailable", zap.String("session_id", sessionID), zap.Error(err))
		return func() {}, true
	}
	if !ok {
		return nil, false
	}
	return func() {
		if err := h.locker.ReleaseLock(context.WithoutCancel(ctx), key, token); err != nil {
			h.logger.Warn("failed to release checkout lock", zap.String("session_id", sessionID), zap.Error(err))
		}
	}, true
}

func (h *CheckoutHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		api.WriteError(w, http.StatusUnprocessableEntity, h.tr.T("checkout.empty_cart", nil))
	case errors.Is(err, checkout.ErrInvalidForm):
		api.WriteError(w, http.StatusUnprocessableEntity, h.tr.T("checkout.invalid_form", nil))
	case errors.Is(err, checkout.ErrAddressRequired):
		api.WriteError(w, http.StatusUnprocessableEntity, h.tr.T("checkout.address_required", nil))
	case errors.Is(err, checkout.ErrOrderFailed):
		api.WriteError(w, http.StatusBadGateway, h.tr.T("checkout.order_failed", nil))
	default:
		h.logger.Error("checkout failed", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, h.tr.T("checkout.order_failed", nil))
	}
}
