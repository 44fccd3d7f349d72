package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-storefront/internal/api"
	"github.com/fekuna/omnipos-storefront/internal/cart"
	"github.com/fekuna/omnipos-storefront/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront/internal/i18n"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/session"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CartHandler serves the session cart. Routes must sit behind
// session.Middleware.
type CartHandler struct {
	products product.UseCase
	tr       i18n.Translator
	logger   logger.ZapLogger
}

func NewCartHandler(products product.UseCase, tr i18n.Translator, log logger.ZapLogger) *CartHandler {
	return &CartHandler{
		products: products,
		tr:       tr,
		logger:   log,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w, session.FromContext(r.Context()), nil)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	var req dto.AddItemRequest
	if err := api.DecodeJSON(r, &req); err != nil || req.ProductID <= 0 {
		api.WriteError(w, http.StatusBadRequest, h.tr.T("request.invalid", nil))
		return
	}

	// The cart keeps the product as it is now, stock included.
	p, err := h.products.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		h.logger.Error("failed to load product for cart", zap.Int64("product_id", req.ProductID), zap.Error(err))
		api.WriteError(w, http.StatusBadGateway, h.tr.T("catalog.products_failed", nil))
		return
	}
	if p == nil {
		api.WriteError(w, http.StatusNotFound, h.tr.T("catalog.product_not_found", nil))
		return
	}

	qty, err := sess.Cart.Add(r.Context(), *p, req.Quantity)
	if err != nil && !errors.Is(err, cart.ErrOutOfStock) && !errors.Is(err, cart.ErrInsufficientStock) {
		h.writeError(w, err)
		return
	}
	h.writeCart(w, sess, &qty)
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, cart.ErrNotInCart)
		return
	}

	var req dto.SetQuantityRequest
	if err := api.DecodeJSON(r, &req); err != nil || (req.Quantity == nil && req.Input == nil) {
		api.WriteError(w, http.StatusBadRequest, h.tr.T("request.invalid", nil))
		return
	}

	var qty int
	switch {
	case req.Input != nil:
		line, ok := findLine(sess.Cart.Lines(), id)
		if !ok {
			h.writeError(w, cart.ErrNotInCart)
			return
		}
		qty = cart.ParseQuantity(*req.Input, line.Product.MaxQuantity())
	default:
		qty = *req.Quantity
	}

	stored, err := sess.Cart.SetQuantity(r.Context(), id, qty)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeCart(w, sess, &stored)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err == nil {
		err = sess.Cart.Remove(r.Context(), id)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeCart(w, sess, nil)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if err := sess.Cart.Clear(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeCart(w, sess, nil)
}

func (h *CartHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	var req dto.VisibilityRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, h.tr.T("request.invalid", nil))
		return
	}
	sess.Cart.SetHidden(req.Hidden)
	api.WriteJSON(w, http.StatusOK, dto.TitleResponse{Title: sess.Title.Title()})
}

func (h *CartHandler) GetTitle(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	api.WriteJSON(w, http.StatusOK, dto.TitleResponse{Title: sess.Title.Title()})
}

func (h *CartHandler) writeCart(w http.ResponseWriter, sess *session.Session, qty *int) {
	resp := dto.NewCartResponse(sess.Cart, sess.Notices.Drain())
	resp.Quantity = qty
	api.WriteJSON(w, http.StatusOK, resp)
}

func (h *CartHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrNotInCart):
		api.WriteError(w, http.StatusNotFound, h.tr.T("cart.not_in_cart", nil))
	default:
		h.logger.Error("cart operation failed", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, h.tr.T("request.failed", nil))
	}
}

func findLine(lines []model.CartLine, productID int64) (model.CartLine, bool) {
	for _, l := range lines {
		if l.Product.ID == productID {
			return l, true
		}
	}
	return model.CartLine{}, false
}
