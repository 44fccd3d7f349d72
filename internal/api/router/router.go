package router

import (
	"net/http"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/api"
	cartH "github.com/fekuna/omnipos-storefront/internal/cart/handler"
	catH "github.com/fekuna/omnipos-storefront/internal/category/handler"
	checkoutH "github.com/fekuna/omnipos-storefront/internal/checkout/handler"
	homeH "github.com/fekuna/omnipos-storefront/internal/home/handler"
	"github.com/fekuna/omnipos-storefront/internal/i18n"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	m "github.com/fekuna/omnipos-storefront/internal/middleware"
	prodH "github.com/fekuna/omnipos-storefront/internal/product/handler"
	"github.com/fekuna/omnipos-storefront/internal/session"
	siteH "github.com/fekuna/omnipos-storefront/internal/site/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Home     *homeH.HomeHandler
	Category *catH.CategoryHandler
	Product  *prodH.ProductHandler
	Site     *siteH.SiteHandler
	Cart     *cartH.CartHandler
	Checkout *checkoutH.CheckoutHandler
}

type SessionConfig struct {
	Registry   *session.Registry
	CookieName string
	TTL        time.Duration
}

func SetupRouter(h *Handlers, sess SessionConfig, tr i18n.Translator, log logger.ZapLogger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(m.RequestLogger(log))
	r.Use(m.Recoverer(log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/home", h.Home.GetHome)
		r.Get("/categories", h.Category.ListCategories)
		r.Get("/products", h.Product.ListProducts)
		r.Get("/products/{id}", h.Product.GetProduct)
		r.Get("/config", h.Site.GetConfig)
		r.Get("/announcements", h.Site.ListAnnouncements)

		r.Group(func(r chi.Router) {
			r.Use(session.Middleware(sess.Registry, sess.CookieName, sess.TTL, tr))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.Cart.GetCart)
				r.Delete("/", h.Cart.ClearCart)
				r.Post("/items", h.Cart.AddItem)
				r.Put("/items/{id}", h.Cart.SetQuantity)
				r.Delete("/items/{id}", h.Cart.RemoveItem)
				r.Post("/visibility", h.Cart.SetVisibility)
				r.Get("/title", h.Cart.GetTitle)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/", h.Checkout.Submit)
				r.Post("/coupon", h.Checkout.ApplyCoupon)
				r.Delete("/coupon", h.Checkout.DropCoupon)
				r.Get("/summary", h.Checkout.Summary)
			})
		})
	})

	return r
}
