package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	cartH "github.com/fekuna/omnipos-storefront/internal/cart/handler"
	cartrepo "github.com/fekuna/omnipos-storefront/internal/cart/repository"
	catH "github.com/fekuna/omnipos-storefront/internal/category/handler"
	"github.com/fekuna/omnipos-storefront/internal/checkout"
	checkoutH "github.com/fekuna/omnipos-storefront/internal/checkout/handler"
	homeH "github.com/fekuna/omnipos-storefront/internal/home/handler"
	"github.com/fekuna/omnipos-storefront/internal/i18n"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	prodH "github.com/fekuna/omnipos-storefront/internal/product/handler"
	"github.com/fekuna/omnipos-storefront/internal/session"
	siteH "github.com/fekuna/omnipos-storefront/internal/site/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	tr := i18n.MustNew("es")
	log := logger.NewNop()

	reg := session.NewRegistry(&session.StoreBuilder{
		Carts:      cartrepo.NewMemoryRepository(),
		Shop:       checkout.Shop{Location: time.UTC},
		Translator: tr,
		Title:      "Shop",
		Logger:     log,
	}, time.Hour, log)
	t.Cleanup(reg.Close)

	h := &Handlers{
		Home:     homeH.NewHomeHandler(nil, nil, nil, tr, log),
		Category: catH.NewCategoryHandler(nil, tr, log),
		Product:  prodH.NewProductHandler(nil, tr, log),
		Site:     siteH.NewSiteHandler(nil, tr, log),
		Cart:     cartH.NewCartHandler(nil, tr, log),
		Checkout: checkoutH.NewCheckoutHandler(nil, nil, nil, tr, log),
	}
	return SetupRouter(h, SessionConfig{Registry: reg, CookieName: "sid", TTL: time.Hour}, tr, log)
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCartRoutesIssueSession(t *testing.T) {
	r := newRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	id := rec.Header().Get(session.HeaderName)
	require.NotEmpty(t, id)
	assert.JSONEq(t, `{"lines":[],"subtotal":"0","count":0,"notices":[]}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/api/cart/title", nil)
	req.Header.Set(session.HeaderName, id)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.JSONEq(t, `{"title":"Shop"}`, rec.Body.String())
}

func TestCatalogRoutesSkipSession(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/abc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Header().Get(session.HeaderName))
}
