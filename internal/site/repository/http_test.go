package repository

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-storefront/internal/storeapi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigAndAnnouncements(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/config/":
			_, _ = io.WriteString(w, `{"whatsapp_phone":"+54 9 353 400-0000","alias_or_cbu":"naranja.mp","shipping_cost":"1500.00","updated_at":null}`)
		case "/announcements/":
			_, _ = io.WriteString(w, `[{"id":1,"title":"Feriado","message":"Cerramos el lunes","active":true,"start_at":null,"end_at":null,"created_at":"2025-05-01T10:00:00Z"}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	repo := NewHTTPRepository(storeapi.NewClient(&storeapi.Config{BaseURL: srv.URL}, nil))

	cfg, err := repo.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "naranja.mp", cfg.AliasOrCBU)
	assert.True(t, cfg.ShippingCost.Equal(decimal.NewFromInt(1500)))
	assert.Nil(t, cfg.UpdatedAt)

	ann, err := repo.ListAnnouncements(context.Background())
	require.NoError(t, err)
	require.Len(t, ann, 1)
	assert.Equal(t, "Feriado", ann[0].Title)
	require.NotNil(t, ann[0].CreatedAt)
}
