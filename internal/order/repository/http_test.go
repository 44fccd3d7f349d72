package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/storeapi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, h http.HandlerFunc) *HTTPRepository {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPRepository(storeapi.NewClient(&storeapi.Config{BaseURL: srv.URL}, nil))
}

func TestCreateOrder(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/", r.URL.Path)
		var got model.OrderPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "Ana", got.Name)
		assert.Equal(t, []model.OrderItemPayload{{ProductID: 3, Quantity: 2}}, got.Items)
		assert.Equal(t, "VERANO", got.CouponCode)

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":42,"name":"Ana","phone":"351","address":"","notes":"",
			"payment_method":"cash","delivery_method":"pickup","total":"1800.00","shipping_cost":"0.00",
			"created_at":"2025-03-09T18:04:05-03:00"}`)
	})

	o, err := repo.CreateOrder(context.Background(), &model.OrderPayload{
		Name:           "Ana",
		Phone:          "351",
		PaymentMethod:  model.PaymentCash,
		DeliveryMethod: model.DeliveryPickup,
		Items:          []model.OrderItemPayload{{ProductID: 3, Quantity: 2}},
		CouponCode:     "VERANO",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), o.ID)
	assert.True(t, o.Total.Equal(decimal.NewFromInt(1800)))
	require.NotNil(t, o.CreatedAt)
}

func TestCreateOrderRejected(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"detail":"Stock insuficiente para Yerba"}`)
	})

	_, err := repo.CreateOrder(context.Background(), &model.OrderPayload{})

	var apiErr *storeapi.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Stock insuficiente para Yerba", apiErr.Detail)
}

func TestCreateOrderMalformed(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	})

	_, err := repo.CreateOrder(context.Background(), &model.OrderPayload{})
	assert.ErrorIs(t, err, errMissingID)
}
