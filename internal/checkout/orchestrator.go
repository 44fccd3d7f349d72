package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/i18n"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/order"
	"github.com/fekuna/omnipos-storefront/internal/storeapi"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidForm     = errors.New("invalid checkout form")
	ErrAddressRequired = errors.New("delivery address required")
	ErrOrderFailed     = errors.New("order submission failed")
)

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Cart is the part of the cart store checkout reads and clears.
type Cart interface {
	Lines() []model.CartLine
	IsEmpty() bool
	Clear(ctx context.Context) error
}

type Shop struct {
	Name    string
	Address string
	// WhatsAppPhone overrides the phone from the site config when set.
	WhatsAppPhone string
	Location      *time.Location
}

type Request struct {
	Form       model.CheckoutForm
	CouponCode string
	Site       *model.SiteConfig
}

type Result struct {
	Order       *model.Order  `json:"order"`
	Message     string        `json:"message"`
	WhatsAppURL string        `json:"whatsapp_url,omitempty"`
	Transfer    *TransferInfo `json:"transfer,omitempty"`
	Notice      string        `json:"notice"`
}

// Orchestrator submits one session's cart as an order. Like the cart it
// is single-owner: callers must not run two submissions at once.
type Orchestrator struct {
	orders    order.Repository
	cart      Cart
	publisher *EventPublisher
	shop      Shop
	tr        i18n.Translator
	now       func() time.Time
	logger    logger.ZapLogger
	state     State
}

type Option func(*Orchestrator)

func WithPublisher(p *EventPublisher) Option {
	return func(o *Orchestrator) { o.publisher = p }
}

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

func NewOrchestrator(orders order.Repository, cart Cart, shop Shop, tr i18n.Translator, log logger.ZapLogger, opts ...Option) *Orchestrator {
	if shop.Location == nil {
		shop.Location = time.Local
	}
	o := &Orchestrator{
		orders: orders,
		cart:   cart,
		shop:   shop,
		tr:     tr,
		now:    time.Now,
		logger: log,
		state:  StateIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) State() State {
	return o.state
}

// Submit validates the cart and form locally, creates the order and, on
// success, builds the WhatsApp summary and clears the cart. Local guard
// failures make no network call and leave the state untouched. A failed
// order leaves the cart as it was.
func (o *Orchestrator) Submit(ctx context.Context, req Request) (*Result, error) {
	if o.cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if err := validate(&req.Form); err != nil {
		return nil, err
	}
	site := req.Site
	if site == nil {
		site = &model.SiteConfig{}
	}

	lines := o.cart.Lines()
	payload := buildPayload(&req.Form, lines, req.CouponCode)

	o.state = StateSubmitting
	created, err := o.orders.CreateOrder(ctx, payload)
	if err != nil {
		o.state = StateFailed
		fields := []zap.Field{zap.Error(err)}
		var apiErr *storeapi.Error
		if errors.As(err, &apiErr) {
			fields = append(fields, zap.Int("status", apiErr.Status), zap.String("detail", apiErr.Detail))
		}
		o.logger.Error("failed to create order", fields...)
		return nil, fmt.Errorf("%w: %w", ErrOrderFailed, err)
	}

	msg := o.buildMessage(created, &req.Form, lines)
	res := &Result{
		Order:   created,
		Message: msg,
		Notice:  o.tr.T("checkout.sent", nil),
	}

	phone := o.shop.WhatsAppPhone
	if phone == "" {
		phone = site.WhatsAppPhone
	}
	res.WhatsAppURL = WhatsAppURL(phone, msg)

	payment := created.PaymentMethod
	if payment == "" {
		payment = req.Form.PaymentMethod
	}
	if payment == model.PaymentTransfer {
		res.Transfer = NewTransferInfo(o.tr, site)
	}

	if o.publisher != nil {
		if err := o.publisher.OrderCreated(ctx, created, payload); err != nil {
			o.logger.Warn("failed to publish OrderCreated", zap.Int64("order_id", created.ID), zap.Error(err))
		}
	}

	if err := o.cart.Clear(ctx); err != nil {
		o.logger.Error("failed to clear cart after order", zap.Int64("order_id", created.ID), zap.Error(err))
	}
	o.state = StateSucceeded
	return res, nil
}

func validate(f *model.CheckoutForm) error {
	f.Name = strings.TrimSpace(f.Name)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Address = strings.TrimSpace(f.Address)
	f.Notes = strings.TrimSpace(f.Notes)

	if f.Name == "" || f.Phone == "" {
		return ErrInvalidForm
	}
	if !f.PaymentMethod.Valid() || !f.DeliveryMethod.Valid() {
		return ErrInvalidForm
	}
	if f.DeliveryMethod == model.DeliveryHome && f.Address == "" {
		return ErrAddressRequired
	}
	return nil
}

func buildPayload(f *model.CheckoutForm, lines []model.CartLine, couponCode string) *model.OrderPayload {
	address := f.Address
	if f.DeliveryMethod == model.DeliveryPickup {
		address = ""
	}

	items := make([]model.OrderItemPayload, 0, len(lines))
	for _, l := range lines {
		q := l.Quantity
		if q < 1 {
			q = 1
		}
		items = append(items, model.OrderItemPayload{ProductID: l.Product.ID, Quantity: q})
	}

	return &model.OrderPayload{
		Name:           f.Name,
		Phone:          f.Phone,
		Address:        address,
		Notes:          f.Notes,
		PaymentMethod:  f.PaymentMethod,
		DeliveryMethod: f.DeliveryMethod,
		Items:          items,
		CouponCode:     strings.TrimSpace(couponCode),
	}
}
