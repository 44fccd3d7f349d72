package session

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/cart"
	"github.com/fekuna/omnipos-storefront/internal/checkout"
	"github.com/fekuna/omnipos-storefront/internal/i18n"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/order"
	"go.uber.org/zap"
)

type StoreBuilder struct {
	Carts            cart.Repository
	Orders           order.Repository
	Publisher        *checkout.EventPublisher
	Shop             checkout.Shop
	Translator       i18n.Translator
	Title            string
	ReminderTitle    string
	ReminderInterval time.Duration
	Logger           logger.ZapLogger
}

func (b *StoreBuilder) Build(ctx context.Context, id string) *Session {
	log := b.Logger.With(zap.String("session_id", id))

	s := &Session{
		ID:      id,
		Notices: &cart.NoticeQueue{},
		Title:   &TitleBoard{},
	}
	s.Title.SetTitle(b.Title)

	reminder := cart.NewReminder(s.Title, b.Title, b.ReminderTitle, b.ReminderInterval)
	s.Cart = cart.Load(ctx, b.Carts, id, log,
		cart.WithNotifier(s.Notices),
		cart.WithTranslator(b.Translator),
		cart.WithReminder(reminder),
	)

	var opts []checkout.Option
	if b.Publisher != nil {
		opts = append(opts, checkout.WithPublisher(b.Publisher))
	}
	s.Checkout = checkout.NewOrchestrator(b.Orders, s.Cart, b.Shop, b.Translator, log, opts...)
	return s
}
