package cart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fekuna/omnipos-storefront/internal/i18n"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrOutOfStock        = errors.New("product out of stock")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotInCart         = errors.New("product not in cart")
)

// Store is one shopper's cart. It is owned by a single caller and is not
// safe for concurrent use; the session layer serializes access.
type Store struct {
	repo     Repository
	key      string
	lines    []model.CartLine
	notifier Notifier
	tr       i18n.Translator
	reminder *Reminder
	logger   logger.ZapLogger
}

type Option func(*Store)

func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

func WithTranslator(tr i18n.Translator) Option {
	return func(s *Store) { s.tr = tr }
}

// WithReminder binds the abandoned-cart reminder to the store's lifetime.
func WithReminder(r *Reminder) Option {
	return func(s *Store) { s.reminder = r }
}

// Load restores the cart saved under key. A missing or unreadable slot
// yields an empty cart.
func Load(ctx context.Context, repo Repository, key string, log logger.ZapLogger, opts ...Option) *Store {
	s := &Store{
		repo:     repo,
		key:      key,
		lines:    []model.CartLine{},
		notifier: discardNotifier{},
		tr:       idTranslator{},
		logger:   log,
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, err := repo.Get(ctx, key)
	switch {
	case errors.Is(err, ErrSlotNotFound):
	case err != nil:
		s.logger.Warn("failed to read cart slot, starting empty", zap.String("key", key), zap.Error(err))
	default:
		var lines []model.CartLine
		if err := json.Unmarshal([]byte(raw), &lines); err != nil {
			s.logger.Warn("corrupt cart slot, starting empty", zap.String("key", key), zap.Error(err))
		} else {
			s.lines = dedupe(lines)
		}
	}

	if s.reminder != nil {
		s.reminder.Update(s.Count())
	}
	return s
}

// Add puts quantity units of product in the cart, capped at its stock, and
// returns the resulting line quantity.
func (s *Store) Add(ctx context.Context, product model.Product, quantity int) (int, error) {
	if quantity < 1 {
		quantity = 1
	}
	stock := product.MaxQuantity()

	if i := s.indexOf(product.ID); i >= 0 {
		current := s.lines[i].Quantity
		// saturating: current+quantity may overflow
		capped := quantity > stock-current
		next := stock
		if !capped {
			next = current + quantity
		}
		if next <= current {
			s.notify(KindInsufficientStock, LevelError, map[string]any{"Name": product.Name})
			return current, ErrInsufficientStock
		}
		s.lines[i].Quantity = next
		s.reportAdded(product.Name, capped)
		s.persist(ctx)
		return next, nil
	}

	initial := min(quantity, stock)
	if initial <= 0 {
		s.notify(KindOutOfStock, LevelError, map[string]any{"Name": product.Name})
		return 0, ErrOutOfStock
	}
	s.lines = append(s.lines, model.CartLine{Product: product, Quantity: initial})
	s.reportAdded(product.Name, initial < quantity)
	s.persist(ctx)
	return initial, nil
}

func (s *Store) Remove(ctx context.Context, productID int64) error {
	i := s.indexOf(productID)
	if i < 0 {
		return nil
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.notify(KindRemoved, LevelInfo, nil)
	s.persist(ctx)
	return nil
}

// SetQuantity stores quantity clamped to [1, stock] using the stock captured
// when the product was added, and returns the stored value.
func (s *Store) SetQuantity(ctx context.Context, productID int64, quantity int) (int, error) {
	i := s.indexOf(productID)
	if i < 0 {
		return 0, ErrNotInCart
	}

	max := s.lines[i].Product.MaxQuantity()
	next := clamp(quantity, 1, max)
	if next < quantity {
		s.notify(KindStockCeiling, LevelError, map[string]any{"Max": max})
	}
	s.lines[i].Quantity = next
	s.persist(ctx)
	return next, nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.lines = []model.CartLine{}
	s.notify(KindCleared, LevelWarning, nil)
	s.persist(ctx)
	return nil
}

// Lines returns a copy of the cart in insertion order.
func (s *Store) Lines() []model.CartLine {
	out := make([]model.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for i := range s.lines {
		total = total.Add(s.lines[i].Total())
	}
	return total
}

func (s *Store) Count() int {
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

func (s *Store) IsEmpty() bool {
	return len(s.lines) == 0
}

// SetHidden forwards a visibility change to the reminder.
func (s *Store) SetHidden(hidden bool) {
	if s.reminder != nil {
		s.reminder.SetHidden(hidden)
	}
}

// Close stops the reminder and restores the title.
func (s *Store) Close() {
	if s.reminder != nil {
		s.reminder.Close()
	}
}

func (s *Store) indexOf(productID int64) int {
	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) reportAdded(name string, capped bool) {
	data := map[string]any{"Name": name}
	if capped {
		s.notify(KindInsufficientStock, LevelWarning, data)
	}
	s.notify(KindAdded, LevelSuccess, data)
}

func (s *Store) notify(kind Kind, level Level, data map[string]any) {
	s.notifier.Notify(Notice{
		Kind:    kind,
		Level:   level,
		Message: s.tr.T("cart."+string(kind), data),
	})
}

// persist writes the whole cart. A failed write keeps the in-memory cart
// and is logged; the next mutation retries it.
func (s *Store) persist(ctx context.Context) {
	if s.reminder != nil {
		defer s.reminder.Update(s.Count())
	}

	data, err := json.Marshal(s.lines)
	if err != nil {
		s.logger.Error("failed to encode cart", zap.String("key", s.key), zap.Error(err))
		return
	}
	if err := s.repo.Set(ctx, s.key, string(data)); err != nil {
		s.logger.Error("failed to persist cart", zap.String("key", s.key), zap.Error(err))
	}
}

// dedupe merges lines sharing a product id, drops non-positive quantities
// and caps each line at the stock saved with its product.
func dedupe(lines []model.CartLine) []model.CartLine {
	out := make([]model.CartLine, 0, len(lines))
	seen := make(map[int64]int, len(lines))
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		if i, ok := seen[l.Product.ID]; ok {
			max := out[i].Product.MaxQuantity()
			// compare against the remaining room so the sum cannot overflow
			if l.Quantity > max-out[i].Quantity {
				out[i].Quantity = clamp(max, 1, max)
			} else {
				out[i].Quantity += l.Quantity
			}
			continue
		}
		l.Quantity = clamp(l.Quantity, 1, l.Product.MaxQuantity())
		seen[l.Product.ID] = len(out)
		out = append(out, l)
	}
	return out
}

type idTranslator struct{}

func (idTranslator) T(messageID string, _ map[string]any) string { return messageID }
