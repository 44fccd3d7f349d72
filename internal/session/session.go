package session

import (
	"context"
	"sync"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/cart"
	"github.com/fekuna/omnipos-storefront/internal/checkout"
	"github.com/fekuna/omnipos-storefront/internal/model"
)

// Session is everything one shopper owns. Callers hold the session lock for
// the whole request so the cart and checkout see one caller at a time.
type Session struct {
	ID       string
	Cart     *cart.Store
	Notices  *cart.NoticeQueue
	Title    *TitleBoard
	Checkout *checkout.Orchestrator

	// Coupon is the last validated coupon, nil when none is applied.
	Coupon     *model.CouponInfo
	CouponCode string

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) Lock()         { s.mu.Lock() }
func (s *Session) Unlock()       { s.mu.Unlock() }
func (s *Session) TryLock() bool { return s.mu.TryLock() }

func (s *Session) ApplyCoupon(code string, info *model.CouponInfo) {
	s.CouponCode = code
	s.Coupon = info
}

func (s *Session) DropCoupon() {
	s.CouponCode = ""
	s.Coupon = nil
}

// Close releases the session's background work. The persisted cart stays.
func (s *Session) Close() {
	s.Cart.Close()
}

// Builder assembles a session and its cart for an id.
type Builder interface {
	Build(ctx context.Context, id string) *Session
}
