package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/cart"
	cartrepo "github.com/fekuna/omnipos-storefront/internal/cart/repository"
	"github.com/fekuna/omnipos-storefront/internal/checkout"
	"github.com/fekuna/omnipos-storefront/internal/i18n"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilder(repo cart.Repository) *StoreBuilder {
	return &StoreBuilder{
		Carts:            repo,
		Shop:             checkout.Shop{Name: "Shop", Location: time.UTC},
		Translator:       i18n.MustNew("es"),
		Title:            "Shop",
		ReminderTitle:    "Come back",
		ReminderInterval: time.Hour,
		Logger:           logger.NewNop(),
	}
}

func TestAcquireIssuesAndReuses(t *testing.T) {
	reg := NewRegistry(newBuilder(cartrepo.NewMemoryRepository()), time.Hour, logger.NewNop())
	ctx := context.Background()

	s, issued, err := reg.Acquire(ctx, "")
	require.NoError(t, err)
	assert.True(t, issued)
	_, err = uuid.Parse(s.ID)
	assert.NoError(t, err)

	again, issued, err := reg.Acquire(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, issued)
	assert.Same(t, s, again)
	assert.Equal(t, 1, reg.Len())
}

func TestAcquireRejectsMalformedID(t *testing.T) {
	reg := NewRegistry(newBuilder(cartrepo.NewMemoryRepository()), time.Hour, logger.NewNop())
	_, _, err := reg.Acquire(context.Background(), "../../etc")
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.Zero(t, reg.Len())
}

type gatedBuilder struct {
	inner   Builder
	slowID  string
	entered chan struct{}
	release chan struct{}
}

func (b *gatedBuilder) Build(ctx context.Context, id string) *Session {
	if id == b.slowID {
		close(b.entered)
		<-b.release
	}
	return b.inner.Build(ctx, id)
}

func TestAcquireBuildsOutsideRegistryLock(t *testing.T) {
	b := &gatedBuilder{
		inner:   newBuilder(cartrepo.NewMemoryRepository()),
		slowID:  uuid.NewString(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	reg := NewRegistry(b, time.Hour, logger.NewNop())
	ctx := context.Background()

	done := make(chan *Session)
	go func() {
		s, _, err := reg.Acquire(ctx, b.slowID)
		assert.NoError(t, err)
		done <- s
	}()
	<-b.entered

	other, _, err := reg.Acquire(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 0, reg.Sweep())

	close(b.release)
	slow := <-done
	require.NotNil(t, slow)
	assert.Equal(t, b.slowID, slow.ID)
	assert.NotSame(t, other, slow)
	assert.Equal(t, 2, reg.Len())

	again, _, err := reg.Acquire(ctx, b.slowID)
	require.NoError(t, err)
	assert.Same(t, slow, again)
}

func TestSweepEvictsIdleAndRestoresCart(t *testing.T) {
	repo := cartrepo.NewMemoryRepository()
	reg := NewRegistry(newBuilder(repo), time.Minute, logger.NewNop())
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }
	ctx := context.Background()

	s, _, err := reg.Acquire(ctx, "")
	require.NoError(t, err)
	_, err = s.Cart.Add(ctx, model.Product{ID: 9, Name: "Pan", Price: decimal.NewFromInt(100)}, 3)
	require.NoError(t, err)

	busy, _, err := reg.Acquire(ctx, uuid.NewString())
	require.NoError(t, err)
	busy.Lock()

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, reg.Sweep())
	assert.Equal(t, 1, reg.Len(), "locked session is kept")
	busy.Unlock()

	restored, issued, err := reg.Acquire(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, issued)
	assert.NotSame(t, s, restored)
	assert.Equal(t, 3, restored.Cart.Count())
}

func TestReminderWritesTitleBoard(t *testing.T) {
	reg := NewRegistry(newBuilder(cartrepo.NewMemoryRepository()), time.Hour, logger.NewNop())
	ctx := context.Background()
	s, _, err := reg.Acquire(ctx, "")
	require.NoError(t, err)

	assert.Equal(t, "Shop", s.Title.Title())
	_, err = s.Cart.Add(ctx, model.Product{ID: 1, Name: "Pan", Price: decimal.NewFromInt(100)}, 1)
	require.NoError(t, err)

	s.Cart.SetHidden(true)
	assert.Equal(t, "Come back", s.Title.Title())
	s.Cart.SetHidden(false)
	assert.Equal(t, "Shop", s.Title.Title())

	reg.Close()
	assert.Zero(t, reg.Len())
}

func TestMiddleware(t *testing.T) {
	reg := NewRegistry(newBuilder(cartrepo.NewMemoryRepository()), time.Hour, logger.NewNop())
	var seen *Session
	h := Middleware(reg, "sid", time.Hour, i18n.MustNew("es"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, seen)
	id := rec.Header().Get(HeaderName)
	assert.Equal(t, seen.ID, id)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.Equal(t, id, cookies[0].Value)

	first := seen
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: id})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Same(t, first, seen)
	assert.Empty(t, rec.Result().Cookies())

	req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set(HeaderName, "nope")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sesión desconocida")
}
