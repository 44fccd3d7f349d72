package listener

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanReader struct {
	msgs chan kafka.Message
	errs int
}

func (c *chanReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if c.errs > 0 {
		c.errs--
		return kafka.Message{}, errors.New("broker unavailable")
	}
	select {
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	case m := <-c.msgs:
		return m, nil
	}
}

type recorder struct {
	mu          sync.Mutex
	synced      []int64
	removed     []int64
	productInv  int
	categoryInv int
}

func (r *recorder) ListProducts(context.Context, *dto.ProductFilters) (*dto.ProductList, error) {
	return nil, nil
}
func (r *recorder) GetProduct(context.Context, int64) (*model.Product, error) { return nil, nil }
func (r *recorder) Reindex(context.Context) (int, error)                      { return 0, nil }

func (r *recorder) SyncProduct(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.synced = append(r.synced, p.ID)
	return nil
}

func (r *recorder) RemoveProduct(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, id)
	return nil
}

func (r *recorder) InvalidateCache(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.productInv++
	return nil
}

type categoryRecorder struct{ rec *recorder }

func (c categoryRecorder) ListCategories(context.Context) ([]model.Category, error) { return nil, nil }
func (c categoryRecorder) InvalidateCache(context.Context) error {
	c.rec.mu.Lock()
	defer c.rec.mu.Unlock()
	c.rec.categoryInv++
	return nil
}

func TestProcessMessage(t *testing.T) {
	rec := &recorder{}
	l := NewCatalogListener(&chanReader{}, rec, categoryRecorder{rec}, logger.NewNop())
	ctx := context.Background()

	l.processMessage(ctx, []byte(`{"event_id":"e1","event_type":"ProductUpserted","payload":{"product":{"id":4,"name":"Pan","price":"10"}}}`))
	l.processMessage(ctx, []byte(`{"event_id":"e2","event_type":"ProductDeleted","payload":{"product_id":5}}`))
	l.processMessage(ctx, []byte(`{"event_id":"e3","event_type":"CategoryChanged","payload":{"category_id":1}}`))
	l.processMessage(ctx, []byte(`{"event_id":"e4","event_type":"OrderCreated"}`))
	l.processMessage(ctx, []byte(`{"event_id":"e5","event_type":"ProductUpserted","payload":{}}`))
	l.processMessage(ctx, []byte(`not json`))

	assert.Equal(t, []int64{4}, rec.synced)
	assert.Equal(t, []int64{5}, rec.removed)
	assert.Equal(t, 1, rec.categoryInv)
	assert.Equal(t, 1, rec.productInv)
}

func TestStartSurvivesReadErrorsAndStops(t *testing.T) {
	rec := &recorder{}
	reader := &chanReader{msgs: make(chan kafka.Message, 1), errs: 2}
	l := NewCatalogListener(reader, rec, categoryRecorder{rec}, logger.NewNop())
	l.backoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Start(ctx)
		close(done)
	}()

	reader.msgs <- kafka.Message{Value: []byte(`{"event_type":"ProductDeleted","payload":{"product_id":9}}`)}
	require.Eventually(t, func() bool {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		return len(rec.removed) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("listener did not stop")
	}
}
