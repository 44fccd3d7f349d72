package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/category"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	EventProductUpserted = "ProductUpserted"
	EventProductDeleted  = "ProductDeleted"
	EventCategoryChanged = "CategoryChanged"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// CatalogListener keeps the storefront caches and search index in step with
// catalog changes published by the back office.
type CatalogListener struct {
	consumer   MessageReader
	products   product.UseCase
	categories category.UseCase
	backoff    time.Duration
	logger     logger.ZapLogger
}

func NewCatalogListener(consumer MessageReader, products product.UseCase, categories category.UseCase, logger logger.ZapLogger) *CatalogListener {
	return &CatalogListener{
		consumer:   consumer,
		products:   products,
		categories: categories,
		backoff:    time.Second,
		logger:     logger,
	}
}

func (l *CatalogListener) Start(ctx context.Context) {
	l.logger.Info("Starting Catalog Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Catalog Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				// Don't log context canceled error as error
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(l.backoff):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type CatalogEvent struct {
	EventID   string         `json:"event_id"`
	EventType string         `json:"event_type"`
	Payload   CatalogPayload `json:"payload"`
	Timestamp time.Time      `json:"timestamp"`
}

type CatalogPayload struct {
	ProductID  int64          `json:"product_id"`
	Product    *model.Product `json:"product,omitempty"`
	CategoryID int64          `json:"category_id,omitempty"`
}

func (l *CatalogListener) processMessage(ctx context.Context, value []byte) {
	var event CatalogEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	log := l.logger.With(zap.String("event_id", event.EventID), zap.String("event_type", event.EventType))

	switch event.EventType {
	case EventProductUpserted:
		if event.Payload.Product == nil {
			log.Warn("product event without product")
			return
		}
		if err := l.products.SyncProduct(ctx, event.Payload.Product); err != nil {
			log.Error("Failed to sync product", zap.Int64("product_id", event.Payload.Product.ID), zap.Error(err))
		}
	case EventProductDeleted:
		if err := l.products.RemoveProduct(ctx, event.Payload.ProductID); err != nil {
			log.Error("Failed to remove product", zap.Int64("product_id", event.Payload.ProductID), zap.Error(err))
		}
	case EventCategoryChanged:
		if err := l.categories.InvalidateCache(ctx); err != nil {
			log.Error("Failed to invalidate category cache", zap.Error(err))
		}
		// product listings embed the category
		if err := l.products.InvalidateCache(ctx); err != nil {
			log.Error("Failed to invalidate product cache", zap.Error(err))
		}
	default:
		return
	}

	log.Debug("Processed catalog event")
}
