package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/cache"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/internal/search"
	"go.uber.org/zap"
)

const (
	indexName       = "products"
	listCachePrefix = "products:list:"
)

const indexMapping = `{
	"mappings": {
		"properties": {
			"id": { "type": "long" },
			"name": { "type": "text", "fields": { "keyword": { "type": "keyword" } } },
			"description": { "type": "text" },
			"price": { "type": "scaled_float", "scaling_factor": 100 },
			"offer_price": { "type": "scaled_float", "scaling_factor": 100 },
			"stock": { "type": "integer" },
			"is_active": { "type": "boolean" },
			"promoted": { "type": "boolean" },
			"category": { "properties": { "id": { "type": "long" }, "slug": { "type": "keyword" } } },
			"created_at": { "type": "date" }
		}
	}
}`

var sortFields = map[string]string{
	"name":        "name.keyword",
	"price":       "price",
	"offer_price": "offer_price",
	"created_at":  "created_at",
}

// SearchIndex is the part of the search client the product use case needs.
type SearchIndex interface {
	CreateIndex(ctx context.Context, index, mapping string) error
	Index(ctx context.Context, index, id string, doc any) error
	Search(ctx context.Context, index string, query map[string]interface{}) (*search.SearchResponse, error)
	Delete(ctx context.Context, index, id string) error
}

type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient
	es     SearchIndex
	ttl    time.Duration
	logger logger.ZapLogger
}

// NewProductUseCase wires the catalog API behind a Redis list cache and an
// Elasticsearch index for free-text search. cache and es may be nil.
func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, es SearchIndex, ttl time.Duration, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		ttl:    ttl,
		logger: log,
	}
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) (*dto.ProductList, error) {
	if err := filters.Normalize(); err != nil {
		return nil, err
	}

	// 1. Cache
	cacheKey, err := generateCacheKey(filters)
	if err == nil {
		var cached dto.ProductList
		hit, err := uc.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			uc.logger.Warn("product cache read failed", zap.Error(err))
		}
		if hit {
			return &cached, nil
		}
	}

	// 2. Elastic for free-text search
	if filters.Search != "" && uc.es != nil {
		list, err := uc.searchElastic(ctx, filters)
		if err == nil {
			uc.store(ctx, cacheKey, list)
			return list, nil
		}
		uc.logger.Error("ES search failed, falling back to catalog API", zap.Error(err))
	}

	// 3. Catalog API
	list, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}
	uc.store(ctx, cacheKey, list)
	return list, nil
}

// GetProduct always reads the catalog so add-to-cart sees current stock.
func (uc *productUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *productUseCase) SyncProduct(ctx context.Context, p *model.Product) error {
	if err := uc.InvalidateCache(ctx); err != nil {
		uc.logger.Warn("failed to invalidate product cache", zap.Error(err))
	}
	if uc.es == nil {
		return nil
	}
	if !p.IsActive {
		return uc.es.Delete(ctx, indexName, docID(p.ID))
	}
	return uc.es.Index(ctx, indexName, docID(p.ID), p)
}

func (uc *productUseCase) RemoveProduct(ctx context.Context, id int64) error {
	if err := uc.InvalidateCache(ctx); err != nil {
		uc.logger.Warn("failed to invalidate product cache", zap.Error(err))
	}
	if uc.es == nil {
		return nil
	}
	return uc.es.Delete(ctx, indexName, docID(id))
}

func (uc *productUseCase) InvalidateCache(ctx context.Context) error {
	return uc.cache.DeletePattern(ctx, listCachePrefix+"*")
}

// Reindex copies the whole active catalog into the search index and returns
// how many products were indexed.
func (uc *productUseCase) Reindex(ctx context.Context) (int, error) {
	if uc.es == nil {
		return 0, nil
	}
	if err := uc.es.CreateIndex(ctx, indexName, indexMapping); err != nil {
		return 0, fmt.Errorf("create index: %w", err)
	}

	indexed := 0
	filters := &dto.ProductFilters{Page: 1, PageSize: dto.MaxPageSize}
	for {
		list, err := uc.repo.FindAll(ctx, filters)
		if err != nil {
			return indexed, fmt.Errorf("list page %d: %w", filters.Page, err)
		}
		for i := range list.Results {
			p := &list.Results[i]
			if err := uc.es.Index(ctx, indexName, docID(p.ID), p); err != nil {
				uc.logger.Error("failed to index product", zap.Int64("product_id", p.ID), zap.Error(err))
				continue
			}
			indexed++
		}
		if !list.HasNext || len(list.Results) == 0 {
			return indexed, nil
		}
		filters.Page++
	}
}

func (uc *productUseCase) searchElastic(ctx context.Context, f *dto.ProductFilters) (*dto.ProductList, error) {
	filter := []map[string]interface{}{
		{"term": map[string]interface{}{"is_active": true}},
	}
	if f.CategoryID > 0 {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"category.id": f.CategoryID}})
	}
	if f.Promoted != nil {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"promoted": *f.Promoted}})
	}

	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					{
						"query_string": map[string]interface{}{
							"query":  fmt.Sprintf("*%s*", escapeQuery(f.Search)),
							"fields": []string{"name^3", "description"},
						},
					},
				},
				"filter": filter,
			},
		},
		"from": (f.Page - 1) * f.PageSize,
		"size": f.PageSize,
	}
	if f.Ordering != "" {
		order := "asc"
		field := f.Ordering
		if strings.HasPrefix(field, "-") {
			order = "desc"
			field = field[1:]
		}
		q["sort"] = []map[string]interface{}{{sortFields[field]: map[string]interface{}{"order": order}}}
	}

	res, err := uc.es.Search(ctx, indexName, q)
	if err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err != nil {
			uc.logger.Warn("skipping undecodable search hit", zap.String("id", hit.ID), zap.Error(err))
			continue
		}
		products = append(products, p)
	}

	return &dto.ProductList{
		Count:    res.Hits.Total.Value,
		Page:     f.Page,
		PageSize: f.PageSize,
		HasNext:  f.Page*f.PageSize < res.Hits.Total.Value,
		Results:  products,
	}, nil
}

func (uc *productUseCase) store(ctx context.Context, key string, list *dto.ProductList) {
	if key == "" {
		return
	}
	if err := uc.cache.SetJSON(ctx, key, list, uc.ttl); err != nil {
		uc.logger.Warn("product cache write failed", zap.Error(err))
	}
}

func generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%x", listCachePrefix, md5.Sum(data)), nil
}

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`, `+`, `\+`, `-`, `\-`, `=`, `\=`, `&`, `\&`, `|`, `\|`,
	`>`, `\>`, `<`, `\<`, `!`, `\!`, `(`, `\(`, `)`, `\)`, `{`, `\{`,
	`}`, `\}`, `[`, `\[`, `]`, `\]`, `^`, `\^`, `"`, `\"`, `~`, `\~`,
	`*`, `\*`, `?`, `\?`, `:`, `\:`, `/`, `\/`,
)

// escapeQuery neutralizes query_string syntax in shopper input.
func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}
