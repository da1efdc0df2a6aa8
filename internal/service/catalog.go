package service

import (
	"context"
	"fmt"

	"github.com/techzone-py/techzone/internal/events"
	"github.com/techzone-py/techzone/internal/models"
	"github.com/techzone-py/techzone/internal/repo"
	"github.com/techzone-py/techzone/internal/search"
	"github.com/techzone-py/techzone/pkg/logging"
)

type CatalogService struct {
	Repo     *repo.GormRepo
	Index    *search.Index
	Producer *events.Producer
}

type ListProductsParams struct {
	Filter repo.ProductFilter
	Offset int
	Limit  int
}

func validSort(s string) bool {
	switch s {
	case "", "price_asc", "price_desc", "rating_desc", "latest":
		return true
	}
	return false
}

func (s *CatalogService) ListProducts(ctx context.Context, p ListProductsParams) (int64, []models.Product, error) {
	if !validSort(p.Filter.Sort) {
		return 0, nil, fmt.Errorf("%w: unknown sort key %q", ErrValidation, p.Filter.Sort)
	}
	if p.Filter.MinPrice != nil && p.Filter.MaxPrice != nil && *p.Filter.MinPrice > *p.Filter.MaxPrice {
		return 0, nil, fmt.Errorf("%w: minPrice above maxPrice", ErrValidation)
	}
	return s.Repo.ListProducts(ctx, p.Filter, p.Offset, p.Limit)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// SearchProducts serves relevance-ranked results from the search index. With
// no index configured it degrades to the substring filter.
func (s *CatalogService) SearchProducts(ctx context.Context, query string, offset, limit int) (int64, []models.Product, error) {
	if query == "" {
		return 0, nil, fmt.Errorf("%w: query required", ErrValidation)
	}
	if s.Index == nil {
		return s.Repo.ListProducts(ctx, repo.ProductFilter{Search: query}, offset, limit)
	}

	ids, total, err := s.Index.Search(ctx, query, offset, limit)
	if err != nil {
		return 0, nil, err
	}
	if len(ids) == 0 {
		return total, []models.Product{}, nil
	}

	items, err := s.Repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return 0, nil, err
	}
	// keep the index ranking
	byID := make(map[uint]models.Product, len(items))
	for _, p := range items {
		byID[p.ID] = p
	}
	ordered := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return total, ordered, nil
}

func (s *CatalogService) validateProduct(p *models.Product) error {
	if p.Name == "" || p.Slug == "" {
		return fmt.Errorf("%w: name and slug required", ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if p.WeightKg <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrValidation)
	}
	return nil
}

func (s *CatalogService) mirror(ctx context.Context, eventType string, p *models.Product) {
	l := logging.FromContext(ctx)
	if err := s.Index.IndexProduct(ctx, p); err != nil {
		l.Error("search index update failed", "product_id", p.ID, "error", err)
	}
	if err := s.Producer.Publish(ctx, events.TopicProductEvents, fmt.Sprint(p.ID), map[string]any{
		"type":       eventType,
		"product_id": p.ID,
		"name":       p.Name,
	}); err != nil {
		l.Error("kafka publish failed", "error", err)
	}
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := s.validateProduct(p); err != nil {
		return err
	}
	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return err
	}
	s.mirror(ctx, "product_created", p)
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p *models.Product) error {
	if err := s.validateProduct(p); err != nil {
		return err
	}
	if _, err := s.Repo.GetProduct(ctx, p.ID); err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	if err := s.Repo.SaveProduct(ctx, p); err != nil {
		return err
	}
	s.mirror(ctx, "product_updated", p)
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}

	l := logging.FromContext(ctx)
	if err := s.Index.DeleteProduct(ctx, id); err != nil {
		l.Error("search index delete failed", "product_id", id, "error", err)
	}
	if err := s.Producer.Publish(ctx, events.TopicProductEvents, fmt.Sprint(id), map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	}); err != nil {
		l.Error("kafka publish failed", "error", err)
	}
	return nil
}
