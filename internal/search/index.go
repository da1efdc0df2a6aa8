package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/techzone-py/techzone/internal/models"
)

const productIndex = "products"

// Index mirrors the product catalog into Elasticsearch. A nil Index is valid
// and disables search mirroring.
type Index struct {
	es *elasticsearch.Client
}

func New(url, user, password string) (*Index, error) {
	if url == "" {
		return nil, nil
	}
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}
	return &Index{es: client}, nil
}

type productDoc struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Brand       string  `json:"brand"`
	Price       int64   `json:"price"`
	Rating      float64 `json:"rating"`
	CategoryID  uint    `json:"category_id"`
}

func (ix *Index) IndexProduct(ctx context.Context, p *models.Product) error {
	if ix == nil {
		return nil
	}
	doc, err := json.Marshal(productDoc{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Brand:       p.Brand,
		Price:       p.Price,
		Rating:      p.Rating,
		CategoryID:  p.CategoryID,
	})
	if err != nil {
		return fmt.Errorf("search: marshal product: %w", err)
	}

	res, err := ix.es.Index(
		productIndex,
		bytes.NewReader(doc),
		ix.es.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
		ix.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("search: index product: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("search: index product: %s", res.Status())
	}
	return nil
}

func (ix *Index) DeleteProduct(ctx context.Context, id uint) error {
	if ix == nil {
		return nil
	}
	res, err := ix.es.Delete(
		productIndex,
		strconv.FormatUint(uint64(id), 10),
		ix.es.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("search: delete product: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("search: delete product: %s", res.Status())
	}
	return nil
}

// Search returns matching product ids ranked by relevance.
func (ix *Index) Search(ctx context.Context, query string, from, size int) ([]uint, int64, error) {
	if ix == nil {
		return nil, 0, nil
	}

	body := map[string]any{
		"from": from,
		"size": size,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^3", "brand^2", "description"},
				"fuzziness": "AUTO",
			},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("search: marshal query: %w", err)
	}

	res, err := ix.es.Search(
		ix.es.Search.WithContext(ctx),
		ix.es.Search.WithIndex(productIndex),
		ix.es.Search.WithBody(bytes.NewReader(payload)),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("search: query: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, 0, fmt.Errorf("search: query: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source productDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, 0, fmt.Errorf("search: decode response: %w", err)
	}

	ids := make([]uint, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}
	return ids, parsed.Hits.Total.Value, nil
}
