package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/techzone-py/techzone/internal/models"
	"github.com/techzone-py/techzone/internal/repo"
)

type ContentService struct {
	Repo *repo.GormRepo
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

type RenderedLegal struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	HTML      string `json:"html"`
	UpdatedAt string `json:"updated_at"`
}

func (s *ContentService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *ContentService) CreateCategory(ctx context.Context, c *models.Category) error {
	if c.Name == "" || c.Slug == "" {
		return fmt.Errorf("%w: name and slug required", ErrValidation)
	}
	return s.Repo.CreateCategory(ctx, c)
}

func (s *ContentService) UpdateCategory(ctx context.Context, c *models.Category) error {
	if c.Name == "" || c.Slug == "" {
		return fmt.Errorf("%w: name and slug required", ErrValidation)
	}
	if _, err := s.Repo.GetCategory(ctx, c.ID); err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return s.Repo.SaveCategory(ctx, c)
}

func (s *ContentService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *ContentService) CreateSubCategory(ctx context.Context, sub *models.SubCategory) error {
	if sub.Name == "" || sub.Slug == "" || sub.CategoryID == 0 {
		return fmt.Errorf("%w: name, slug and category required", ErrValidation)
	}
	if _, err := s.Repo.GetCategory(ctx, sub.CategoryID); err != nil {
		if repo.IsNotFound(err) {
			return fmt.Errorf("%w: unknown category %d", ErrValidation, sub.CategoryID)
		}
		return err
	}
	return s.Repo.CreateSubCategory(ctx, sub)
}

func (s *ContentService) UpdateSubCategory(ctx context.Context, sub *models.SubCategory) error {
	if sub.Name == "" || sub.Slug == "" {
		return fmt.Errorf("%w: name and slug required", ErrValidation)
	}
	if _, err := s.Repo.GetSubCategory(ctx, sub.ID); err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return s.Repo.SaveSubCategory(ctx, sub)
}

func (s *ContentService) DeleteSubCategory(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteSubCategory(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *ContentService) ListCarousel(ctx context.Context, activeOnly bool) ([]models.CarouselSlide, error) {
	return s.Repo.ListCarouselSlides(ctx, activeOnly)
}

func (s *ContentService) CreateSlide(ctx context.Context, slide *models.CarouselSlide) error {
	if slide.Title == "" || slide.ImageURL == "" {
		return fmt.Errorf("%w: title and image required", ErrValidation)
	}
	return s.Repo.CreateCarouselSlide(ctx, slide)
}

func (s *ContentService) UpdateSlide(ctx context.Context, slide *models.CarouselSlide) error {
	if slide.Title == "" || slide.ImageURL == "" {
		return fmt.Errorf("%w: title and image required", ErrValidation)
	}
	if _, err := s.Repo.GetCarouselSlide(ctx, slide.ID); err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return s.Repo.SaveCarouselSlide(ctx, slide)
}

func (s *ContentService) DeleteSlide(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteCarouselSlide(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *ContentService) ListHomeCategories(ctx context.Context) ([]models.HomeCategory, error) {
	return s.Repo.ListHomeCategories(ctx)
}

func (s *ContentService) ReplaceHomeCategories(ctx context.Context, items []models.HomeCategory) error {
	for _, item := range items {
		if _, err := s.Repo.GetCategory(ctx, item.CategoryID); err != nil {
			if repo.IsNotFound(err) {
				return fmt.Errorf("%w: unknown category %d", ErrValidation, item.CategoryID)
			}
			return err
		}
	}
	return s.Repo.ReplaceHomeCategories(ctx, items)
}

// GetLegal renders the stored markdown to HTML.
func (s *ContentService) GetLegal(ctx context.Context, slug string) (*RenderedLegal, error) {
	doc, err := s.Repo.GetLegalDocument(ctx, slug)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(doc.Markdown), &buf); err != nil {
		return nil, fmt.Errorf("render legal document: %w", err)
	}
	return &RenderedLegal{
		Slug:      doc.Slug,
		Title:     doc.Title,
		HTML:      buf.String(),
		UpdatedAt: doc.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}

func (s *ContentService) ListLegal(ctx context.Context) ([]models.LegalDocument, error) {
	return s.Repo.ListLegalDocuments(ctx)
}

func (s *ContentService) CreateLegal(ctx context.Context, doc *models.LegalDocument) error {
	if doc.Slug == "" || doc.Title == "" {
		return fmt.Errorf("%w: slug and title required", ErrValidation)
	}
	return s.Repo.CreateLegalDocument(ctx, doc)
}

func (s *ContentService) UpdateLegal(ctx context.Context, doc *models.LegalDocument) error {
	if doc.Slug == "" || doc.Title == "" {
		return fmt.Errorf("%w: slug and title required", ErrValidation)
	}
	existing, err := s.Repo.GetLegalDocument(ctx, doc.Slug)
	if err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	doc.ID = existing.ID
	return s.Repo.SaveLegalDocument(ctx, doc)
}

func (s *ContentService) DeleteLegal(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteLegalDocument(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
