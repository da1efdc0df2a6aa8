package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/techzone-py/techzone/internal/models"
)

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.DB.WithContext(ctx).
		Preload("SubCategories").
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormRepo) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.DB.WithContext(ctx).Preload("SubCategories").First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, c *models.Category) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormRepo) SaveCategory(ctx context.Context, c *models.Category) error {
	return r.DB.WithContext(ctx).Save(c).Error
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.SubCategory{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) CreateSubCategory(ctx context.Context, s *models.SubCategory) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *GormRepo) SaveSubCategory(ctx context.Context, s *models.SubCategory) error {
	return r.DB.WithContext(ctx).Save(s).Error
}

func (r *GormRepo) GetSubCategory(ctx context.Context, id uint) (*models.SubCategory, error) {
	var sub models.SubCategory
	if err := r.DB.WithContext(ctx).First(&sub, id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *GormRepo) DeleteSubCategory(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.SubCategory{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ListCarouselSlides(ctx context.Context, activeOnly bool) ([]models.CarouselSlide, error) {
	q := r.DB.WithContext(ctx).Model(&models.CarouselSlide{})
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var slides []models.CarouselSlide
	if err := q.Order("position ASC").Find(&slides).Error; err != nil {
		return nil, err
	}
	return slides, nil
}

func (r *GormRepo) GetCarouselSlide(ctx context.Context, id uint) (*models.CarouselSlide, error) {
	var slide models.CarouselSlide
	if err := r.DB.WithContext(ctx).First(&slide, id).Error; err != nil {
		return nil, err
	}
	return &slide, nil
}

func (r *GormRepo) CreateCarouselSlide(ctx context.Context, s *models.CarouselSlide) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *GormRepo) SaveCarouselSlide(ctx context.Context, s *models.CarouselSlide) error {
	return r.DB.WithContext(ctx).Save(s).Error
}

func (r *GormRepo) DeleteCarouselSlide(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.CarouselSlide{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ListHomeCategories(ctx context.Context) ([]models.HomeCategory, error) {
	var items []models.HomeCategory
	if err := r.DB.WithContext(ctx).Order("position ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ReplaceHomeCategories swaps the whole home-category selection at once; the
// storefront home page renders the list as a unit.
func (r *GormRepo) ReplaceHomeCategories(ctx context.Context, items []models.HomeCategory) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.HomeCategory{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (r *GormRepo) GetLegalDocument(ctx context.Context, slug string) (*models.LegalDocument, error) {
	var doc models.LegalDocument
	if err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *GormRepo) ListLegalDocuments(ctx context.Context) ([]models.LegalDocument, error) {
	var docs []models.LegalDocument
	if err := r.DB.WithContext(ctx).Order("slug ASC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *GormRepo) CreateLegalDocument(ctx context.Context, d *models.LegalDocument) error {
	return r.DB.WithContext(ctx).Create(d).Error
}

func (r *GormRepo) SaveLegalDocument(ctx context.Context, d *models.LegalDocument) error {
	return r.DB.WithContext(ctx).Save(d).Error
}

func (r *GormRepo) DeleteLegalDocument(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.LegalDocument{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
