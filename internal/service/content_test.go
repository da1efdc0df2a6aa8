package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techzone-py/techzone/internal/models"
)

func newContentService(t *testing.T) *ContentService {
	t.Helper()
	return &ContentService{Repo: newTestRepo(t)}
}

func TestCategoryCRUD(t *testing.T) {
	ctx := context.Background()
	svc := newContentService(t)

	cat := models.Category{Name: "Notebooks", Slug: "notebooks"}
	require.NoError(t, svc.CreateCategory(ctx, &cat))

	assert.ErrorIs(t, svc.CreateCategory(ctx, &models.Category{Name: "Sin Slug"}), ErrValidation)

	sub := models.SubCategory{Name: "Gamer", Slug: "gamer", CategoryID: cat.ID}
	require.NoError(t, svc.CreateSubCategory(ctx, &sub))

	orphan := models.SubCategory{Name: "Huérfana", Slug: "huerfana", CategoryID: 999}
	assert.ErrorIs(t, svc.CreateSubCategory(ctx, &orphan), ErrValidation)

	cats, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	require.Len(t, cats[0].SubCategories, 1)
	assert.Equal(t, "gamer", cats[0].SubCategories[0].Slug)

	cat.Name = "Notebooks y Laptops"
	require.NoError(t, svc.UpdateCategory(ctx, &cat))

	require.NoError(t, svc.DeleteCategory(ctx, cat.ID))
	assert.ErrorIs(t, svc.DeleteCategory(ctx, cat.ID), ErrNotFound)
}

func TestCarouselActiveFilter(t *testing.T) {
	ctx := context.Background()
	svc := newContentService(t)

	require.NoError(t, svc.CreateSlide(ctx, &models.CarouselSlide{
		Title: "Oferta", ImageURL: "https://img.example.com/1.jpg", Active: true, Position: 2,
	}))
	require.NoError(t, svc.CreateSlide(ctx, &models.CarouselSlide{
		Title: "Borrador", ImageURL: "https://img.example.com/2.jpg", Active: false, Position: 1,
	}))

	public, err := svc.ListCarousel(ctx, true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Oferta", public[0].Title)

	all, err := svc.ListCarousel(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// ordered by position
	assert.Equal(t, "Borrador", all[0].Title)
}

func TestReplaceHomeCategories(t *testing.T) {
	ctx := context.Background()
	svc := newContentService(t)

	a := models.Category{Name: "A", Slug: "a"}
	b := models.Category{Name: "B", Slug: "b"}
	require.NoError(t, svc.CreateCategory(ctx, &a))
	require.NoError(t, svc.CreateCategory(ctx, &b))

	require.NoError(t, svc.ReplaceHomeCategories(ctx, []models.HomeCategory{
		{CategoryID: a.ID, Position: 1},
		{CategoryID: b.ID, Position: 2},
	}))

	err := svc.ReplaceHomeCategories(ctx, []models.HomeCategory{{CategoryID: 999, Position: 1}})
	assert.ErrorIs(t, err, ErrValidation)

	// the failed replace did not clobber the previous set
	items, err := svc.ListHomeCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	require.NoError(t, svc.ReplaceHomeCategories(ctx, []models.HomeCategory{{CategoryID: b.ID, Position: 1}}))
	items, err = svc.ListHomeCategories(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, b.ID, items[0].CategoryID)
}

func TestLegalMarkdownRendering(t *testing.T) {
	ctx := context.Background()
	svc := newContentService(t)

	require.NoError(t, svc.CreateLegal(ctx, &models.LegalDocument{
		Slug:     "terminos",
		Title:    "Términos y Condiciones",
		Markdown: "# Términos\n\nEl uso del sitio implica **aceptación**.\n\n- Envíos solo dentro de Paraguay\n",
	}))

	doc, err := svc.GetLegal(ctx, "terminos")
	require.NoError(t, err)
	assert.Equal(t, "Términos y Condiciones", doc.Title)
	assert.Contains(t, doc.HTML, "<h1")
	assert.Contains(t, doc.HTML, "<strong>aceptación</strong>")
	assert.Contains(t, doc.HTML, "<li>Envíos solo dentro de Paraguay</li>")

	_, err = svc.GetLegal(ctx, "no-existe")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLegalUpdateBySlug(t *testing.T) {
	ctx := context.Background()
	svc := newContentService(t)

	require.NoError(t, svc.CreateLegal(ctx, &models.LegalDocument{
		Slug: "privacidad", Title: "Privacidad", Markdown: "v1",
	}))

	require.NoError(t, svc.UpdateLegal(ctx, &models.LegalDocument{
		Slug: "privacidad", Title: "Política de Privacidad", Markdown: "v2",
	}))

	doc, err := svc.GetLegal(ctx, "privacidad")
	require.NoError(t, err)
	assert.Equal(t, "Política de Privacidad", doc.Title)
	assert.Contains(t, doc.HTML, "v2")

	err = svc.UpdateLegal(ctx, &models.LegalDocument{Slug: "missing", Title: "X"})
	assert.ErrorIs(t, err, ErrNotFound)
}
