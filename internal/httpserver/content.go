package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techzone-py/techzone/internal/models"
	"github.com/techzone-py/techzone/internal/service"
	"github.com/techzone-py/techzone/pkg/logging"
)

type ContentHTTP struct {
	Svc *service.ContentService
}

func (h *ContentHTTP) ListCategories(c echo.Context) error {
	categories, err := h.Svc.ListCategories(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *ContentHTTP) CreateCategory(c echo.Context) error {
	var category models.Category
	if err := c.Bind(&category); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	category.ID = 0
	if err := h.Svc.CreateCategory(c.Request().Context(), &category); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *ContentHTTP) UpdateCategory(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var category models.Category
	if err := c.Bind(&category); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	category.ID = id
	if err := h.Svc.UpdateCategory(c.Request().Context(), &category); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *ContentHTTP) DeleteCategory(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteCategory(c.Request().Context(), id); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ContentHTTP) CreateSubCategory(c echo.Context) error {
	var sub models.SubCategory
	if err := c.Bind(&sub); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	sub.ID = 0
	if err := h.Svc.CreateSubCategory(c.Request().Context(), &sub); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, sub)
}

func (h *ContentHTTP) UpdateSubCategory(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var sub models.SubCategory
	if err := c.Bind(&sub); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	sub.ID = id
	if err := h.Svc.UpdateSubCategory(c.Request().Context(), &sub); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, sub)
}

func (h *ContentHTTP) DeleteSubCategory(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteSubCategory(c.Request().Context(), id); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ContentHTTP) ListCarousel(c echo.Context) error {
	slides, err := h.Svc.ListCarousel(c.Request().Context(), true)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, slides)
}

func (h *ContentHTTP) AdminListCarousel(c echo.Context) error {
	slides, err := h.Svc.ListCarousel(c.Request().Context(), false)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, slides)
}

func (h *ContentHTTP) CreateSlide(c echo.Context) error {
	var slide models.CarouselSlide
	if err := c.Bind(&slide); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	slide.ID = 0
	if err := h.Svc.CreateSlide(c.Request().Context(), &slide); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, slide)
}

func (h *ContentHTTP) UpdateSlide(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var slide models.CarouselSlide
	if err := c.Bind(&slide); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	slide.ID = id
	if err := h.Svc.UpdateSlide(c.Request().Context(), &slide); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, slide)
}

func (h *ContentHTTP) DeleteSlide(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteSlide(c.Request().Context(), id); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ContentHTTP) ListHomeCategories(c echo.Context) error {
	items, err := h.Svc.ListHomeCategories(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ContentHTTP) ReplaceHomeCategories(c echo.Context) error {
	var items []models.HomeCategory
	if err := c.Bind(&items); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := h.Svc.ReplaceHomeCategories(c.Request().Context(), items); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ContentHTTP) GetLegal(c echo.Context) error {
	doc, err := h.Svc.GetLegal(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *ContentHTTP) AdminListLegal(c echo.Context) error {
	docs, err := h.Svc.ListLegal(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, docs)
}

func (h *ContentHTTP) CreateLegal(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "content.create_legal")

	var doc models.LegalDocument
	if err := c.Bind(&doc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	doc.ID = 0
	if err := h.Svc.CreateLegal(ctx, &doc); err != nil {
		l.Warn("create_legal_failed", "error", err)
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, doc)
}

func (h *ContentHTTP) UpdateLegal(c echo.Context) error {
	var doc models.LegalDocument
	if err := c.Bind(&doc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := h.Svc.UpdateLegal(c.Request().Context(), &doc); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *ContentHTTP) DeleteLegal(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteLegal(c.Request().Context(), id); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
