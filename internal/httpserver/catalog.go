package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/techzone-py/techzone/internal/models"
	"github.com/techzone-py/techzone/internal/repo"
	"github.com/techzone-py/techzone/internal/service"
	"github.com/techzone-py/techzone/internal/util"
	"github.com/techzone-py/techzone/pkg/logging"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func parsePrice(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_products")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	minPrice, err := parsePrice(c.QueryParam("minPrice"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "minPrice must be numeric")
	}
	maxPrice, err := parsePrice(c.QueryParam("maxPrice"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "maxPrice must be numeric")
	}

	total, items, err := h.Svc.ListProducts(ctx, service.ListProductsParams{
		Filter: repo.ProductFilter{
			Category: c.QueryParam("category"),
			MinPrice: minPrice,
			MaxPrice: maxPrice,
			Search:   c.QueryParam("search"),
			Sort:     c.QueryParam("sort"),
		},
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		l.Warn("list_products_failed", "error", err)
		return mapError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"products":   items,
		"pagination": util.Meta(page, limit, offset, total),
	})
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return err
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search_products")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.SearchProducts(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		l.Error("search_failed", "error", err)
		return mapError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"products":   items,
		"pagination": util.Meta(page, limit, offset, total),
	})
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_product")

	var product models.Product
	if err := c.Bind(&product); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	product.ID = 0

	if err := h.Svc.CreateProduct(ctx, &product); err != nil {
		l.Warn("create_product_failed", "error", err)
		return mapError(err)
	}

	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.update_product")

	id, err := paramID(c)
	if err != nil {
		return err
	}

	var product models.Product
	if err := c.Bind(&product); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	product.ID = id

	if err := h.Svc.UpdateProduct(ctx, &product); err != nil {
		l.Warn("update_product_failed", "product_id", id, "error", err)
		return mapError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_product")

	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		l.Warn("delete_product_failed", "product_id", id, "error", err)
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
