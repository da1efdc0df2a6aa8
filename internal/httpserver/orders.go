package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techzone-py/techzone/internal/service"
	"github.com/techzone-py/techzone/internal/util"
	"github.com/techzone-py/techzone/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) ListMyOrders(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := subjectID(c)
	if err != nil {
		return mapError(err)
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, orders, err := h.Svc.ListUserOrders(ctx, userID, offset, limit)
	if err != nil {
		logging.FromContext(ctx).Error("list_orders_failed", "error", err)
		return mapError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"orders":     orders,
		"pagination": util.Meta(page, limit, offset, total),
	})
}

func (h *OrderHTTP) GetMyOrder(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := subjectID(c)
	if err != nil {
		return mapError(err)
	}
	orderID, err := paramID(c)
	if err != nil {
		return err
	}

	order, err := h.Svc.GetUserOrder(ctx, userID, orderID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) AdminListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, orders, err := h.Svc.ListOrders(ctx, c.QueryParam("status"), offset, limit)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"orders":     orders,
		"pagination": util.Meta(page, limit, offset, total),
	})
}

func (h *OrderHTTP) AdminUpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.update_status")

	orderID, err := paramID(c)
	if err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateStatus(ctx, orderID, req.Status)
	if err != nil {
		l.Warn("update_status_failed", "order_id", orderID, "error", err)
		return mapError(err)
	}

	l.Info("update_status_success", "order_id", orderID, "status", req.Status)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) AdminCreateLabel(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.create_label")

	orderID, err := paramID(c)
	if err != nil {
		return err
	}

	label, err := h.Svc.CreateLabel(ctx, orderID)
	if err != nil {
		l.Warn("create_label_failed", "order_id", orderID, "error", err)
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, label)
}
