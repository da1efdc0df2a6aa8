package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techzone-py/techzone/internal/middleware/authmw"
)

// Deps bundles every handler group so main stays a straight wiring list.
type Deps struct {
	Auth     *AuthHTTP
	OAuth    *OAuthHTTP
	Catalog  *CatalogHTTP
	Shipping *ShippingHTTP
	Checkout *CheckoutHTTP
	Orders   *OrderHTTP
	Content  *ContentHTTP
	Admin    *AdminHTTP
	AuthMW   *authmw.Middleware

	// Ready reports whether downstream dependencies answer; nil means
	// always ready.
	Ready func(c echo.Context) error
}

func Register(e *echo.Echo, d Deps) {
	e.GET("/health/live", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	auth := e.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/admin/login", d.Auth.AdminLogin)
	auth.POST("/refresh", d.Auth.Refresh)
	auth.POST("/logout", d.Auth.Logout)
	auth.POST("/send-verification", d.Auth.SendVerification)
	auth.POST("/verify-email", d.Auth.VerifyEmail)
	auth.POST("/reset-password", d.Auth.ResetPassword)
	if d.OAuth != nil {
		auth.GET("/google", d.OAuth.Begin)
		auth.GET("/google/callback", d.OAuth.Callback)
	}

	e.GET("/products", d.Catalog.ListProducts)
	e.GET("/products/search", d.Catalog.SearchProducts)
	e.GET("/products/:id", d.Catalog.GetProduct)
	e.GET("/categories", d.Content.ListCategories)
	e.GET("/carousel", d.Content.ListCarousel)
	e.GET("/home-categories", d.Content.ListHomeCategories)
	e.GET("/legal/:slug", d.Content.GetLegal)
	e.POST("/shipping", d.Shipping.Calculate)

	user := e.Group("", d.AuthMW.RequireUser)
	user.POST("/checkout", d.Checkout.Checkout)
	user.GET("/orders", d.Orders.ListMyOrders)
	user.GET("/orders/:id", d.Orders.GetMyOrder)

	admin := e.Group("/admin", d.AuthMW.RequireAdmin)

	admin.POST("/products", d.Catalog.CreateProduct)
	admin.PUT("/products/:id", d.Catalog.UpdateProduct)
	admin.DELETE("/products/:id", d.Catalog.DeleteProduct)

	admin.POST("/categories", d.Content.CreateCategory)
	admin.PUT("/categories/:id", d.Content.UpdateCategory)
	admin.DELETE("/categories/:id", d.Content.DeleteCategory)
	admin.POST("/subcategories", d.Content.CreateSubCategory)
	admin.PUT("/subcategories/:id", d.Content.UpdateSubCategory)
	admin.DELETE("/subcategories/:id", d.Content.DeleteSubCategory)

	admin.GET("/carousel", d.Content.AdminListCarousel)
	admin.POST("/carousel", d.Content.CreateSlide)
	admin.PUT("/carousel/:id", d.Content.UpdateSlide)
	admin.DELETE("/carousel/:id", d.Content.DeleteSlide)

	admin.PUT("/home-categories", d.Content.ReplaceHomeCategories)

	admin.GET("/legal", d.Content.AdminListLegal)
	admin.POST("/legal", d.Content.CreateLegal)
	admin.PUT("/legal", d.Content.UpdateLegal)
	admin.DELETE("/legal/:id", d.Content.DeleteLegal)

	admin.GET("/orders", d.Orders.AdminListOrders)
	admin.PUT("/orders/:id/status", d.Orders.AdminUpdateStatus)
	admin.POST("/orders/:id/label", d.Orders.AdminCreateLabel)

	admin.GET("/users", d.Admin.ListAdmins)
	admin.POST("/users", d.Admin.CreateAdmin)
	admin.PUT("/users/:id", d.Admin.UpdateAdmin)
	admin.DELETE("/users/:id", d.Admin.DeleteAdmin)

	admin.POST("/uploads", d.Admin.Upload)
}
