package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/restohub/bistro_backend/internal/metrics"
	authmw "github.com/restohub/bistro_backend/internal/middleware/auth"
)

type Deps struct {
	Guard    *authmw.Guard
	Auth     *AuthHTTP
	Users    *UserHTTP
	Menu     *MenuHTTP
	Reviews  *ReviewHTTP
	Carts    *CartHTTP
	Payments *PaymentHTTP
	Registry *prometheus.Registry
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if d.Registry != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler(d.Registry)))
	}

	g := d.Guard

	e.POST("/auth/token", d.Auth.IssueToken)

	users := e.Group("/users")
	users.GET("/admin/:id", d.Users.AdminStatus, g.RequireAuth)
	users.GET("", d.Users.List, g.RequireAuth, g.RequireAdmin)
	users.POST("", d.Users.Create)
	users.PATCH("/admin/:id", d.Users.Promote, g.RequireAuth, g.RequireAdmin)
	users.DELETE("/:id", d.Users.Delete, g.RequireAuth, g.RequireAdmin)

	menu := e.Group("/menu")
	menu.GET("", d.Menu.List)
	if d.Menu.ES != nil {
		menu.GET("/search", d.Menu.Search)
	}
	menu.GET("/:id", d.Menu.Get)
	menu.POST("", d.Menu.Create, g.RequireAuth, g.RequireAdmin)
	menu.PATCH("/:id", d.Menu.Update, g.RequireAuth, g.RequireAdmin)
	menu.DELETE("/:id", d.Menu.Delete, g.RequireAuth, g.RequireAdmin)

	reviews := e.Group("/reviews")
	reviews.GET("", d.Reviews.List)
	reviews.POST("", d.Reviews.Create)

	carts := e.Group("/carts")
	carts.GET("", d.Carts.List)
	carts.POST("", d.Carts.Add)
	carts.DELETE("/:id", d.Carts.Delete)

	payments := e.Group("/payments")
	payments.POST("/intent", d.Payments.CreateIntent)
	payments.GET("/:email", d.Payments.History, g.RequireAuth)
	payments.POST("", d.Payments.Confirm, g.RequireAuth)
}
