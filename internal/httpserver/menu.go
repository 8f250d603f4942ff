package httpserver

import (
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/restohub/bistro_backend/internal/logging"
	"github.com/restohub/bistro_backend/internal/models"
	"github.com/restohub/bistro_backend/internal/service"
	"github.com/restohub/bistro_backend/internal/service/search"
)

type MenuHTTP struct {
	Svc   *service.MenuService
	ES    *elasticsearch.Client
	Index string
}

func (h *MenuHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("list_menu_error", "status", 500, "error", err)
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *MenuHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	item, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *MenuHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.create")

	var item models.MenuItem
	if err := c.Bind(&item); err != nil {
		l.Warn("create_menu_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	if err := h.Svc.Create(ctx, &item); err != nil {
		l.Error("create_menu_error", "error", err)
		return fail(c, err)
	}

	l.Info("menu item created", "name", item.Name)
	return c.JSON(http.StatusOK, echo.Map{"insertedId": item.ID})
}

func (h *MenuHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.update")

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	var patch models.MenuItem
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	modified, err := h.Svc.Update(ctx, id, &patch)
	if err != nil {
		l.Error("update_menu_error", "error", err)
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"modifiedCount": modified})
}

func (h *MenuHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.delete")

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	deleted, err := h.Svc.Delete(ctx, id)
	if err != nil {
		l.Error("delete_menu_error", "status", 500, "error", err)
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deletedCount": deleted})
}

func (h *MenuHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.search")

	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "q required"})
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := search.Window(page, size)

	total, items, err := search.Search(ctx, h.ES, h.Index, q, from, size)
	if err != nil {
		l.Error("menu_search_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "items": items})
}
