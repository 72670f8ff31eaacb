package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mkravtsov/fishshop/internal/service"
	"github.com/mkravtsov/fishshop/pkg/logging"
)

type ShopHTTP struct {
	Svc *service.CatalogService
}

func fishID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (h *ShopHTTP) Shop(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "shop.list")

	items, err := h.Svc.ListFish(ctx)
	if err != nil {
		l.Error("list_fish_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error retrieving products")
	}

	return c.Render(http.StatusOK, "shop.html", pageData(c, map[string]interface{}{
		"FishList": items,
		"Query":    "",
	}))
}

func (h *ShopHTTP) FishDetails(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "shop.details")

	id, err := fishID(c)
	if err != nil {
		l.Warn("fish_details_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid fish id")
	}

	fish, err := h.Svc.GetFish(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("fish_details_error", "status", 404, "fish_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Fish not found")
		}
		l.Error("fish_details_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error retrieving product")
	}

	return c.Render(http.StatusOK, "fish.html", pageData(c, map[string]interface{}{
		"Fish": fish,
	}))
}

func (h *ShopHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "shop.search")

	q := c.QueryParam("q")
	if q == "" {
		return c.Redirect(http.StatusSeeOther, "/shop")
	}

	items, err := h.Svc.SearchFish(ctx, q)
	if err != nil {
		l.Error("search_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error searching products")
	}

	return c.Render(http.StatusOK, "shop.html", pageData(c, map[string]interface{}{
		"FishList": items,
		"Query":    q,
	}))
}
