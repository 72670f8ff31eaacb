package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mkravtsov/fishshop/internal/cart"
	"github.com/mkravtsov/fishshop/internal/mykafka"
	"github.com/mkravtsov/fishshop/internal/session"
	"github.com/mkravtsov/fishshop/pkg/logging"
)

// CartHTTP mutates the session-owned cart and hydrates it for display. The
// cart never touches the store on mutation; only hydration reads the
// catalog.
type CartHTTP struct {
	Lookup   cart.CatalogLookup
	Producer *mykafka.Producer
}

func formProductID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.FormValue("product_id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")
	state := session.FromEchoContext(c)

	productID, err := formProductID(c)
	if err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "product_id required")
	}

	state.AddToCart(productID)
	h.publish(c, "cart_item_added", productID)

	l.Info("cart_item_added", "product_id", productID, "quantity", cart.Quantity(state.Cart, productID))
	state.Flash("Added to cart.")
	return c.Redirect(http.StatusSeeOther, "/shop")
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")
	state := session.FromEchoContext(c)

	productID, err := formProductID(c)
	if err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "product_id required")
	}

	state.RemoveFromCart(productID)
	h.publish(c, "cart_item_removed", productID)

	l.Info("cart_item_removed", "product_id", productID)
	return c.Redirect(http.StatusSeeOther, "/cart")
}

func (h *CartHTTP) ViewCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.view")
	state := session.FromEchoContext(c)

	items, err := cart.Hydrate(ctx, state.Cart, h.Lookup)
	if err != nil {
		l.Error("cart_hydrate_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error retrieving cart")
	}

	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}

	return c.Render(http.StatusOK, "cart.html", pageData(c, map[string]interface{}{
		"Items": items,
		"Total": total,
	}))
}

func (h *CartHTTP) publish(c echo.Context, eventType string, productID uint) {
	if h.Producer == nil {
		return
	}
	ctx := c.Request().Context()
	state := session.FromEchoContext(c)
	event := map[string]interface{}{
		"type":      eventType,
		"productID": productID,
	}
	if state.Identity != nil {
		event["userID"] = state.Identity.UserID
	}
	key := fmt.Sprintf("session-%s", state.Token())
	if err := h.Producer.PublishEvent(ctx, mykafka.TopicCartEvents, key, event); err != nil {
		logging.FromContext(ctx).Warn("kafka_publish_failed", "type", eventType, "error", err)
	}
}
