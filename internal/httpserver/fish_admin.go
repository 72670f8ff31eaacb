package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mkravtsov/fishshop/internal/models"
	"github.com/mkravtsov/fishshop/internal/service"
	"github.com/mkravtsov/fishshop/internal/session"
	"github.com/mkravtsov/fishshop/internal/upload"
	"github.com/mkravtsov/fishshop/pkg/logging"
)

// FishAdminHTTP serves the admin-gated catalog mutations. The gate runs as
// route middleware; by the time these handlers execute the request carries
// an admin identity.
type FishAdminHTTP struct {
	Svc       *service.CatalogService
	UploadDir string
}

func fishFromForm(c echo.Context) models.Fish {
	weight, _ := strconv.ParseFloat(c.FormValue("weight"), 64)
	length, _ := strconv.ParseFloat(c.FormValue("length"), 64)
	price, _ := strconv.ParseFloat(c.FormValue("price"), 64)

	return models.Fish{
		Name:    c.FormValue("name"),
		Weight:  weight,
		Length:  length,
		Type:    c.FormValue("type"),
		Price:   price,
		DietUse: c.FormValue("diet_use"),
	}
}

// storedImage saves the optional "image" part and returns its filename.
// Requests without an upload return "".
func (h *FishAdminHTTP) storedImage(c echo.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		// no upload in the form
		return "", nil
	}
	return upload.Save(file, h.UploadDir)
}

func (h *FishAdminHTTP) AddFishForm(c echo.Context) error {
	return c.Render(http.StatusOK, "add_fish.html", pageData(c, nil))
}

func (h *FishAdminHTTP) CreateFish(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_fish")
	state := session.FromEchoContext(c)

	image, err := h.storedImage(c)
	if err != nil {
		l.Error("upload_error", "error", err)
		state.Flash("Could not store the uploaded image.")
		return c.Redirect(http.StatusSeeOther, "/addFish")
	}

	fish := fishFromForm(c)
	fish.Image = image

	if err := h.Svc.CreateFish(ctx, &fish); err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_fish_validation", "error", err)
			state.Flash("Please fill in all required fields.")
			return c.Redirect(http.StatusSeeOther, "/addFish")
		}
		l.Error("create_fish_error", "error", err)
		state.Flash("Could not save the fish, try again.")
		return c.Redirect(http.StatusSeeOther, "/addFish")
	}

	l.Info("fish_created", "fish_id", fish.ID)
	state.Flash("Fish added.")
	return c.Redirect(http.StatusSeeOther, "/shop")
}

func (h *FishAdminHTTP) EditFishForm(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.edit_fish_form")

	id, err := fishID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid fish id")
	}

	fish, err := h.Svc.GetFish(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Fish not found")
		}
		l.Error("edit_fish_form_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error retrieving product")
	}

	return c.Render(http.StatusOK, "edit_fish.html", pageData(c, map[string]interface{}{
		"Fish": fish,
	}))
}

func (h *FishAdminHTTP) UpdateFish(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_fish")
	state := session.FromEchoContext(c)

	id, err := fishID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid fish id")
	}

	image, err := h.storedImage(c)
	if err != nil {
		l.Error("upload_error", "error", err)
		state.Flash("Could not store the uploaded image.")
		return c.Redirect(http.StatusSeeOther, "/editFish/"+c.Param("id"))
	}

	req := fishFromForm(c)
	req.Image = image

	if _, err := h.Svc.UpdateFish(ctx, id, req); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Fish not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_fish_validation", "error", err)
			state.Flash("Please fill in all required fields.")
			return c.Redirect(http.StatusSeeOther, "/editFish/"+c.Param("id"))
		default:
			l.Error("update_fish_error", "error", err)
			state.Flash("Could not save the fish, try again.")
			return c.Redirect(http.StatusSeeOther, "/editFish/"+c.Param("id"))
		}
	}

	l.Info("fish_updated", "fish_id", id)
	state.Flash("Fish updated.")
	return c.Redirect(http.StatusSeeOther, "/shop")
}

func (h *FishAdminHTTP) DeleteFish(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_fish")
	state := session.FromEchoContext(c)

	id, err := fishID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid fish id")
	}

	if err := h.Svc.DeleteFish(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Fish not found")
		}
		l.Error("delete_fish_error", "error", err)
		state.Flash("Could not delete the fish, try again.")
		return c.Redirect(http.StatusSeeOther, "/shop")
	}

	l.Info("fish_deleted", "fish_id", id)
	state.Flash("Fish deleted.")
	return c.Redirect(http.StatusSeeOther, "/shop")
}
