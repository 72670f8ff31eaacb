package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/mkravtsov/fishshop/internal/middleware/auth"
	"github.com/mkravtsov/fishshop/internal/session"
)

type Deps struct {
	ShopHandler    *ShopHTTP
	AdminHandler   *FishAdminHTTP
	AccountHandler *AccountHTTP
	CartHandler    *CartHTTP
	Sessions       *session.Manager
	StaticDir      string
}

func Register(e *echo.Echo, d *Deps) error {
	renderer, err := NewRenderer()
	if err != nil {
		return err
	}
	e.Renderer = renderer

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if d.StaticDir != "" {
		e.Static("/public", d.StaticDir)
	}

	// everything below this group carries session state
	app := e.Group("", d.Sessions.Middleware())

	app.GET("/", d.ShopHandler.Shop)
	app.GET("/shop", d.ShopHandler.Shop)
	app.GET("/fish/:id", d.ShopHandler.FishDetails)
	app.GET("/search", d.ShopHandler.Search)

	app.GET("/login", d.AccountHandler.LoginForm)
	app.POST("/login", d.AccountHandler.Login)
	app.GET("/register", d.AccountHandler.RegisterForm)
	app.POST("/register", d.AccountHandler.Register)
	app.GET("/logout", d.AccountHandler.Logout)

	app.POST("/cart/add", d.CartHandler.AddToCart)
	app.GET("/cart", d.CartHandler.ViewCart)
	app.POST("/cart/remove", d.CartHandler.RemoveFromCart)

	admin := app.Group("", authmw.RequireAdmin())
	admin.GET("/addFish", d.AdminHandler.AddFishForm)
	admin.POST("/addFish", d.AdminHandler.CreateFish)
	admin.GET("/editFish/:id", d.AdminHandler.EditFishForm)
	admin.POST("/editFish/:id", d.AdminHandler.UpdateFish)
	admin.POST("/deleteFish/:id", d.AdminHandler.DeleteFish)

	return nil
}
