package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkravtsov/fishshop/internal/auth"
	"github.com/mkravtsov/fishshop/internal/repo"
	"github.com/mkravtsov/fishshop/internal/service"
	"github.com/mkravtsov/fishshop/internal/session"
	"github.com/mkravtsov/fishshop/pkg/logging"
)

type AccountHTTP struct {
	Svc  *service.AccountService
	Auth *auth.Authenticator
}

func (h *AccountHTTP) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", pageData(c, nil))
}

func (h *AccountHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.login")
	state := session.FromEchoContext(c)

	identity, err := h.Auth.Authenticate(ctx, c.FormValue("email"), c.FormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrValidation):
			state.Flash("Email and password are required.")
		case errors.Is(err, auth.ErrInvalidCredentials):
			state.Flash("Invalid email or password.")
		default:
			l.Error("login_error", "error", err)
			state.Flash("Login is unavailable right now, try again.")
		}
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	state.SetIdentity(identity)
	state.Flash("Welcome back, " + identity.Username + "!")
	l.Info("login_successful", "user_id", identity.UserID)
	return c.Redirect(http.StatusSeeOther, "/shop")
}

func (h *AccountHTTP) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", pageData(c, nil))
}

func (h *AccountHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.register")
	state := session.FromEchoContext(c)

	user, err := h.Svc.Register(ctx, service.RegisterParams{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
		Address:  c.FormValue("address"),
		Contact:  c.FormValue("contact"),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			state.Flash("Please fill in all fields; password needs at least 6 characters.")
		case errors.Is(err, repo.ErrEmailTaken):
			state.Flash("An account with this email already exists.")
		default:
			l.Error("register_error", "error", err)
			state.Flash("Registration is unavailable right now, try again.")
		}
		return c.Redirect(http.StatusSeeOther, "/register")
	}

	l.Info("register_successful", "user_id", user.ID)
	state.Flash("Account created, please log in.")
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AccountHTTP) Logout(c echo.Context) error {
	state := session.FromEchoContext(c)
	state.ClearIdentity()
	state.Flash("You have been logged out.")
	return c.Redirect(http.StatusSeeOther, "/shop")
}
