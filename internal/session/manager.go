package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mkravtsov/fishshop/internal/models"
	"github.com/mkravtsov/fishshop/internal/repo"
	"github.com/mkravtsov/fishshop/pkg/logging"
)

const (
	CookieName = "session_token"

	// TTL is fixed: a session lives 7 days from creation.
	TTL = 7 * 24 * time.Hour

	contextKey = "session_state"
)

type Manager struct {
	Repo *repo.GormRepo
}

// cookieValue returns the session cookie's value, or "" when the cookie is
// missing.
func cookieValue(c echo.Context) string {
	ck, err := c.Cookie(CookieName)
	if err != nil || ck == nil {
		return ""
	}
	return ck.Value
}

// FromEchoContext returns the state installed by Middleware. Handlers behind
// the middleware can rely on it being present.
func FromEchoContext(c echo.Context) *State {
	s, _ := c.Get(contextKey).(*State)
	return s
}

// Middleware loads the caller's session row (creating a fresh anonymous one
// when the cookie is missing, unknown, or expired), exposes the state to the
// handler, and writes it back afterwards if the handler touched it.
func (m *Manager) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			state, fresh, err := m.load(ctx, cookieValue(c))
			if err != nil {
				logging.FromContext(ctx).Error("session_load_error", "error", err)
				return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
			}
			if fresh {
				c.SetCookie(&http.Cookie{
					Name:     CookieName,
					Value:    state.token,
					Path:     "/",
					Expires:  time.Now().Add(TTL),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(contextKey, state)

			err = next(c)

			if state.dirty {
				if saveErr := m.save(ctx, state); saveErr != nil {
					logging.FromContext(ctx).Error("session_save_error", "error", saveErr)
					if err == nil {
						err = echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
					}
				}
			}
			return err
		}
	}
}

func (m *Manager) load(ctx context.Context, token string) (*State, bool, error) {
	if token != "" {
		row, err := m.Repo.GetSession(ctx, token)
		switch {
		case err == nil && row.ExpiresAt.After(time.Now()):
			state := &State{token: row.Token}
			if len(row.Data) > 0 {
				if err := json.Unmarshal(row.Data, state); err != nil {
					// Undecodable state: treat the session as anonymous
					// rather than failing every request it makes.
					*state = State{token: row.Token, dirty: true}
				}
			}
			return state, false, nil
		case err == nil:
			// expired: drop the row and fall through to a fresh session
			if err := m.Repo.DeleteSession(ctx, token); err != nil {
				return nil, false, err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, false, err
		}
	}

	state := &State{token: uuid.NewString()}
	row := &models.Session{
		Token:     state.token,
		ExpiresAt: time.Now().Add(TTL),
	}
	if err := m.Repo.CreateSession(ctx, row); err != nil {
		return nil, false, err
	}
	return state, true, nil
}

func (m *Manager) save(ctx context.Context, state *State) error {
	row, err := m.Repo.GetSession(ctx, state.token)
	if err != nil {
		return err
	}

	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	row.Data = data
	if state.Identity != nil {
		row.UserID = &state.Identity.UserID
	} else {
		row.UserID = nil
	}
	if err := m.Repo.SaveSession(ctx, row); err != nil {
		return err
	}
	state.dirty = false
	return nil
}

// PurgeLoop deletes expired session rows until ctx is cancelled.
func (m *Manager) PurgeLoop(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := m.Repo.DeleteExpiredSessions(ctx, time.Now())
			if err != nil {
				logging.FromContext(ctx).Error("session_purge_error", "error", err)
				continue
			}
			if n > 0 {
				logging.FromContext(ctx).Info("sessions_purged", "count", n)
			}
		}
	}
}
