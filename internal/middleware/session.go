package middleware

import (
	"time"

	"recipebox/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

// SessionCookie is the name of the session cookie.
const SessionCookie = "recipebox_session"

const sessionUserKey = "user_id"

// SessionConfig configures NewSessionStore.
type SessionConfig struct {
	TTL          time.Duration
	CookieSecure bool
	Storage      fiber.Storage // nil keeps sessions in memory
}

// NewSessionStore creates the cookie-backed session store.
func NewSessionStore(cfg SessionConfig) *session.Store {
	return session.New(session.Config{
		Expiration:     cfg.TTL,
		Storage:        cfg.Storage,
		KeyLookup:      "cookie:" + SessionCookie,
		CookieSecure:   cfg.CookieSecure,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		KeyGenerator:   uuid.NewString,
	})
}

// BindSession binds userID to a fresh session.
func BindSession(c *fiber.Ctx, sessions *session.Store, userID uint) error {
	sess, err := sessions.Get(c)
	if err != nil {
		return apperr.Internal("Failed to start session", err)
	}
	if err := sess.Regenerate(); err != nil {
		return apperr.Internal("Failed to start session", err)
	}
	sess.Set(sessionUserKey, userID)
	if err := sess.Save(); err != nil {
		return apperr.Internal("Failed to save session", err)
	}
	return nil
}

// ClearSession removes the session binding. It reports whether one existed.
func ClearSession(c *fiber.Ctx, sessions *session.Store) (bool, error) {
	sess, err := sessions.Get(c)
	if err != nil {
		return false, apperr.Internal("Failed to load session", err)
	}
	_, bound := sess.Get(sessionUserKey).(uint)
	if err := sess.Destroy(); err != nil {
		return false, apperr.Internal("Failed to clear session", err)
	}
	return bound, nil
}

// SessionUserID returns the user bound to the request's session, if any.
func SessionUserID(c *fiber.Ctx, sessions *session.Store) (uint, bool, error) {
	sess, err := sessions.Get(c)
	if err != nil {
		return 0, false, apperr.Internal("Failed to load session", err)
	}
	id, ok := sess.Get(sessionUserKey).(uint)
	return id, ok && id != 0, nil
}
