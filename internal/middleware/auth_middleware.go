package middleware

import (
	"strings"

	"recipebox/internal/apperr"
	"recipebox/internal/logging"
	"recipebox/internal/models"
	"recipebox/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	localsUserID = "user_id"
	localsUser   = "user"
)

// AuthRequired is a Fiber middleware that resolves the acting user from the
// session cookie or, when present, an "Authorization: Bearer <token>" header.
// Requests without a bound identity fail as unauthenticated.
func AuthRequired(sessions *session.Store, authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := identify(c, sessions, authService)
		if err != nil {
			debugDenied(c, err)
			return err
		}

		user, err := authService.CurrentUser(c.UserContext(), userID)
		if err != nil {
			debugDenied(c, err)
			return err
		}

		// Store the user in Fiber context for subsequent handlers
		c.Locals(localsUserID, user.ID)
		c.Locals(localsUser, user)
		return c.Next()
	}
}

func identify(c *fiber.Ctx, sessions *session.Store, authService *services.AuthService) (uint, error) {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return 0, apperr.Unauthenticated("Authorization header format must be 'Bearer <token>'")
		}
		return authService.ValidateToken(parts[1])
	}

	userID, ok, err := SessionUserID(c, sessions)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, apperr.Unauthenticated("Not logged in")
	}
	return userID, nil
}

// CurrentUserID returns the id stored by AuthRequired, or 0 outside it.
func CurrentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(localsUserID).(uint)
	return id
}

// CurrentUser returns the user stored by AuthRequired, or nil outside it.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localsUser).(*models.User)
	return user
}

// debugDenied logs why a request was rejected at debug level.
func debugDenied(c *fiber.Ctx, err error) {
	logging.Debug().Err(err).Str("path", c.Path()).Msg("request not authenticated")
}
