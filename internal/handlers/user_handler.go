package handlers

import (
	"recipebox/internal/middleware"
	"recipebox/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	service  *services.UserService
	sessions *session.Store
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, sessions *session.Store) *UserHandler {
	return &UserHandler{service: service, sessions: sessions}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	users := router.Group("/users")
	users.Get("/:id", h.HandleGetUser)
	users.Patch("/:id", requireAuth, h.HandleUpdateUser)
	users.Delete("/:id", requireAuth, h.HandleDeleteUser)
}

// HandleGetUser returns a profile with its counters.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	profile, err := h.service.Profile(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// HandleUpdateUser edits the caller's own profile.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var patch services.UserPatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	profile, err := h.service.Update(c.UserContext(), middleware.CurrentUserID(c), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// HandleDeleteUser deletes the caller's own account and logs them out.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), middleware.CurrentUserID(c), id); err != nil {
		return err
	}
	if _, err := middleware.ClearSession(c, h.sessions); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
