package handlers

import (
	"recipebox/internal/apperr"
	"recipebox/internal/middleware"
	"recipebox/internal/services"
	"recipebox/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	sessions    *session.Store
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, userService *services.UserService, sessions *session.Store) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		sessions:    sessions,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	router.Post("/signup", h.HandleSignup)
	router.Post("/login", h.HandleLogin)
	router.Delete("/logout", h.HandleLogout)
	router.Get("/check_session", requireAuth, h.HandleCheckSession)
	router.Post("/token", requireAuth, h.HandleToken)
}

// SignupRequest represents the request body for registration.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSignup registers a user and logs them in.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.UserContext(), validation.Signup(req))
	if err != nil {
		return err
	}
	if err := middleware.BindSession(c, h.sessions, user.ID); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin checks credentials and binds the user to the session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	if err := middleware.BindSession(c, h.sessions, user.ID); err != nil {
		return err
	}
	return c.JSON(user)
}

// HandleLogout clears the session.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	bound, err := middleware.ClearSession(c, h.sessions)
	if err != nil {
		return err
	}
	if !bound {
		return apperr.Unauthenticated("Not logged in")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleCheckSession returns the profile of the logged-in user.
func (h *AuthHandler) HandleCheckSession(c *fiber.Ctx) error {
	profile, err := h.userService.Profile(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// HandleToken issues a bearer token for the logged-in user.
func (h *AuthHandler) HandleToken(c *fiber.Ctx) error {
	token, err := h.authService.IssueToken(middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"token": token})
}
