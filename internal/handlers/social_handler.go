package handlers

import (
	"recipebox/internal/middleware"
	"recipebox/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SocialHandler handles HTTP requests for comments, likes and favorites.
type SocialHandler struct {
	service *services.SocialService
}

// NewSocialHandler creates a new SocialHandler.
func NewSocialHandler(service *services.SocialService) *SocialHandler {
	return &SocialHandler{service: service}
}

// RegisterRoutes registers the comment, like and favorite routes with the Fiber app.
func (h *SocialHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	router.Post("/comments", requireAuth, h.HandleCreateComment)
	router.Delete("/comments", requireAuth, h.HandleDeleteComment)
	router.Get("/comments/recipe/:recipe_id", h.HandleGetRecipeComments)

	router.Post("/likes", requireAuth, h.HandleCreateLike)
	router.Delete("/likes", requireAuth, h.HandleDeleteLike)

	router.Post("/favorites", requireAuth, h.HandleCreateFavorite)
	router.Delete("/favorites", requireAuth, h.HandleDeleteFavorite)
	router.Get("/favorites/user/:user_id", h.HandleGetUserFavorites)
}

// RecipeRef names the recipe a like or favorite request is about.
type RecipeRef struct {
	RecipeID uint `json:"recipe_id" validate:"required"`
}

// CommentRequest represents the request body for a new comment.
type CommentRequest struct {
	RecipeID uint   `json:"recipe_id" validate:"required"`
	Content  string `json:"content"`
}

// CommentRef names the comment a delete request is about.
type CommentRef struct {
	CommentID uint `json:"comment_id" validate:"required"`
}

// HandleCreateComment comments on a recipe.
func (h *SocialHandler) HandleCreateComment(c *fiber.Ctx) error {
	var req CommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	comment, err := h.service.CreateComment(c.UserContext(), middleware.CurrentUserID(c), req.RecipeID, req.Content)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// HandleDeleteComment deletes a comment written by the caller or on the caller's recipe.
func (h *SocialHandler) HandleDeleteComment(c *fiber.Ctx) error {
	var req CommentRef
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.service.DeleteComment(c.UserContext(), middleware.CurrentUserID(c), req.CommentID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetRecipeComments lists the comments of a recipe, newest first.
func (h *SocialHandler) HandleGetRecipeComments(c *fiber.Ctx) error {
	recipeID, err := idParam(c, "recipe_id")
	if err != nil {
		return err
	}
	comments, err := h.service.ListComments(c.UserContext(), recipeID)
	if err != nil {
		return err
	}
	return c.JSON(comments)
}

// HandleCreateLike likes a recipe.
func (h *SocialHandler) HandleCreateLike(c *fiber.Ctx) error {
	var req RecipeRef
	if err := bind(c, &req); err != nil {
		return err
	}
	like, err := h.service.CreateLike(c.UserContext(), middleware.CurrentUserID(c), req.RecipeID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(like)
}

// HandleDeleteLike removes the caller's like of a recipe.
func (h *SocialHandler) HandleDeleteLike(c *fiber.Ctx) error {
	var req RecipeRef
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.service.DeleteLike(c.UserContext(), middleware.CurrentUserID(c), req.RecipeID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleCreateFavorite favorites a recipe.
func (h *SocialHandler) HandleCreateFavorite(c *fiber.Ctx) error {
	var req RecipeRef
	if err := bind(c, &req); err != nil {
		return err
	}
	favorite, err := h.service.CreateFavorite(c.UserContext(), middleware.CurrentUserID(c), req.RecipeID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(favorite)
}

// HandleDeleteFavorite removes the caller's favorite of a recipe.
func (h *SocialHandler) HandleDeleteFavorite(c *fiber.Ctx) error {
	var req RecipeRef
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.service.DeleteFavorite(c.UserContext(), middleware.CurrentUserID(c), req.RecipeID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetUserFavorites lists a user's favorites with their recipes.
func (h *SocialHandler) HandleGetUserFavorites(c *fiber.Ctx) error {
	userID, err := idParam(c, "user_id")
	if err != nil {
		return err
	}
	favorites, err := h.service.ListFavorites(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(favorites)
}
