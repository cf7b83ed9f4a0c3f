package handlers

import (
	"recipebox/internal/middleware"
	"recipebox/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RecipeHandler handles HTTP requests for recipes.
type RecipeHandler struct {
	service *services.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(service *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: service}
}

// RegisterRoutes registers the recipe routes with the Fiber app.
func (h *RecipeHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	recipes := router.Group("/recipes")
	recipes.Get("/", h.HandleGetRecipes)
	recipes.Post("/", requireAuth, h.HandleCreateRecipe)
	recipes.Get("/user/:user_id", h.HandleGetUserRecipes)
	recipes.Get("/:id", h.HandleGetRecipeByID)
	recipes.Patch("/:id", requireAuth, h.HandleUpdateRecipe)
	recipes.Delete("/:id", requireAuth, h.HandleDeleteRecipe)
}

// HandleGetRecipes retrieves all recipes.
func (h *RecipeHandler) HandleGetRecipes(c *fiber.Ctx) error {
	recipes, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(recipes)
}

// HandleGetUserRecipes retrieves the recipes of one user.
func (h *RecipeHandler) HandleGetUserRecipes(c *fiber.Ctx) error {
	userID, err := idParam(c, "user_id")
	if err != nil {
		return err
	}
	recipes, err := h.service.ListByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(recipes)
}

// HandleGetRecipeByID retrieves a single recipe by its id.
func (h *RecipeHandler) HandleGetRecipeByID(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	recipe, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(recipe)
}

// HandleCreateRecipe creates a recipe owned by the caller.
func (h *RecipeHandler) HandleCreateRecipe(c *fiber.Ctx) error {
	var in services.RecipeInput
	if err := bind(c, &in); err != nil {
		return err
	}
	recipe, err := h.service.Create(c.UserContext(), middleware.CurrentUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// HandleUpdateRecipe partially updates a recipe owned by the caller.
func (h *RecipeHandler) HandleUpdateRecipe(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var patch services.RecipePatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	recipe, err := h.service.Update(c.UserContext(), middleware.CurrentUserID(c), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(recipe)
}

// HandleDeleteRecipe deletes a recipe owned by the caller.
func (h *RecipeHandler) HandleDeleteRecipe(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), middleware.CurrentUserID(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
