package services

import (
	"context"

	"recipebox/internal/apperr"
	"recipebox/internal/logging"
	"recipebox/internal/models"
	"recipebox/internal/render"
	"recipebox/internal/repositories"
	"recipebox/internal/validation"
)

// RecipeInput is the payload of a recipe creation.
type RecipeInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	CookingTime  int    `json:"cooking_time"`
	ImageURL     string `json:"image_url"`
}

// RecipePatch is a partial update; nil fields are left unchanged.
type RecipePatch struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Ingredients  *string `json:"ingredients"`
	Instructions *string `json:"instructions"`
	CookingTime  *int    `json:"cooking_time"`
	ImageURL     *string `json:"image_url"`
}

// RecipeService handles business logic for recipes.
type RecipeService struct {
	store    *repositories.Store
	renderer *render.Renderer
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(store *repositories.Store, renderer *render.Renderer) *RecipeService {
	return &RecipeService{store: store, renderer: renderer}
}

// List returns every recipe with its owner and interactions.
func (s *RecipeService) List(ctx context.Context) ([]RecipeView, error) {
	recipes, err := s.store.Recipes.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return recipeViews(ctx, s.store, recipes)
}

// ListByUser returns the recipes owned by userID.
func (s *RecipeService) ListByUser(ctx context.Context, userID uint) ([]RecipeView, error) {
	recipes, err := s.store.Recipes.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return recipeViews(ctx, s.store, recipes)
}

// Get returns one recipe with commented authors and rendered instructions.
func (s *RecipeService) Get(ctx context.Context, id uint) (*RecipeDetail, error) {
	recipe, err := s.store.Recipes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := recipeViews(ctx, s.store, []models.Recipe{*recipe})
	if err != nil {
		return nil, err
	}
	comments, err := s.store.Comments.ListByRecipes(ctx, []uint{id})
	if err != nil {
		return nil, err
	}
	commented, err := commentViews(ctx, s.store, comments)
	if err != nil {
		return nil, err
	}
	html, err := s.renderer.Markdown(recipe.Instructions)
	if err != nil {
		return nil, apperr.Internal("Failed to render recipe", err)
	}

	v := views[0]
	return &RecipeDetail{
		Recipe:           v.Recipe,
		InstructionsHTML: html,
		User:             v.User,
		Likes:            v.Likes,
		Favorites:        v.Favorites,
		Comments:         commented,
	}, nil
}

// Create validates and stores a recipe owned by userID.
func (s *RecipeService) Create(ctx context.Context, userID uint, in RecipeInput) (*models.Recipe, error) {
	recipe := &models.Recipe{
		Title:        in.Title,
		Description:  in.Description,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		CookingTime:  in.CookingTime,
		ImageURL:     in.ImageURL,
		UserID:       userID,
	}
	if err := validation.ValidateRecipe(validation.RecipeFieldsOf(recipe)).Err(); err != nil {
		return nil, err
	}
	if err := s.store.Recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}
	logging.Info().Uint("recipe_id", recipe.ID).Uint("user_id", userID).Msg("recipe created")
	return recipe, nil
}

// Update applies patch to a recipe owned by userID and re-validates the result.
func (s *RecipeService) Update(ctx context.Context, userID, id uint, patch RecipePatch) (*models.Recipe, error) {
	recipe, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		recipe.Title = *patch.Title
	}
	if patch.Description != nil {
		recipe.Description = *patch.Description
	}
	if patch.Ingredients != nil {
		recipe.Ingredients = *patch.Ingredients
	}
	if patch.Instructions != nil {
		recipe.Instructions = *patch.Instructions
	}
	if patch.CookingTime != nil {
		recipe.CookingTime = *patch.CookingTime
	}
	if patch.ImageURL != nil {
		recipe.ImageURL = *patch.ImageURL
	}

	if err := validation.ValidateRecipe(validation.RecipeFieldsOf(recipe)).Err(); err != nil {
		return nil, err
	}
	if err := s.store.Recipes.Update(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Delete removes a recipe owned by userID and everything attached to it.
func (s *RecipeService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.store.Recipes.Delete(ctx, id); err != nil {
		return err
	}
	logging.Info().Uint("recipe_id", id).Uint("user_id", userID).Msg("recipe deleted")
	return nil
}

func (s *RecipeService) owned(ctx context.Context, userID, id uint) (*models.Recipe, error) {
	recipe, err := s.store.Recipes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != userID {
		return nil, apperr.Forbidden("Not authorized")
	}
	return recipe, nil
}
