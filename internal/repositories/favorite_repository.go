package repositories

import (
	"context"

	"recipebox/internal/models"
)

// FavoriteRepository defines the interface for favorite data access.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *models.Favorite) error
	Exists(ctx context.Context, userID, recipeID uint) (bool, error)
	Delete(ctx context.Context, userID, recipeID uint) error
	ListByUser(ctx context.Context, userID uint) ([]models.Favorite, error)
	ListByRecipes(ctx context.Context, recipeIDs []uint) ([]models.Favorite, error)
}
