package repositories

import (
	"context"

	"recipebox/internal/models"
)

// LikeRepository defines the interface for like data access.
type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	Exists(ctx context.Context, userID, recipeID uint) (bool, error)
	Delete(ctx context.Context, userID, recipeID uint) error
	ListByRecipes(ctx context.Context, recipeIDs []uint) ([]models.Like, error)
	CountReceived(ctx context.Context, ownerID uint) (int64, error)
}
