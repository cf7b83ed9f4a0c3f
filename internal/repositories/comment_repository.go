package repositories

import (
	"context"

	"recipebox/internal/models"
)

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByRecipe(ctx context.Context, recipeID uint) ([]models.Comment, error)
	ListByRecipes(ctx context.Context, recipeIDs []uint) ([]models.Comment, error)
	Delete(ctx context.Context, id uint) error
}
