package repositories

import (
	"context"

	"recipebox/internal/models"
)

// RecipeRepository defines the interface for recipe data access.
type RecipeRepository interface {
	GetAll(ctx context.Context) ([]models.Recipe, error)
	GetByID(ctx context.Context, id uint) (*models.Recipe, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Recipe, error)
	ListByIDs(ctx context.Context, ids []uint) ([]models.Recipe, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	Create(ctx context.Context, recipe *models.Recipe) error
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, id uint) error
}
