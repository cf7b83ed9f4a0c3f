package repositories

import (
	"context"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// GORMFavoriteRepository is a GORM implementation of FavoriteRepository.
type GORMFavoriteRepository struct {
	db *gorm.DB
}

// NewGORMFavoriteRepository creates a new instance of GORMFavoriteRepository.
func NewGORMFavoriteRepository(db *gorm.DB) *GORMFavoriteRepository {
	return &GORMFavoriteRepository{db: db}
}

func (r *GORMFavoriteRepository) Create(ctx context.Context, favorite *models.Favorite) error {
	return translate(r.db.WithContext(ctx).Create(favorite).Error, "Favorite", "create")
}

func (r *GORMFavoriteRepository) Exists(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&count).Error; err != nil {
		return false, translate(err, "Favorite", "check")
	}
	return count > 0, nil
}

func (r *GORMFavoriteRepository) Delete(ctx context.Context, userID, recipeID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.Favorite{})
	if res.Error != nil {
		return translate(res.Error, "Favorite", "delete")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "Favorite", "delete")
	}
	return nil
}

// ListByUser returns a user's favorites, oldest first.
func (r *GORMFavoriteRepository) ListByUser(ctx context.Context, userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&favorites).Error; err != nil {
		return nil, translate(err, "favorites", "list")
	}
	return favorites, nil
}

func (r *GORMFavoriteRepository) ListByRecipes(ctx context.Context, recipeIDs []uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if len(recipeIDs) == 0 {
		return favorites, nil
	}
	if err := r.db.WithContext(ctx).Where("recipe_id IN ?", recipeIDs).Order("id").Find(&favorites).Error; err != nil {
		return nil, translate(err, "favorites", "list")
	}
	return favorites, nil
}
