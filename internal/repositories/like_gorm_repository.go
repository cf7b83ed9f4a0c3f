package repositories

import (
	"context"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// GORMLikeRepository is a GORM implementation of LikeRepository.
type GORMLikeRepository struct {
	db *gorm.DB
}

// NewGORMLikeRepository creates a new instance of GORMLikeRepository.
func NewGORMLikeRepository(db *gorm.DB) *GORMLikeRepository {
	return &GORMLikeRepository{db: db}
}

// Create inserts a like. A second like for the same pair is a conflict.
func (r *GORMLikeRepository) Create(ctx context.Context, like *models.Like) error {
	return translate(r.db.WithContext(ctx).Create(like).Error, "Like", "create")
}

func (r *GORMLikeRepository) Exists(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&count).Error; err != nil {
		return false, translate(err, "Like", "check")
	}
	return count > 0, nil
}

func (r *GORMLikeRepository) Delete(ctx context.Context, userID, recipeID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.Like{})
	if res.Error != nil {
		return translate(res.Error, "Like", "delete")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "Like", "delete")
	}
	return nil
}

func (r *GORMLikeRepository) ListByRecipes(ctx context.Context, recipeIDs []uint) ([]models.Like, error) {
	var likes []models.Like
	if len(recipeIDs) == 0 {
		return likes, nil
	}
	if err := r.db.WithContext(ctx).Where("recipe_id IN ?", recipeIDs).Order("id").Find(&likes).Error; err != nil {
		return nil, translate(err, "likes", "list")
	}
	return likes, nil
}

// CountReceived counts the likes on recipes owned by ownerID.
func (r *GORMLikeRepository) CountReceived(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Joins("JOIN recipes ON recipes.id = likes.recipe_id").
		Where("recipes.user_id = ?", ownerID).
		Count(&count).Error
	if err != nil {
		return 0, translate(err, "likes", "count")
	}
	return count, nil
}
