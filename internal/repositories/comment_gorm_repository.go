package repositories

import (
	"context"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{db: db}
}

func (r *GORMCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return translate(r.db.WithContext(ctx).Create(comment).Error, "comment", "create")
}

func (r *GORMCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, translate(err, "Comment", "get")
	}
	return &comment, nil
}

// ListByRecipe returns the comments on a recipe, newest first.
func (r *GORMCommentRepository) ListByRecipe(ctx context.Context, recipeID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).
		Order("created_at DESC").Order("id DESC").Find(&comments).Error; err != nil {
		return nil, translate(err, "comments", "list")
	}
	return comments, nil
}

// ListByRecipes returns the comments on any of the recipes, oldest first.
func (r *GORMCommentRepository) ListByRecipes(ctx context.Context, recipeIDs []uint) ([]models.Comment, error) {
	var comments []models.Comment
	if len(recipeIDs) == 0 {
		return comments, nil
	}
	if err := r.db.WithContext(ctx).Where("recipe_id IN ?", recipeIDs).Order("id").Find(&comments).Error; err != nil {
		return nil, translate(err, "comments", "list")
	}
	return comments, nil
}

func (r *GORMCommentRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return translate(res.Error, "comment", "delete")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "Comment", "delete")
	}
	return nil
}
