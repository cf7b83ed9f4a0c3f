package repositories

import (
	"context"
	"fmt"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// GORMRecipeRepository is a GORM implementation of RecipeRepository.
type GORMRecipeRepository struct {
	db *gorm.DB
}

// NewGORMRecipeRepository creates a new instance of GORMRecipeRepository.
func NewGORMRecipeRepository(db *gorm.DB) *GORMRecipeRepository {
	return &GORMRecipeRepository{db: db}
}

// GetAll retrieves all recipes, oldest first.
func (r *GORMRecipeRepository) GetAll(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := r.db.WithContext(ctx).Order("id").Find(&recipes).Error; err != nil {
		return nil, translate(err, "recipes", "list")
	}
	return recipes, nil
}

// GetByID retrieves a single recipe by its id.
func (r *GORMRecipeRepository) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).First(&recipe, id).Error; err != nil {
		return nil, translate(err, "Recipe", "get")
	}
	return &recipe, nil
}

// ListByUser retrieves the recipes owned by userID.
func (r *GORMRecipeRepository) ListByUser(ctx context.Context, userID uint) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&recipes).Error; err != nil {
		return nil, translate(err, "recipes", "list")
	}
	return recipes, nil
}

// ListByIDs retrieves the recipes with the given ids. Unknown ids are skipped.
func (r *GORMRecipeRepository) ListByIDs(ctx context.Context, ids []uint) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if len(ids) == 0 {
		return recipes, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&recipes).Error; err != nil {
		return nil, translate(err, "recipes", "list")
	}
	return recipes, nil
}

// CountByUser counts the recipes owned by userID.
func (r *GORMRecipeRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Recipe{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, translate(err, "recipes", "count")
	}
	return count, nil
}

// Create inserts a recipe.
func (r *GORMRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	return translate(r.db.WithContext(ctx).Create(recipe).Error, "recipe", "create")
}

// Update saves the editable columns of recipe.
func (r *GORMRecipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	res := r.db.WithContext(ctx).Model(recipe).
		Select("title", "description", "ingredients", "instructions", "cooking_time", "image_url").
		Updates(recipe)
	if res.Error != nil {
		return translate(res.Error, "recipe", "update")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "Recipe", "update")
	}
	return nil
}

// Delete removes a recipe with its comments, likes and favorites.
// Notifications about it are kept with the recipe reference cleared.
func (r *GORMRecipeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Recipe{}).Where("id = ?", id).Count(&exists).Error; err != nil {
			return translate(err, "recipe", "delete")
		}
		if exists == 0 {
			return translate(gorm.ErrRecordNotFound, "Recipe", "delete")
		}
		return deleteRecipeRows(tx, []uint{id})
	})
}

// deleteRecipeRows removes the given recipes and every row that hangs off them.
// It must run inside a transaction.
func deleteRecipeRows(tx *gorm.DB, recipeIDs []uint) error {
	if len(recipeIDs) == 0 {
		return nil
	}
	for _, child := range []any{&models.Comment{}, &models.Like{}, &models.Favorite{}} {
		if err := tx.Where("recipe_id IN ?", recipeIDs).Delete(child).Error; err != nil {
			return fmt.Errorf("failed to delete %T rows of recipes %v: %w", child, recipeIDs, err)
		}
	}
	if err := tx.Model(&models.Notification{}).Where("recipe_id IN ?", recipeIDs).
		Update("recipe_id", nil).Error; err != nil {
		return fmt.Errorf("failed to detach notifications from recipes %v: %w", recipeIDs, err)
	}
	if err := tx.Where("id IN ?", recipeIDs).Delete(&models.Recipe{}).Error; err != nil {
		return fmt.Errorf("failed to delete recipes %v: %w", recipeIDs, err)
	}
	return nil
}
