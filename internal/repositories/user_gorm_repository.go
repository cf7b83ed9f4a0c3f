package repositories

import (
	"context"
	"fmt"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{db: db}
}

// Create inserts a user. A taken username or email surfaces as a conflict.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error, "user", "create")
}

// GetByID retrieves a user by id.
func (r *GORMUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "User", "get")
	}
	return &user, nil
}

// GetByUsername retrieves a user by exact, case-sensitive username.
func (r *GORMUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, translate(err, "User", "get")
	}
	return &user, nil
}

// GetByEmail retrieves a user by exact email.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err, "User", "get")
	}
	return &user, nil
}

// ListByIDs returns the users with the given ids in id order. Unknown ids are skipped.
func (r *GORMUserRepository) ListByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&users).Error; err != nil {
		return nil, translate(err, "users", "list")
	}
	return users, nil
}

// Update saves the profile columns of user.
func (r *GORMUserRepository) Update(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).Model(user).
		Select("username", "email", "bio", "profile_picture").
		Updates(user)
	if res.Error != nil {
		return translate(res.Error, "user", "update")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "User", "update")
	}
	return nil
}

// Delete removes a user together with everything the user owns: recipes (and
// their comments, likes and favorites), the user's own comments, likes and
// favorites, and notifications the user sent or received.
func (r *GORMUserRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipeIDs []uint
		if err := tx.Model(&models.Recipe{}).Where("user_id = ?", id).Pluck("id", &recipeIDs).Error; err != nil {
			return fmt.Errorf("failed to list recipes of user %d: %w", id, err)
		}
		if err := deleteRecipeRows(tx, recipeIDs); err != nil {
			return err
		}

		for _, child := range []any{&models.Comment{}, &models.Like{}, &models.Favorite{}} {
			if err := tx.Where("user_id = ?", id).Delete(child).Error; err != nil {
				return fmt.Errorf("failed to delete %T rows of user %d: %w", child, id, err)
			}
		}
		if err := tx.Where("user_id = ? OR actor_id = ?", id, id).Delete(&models.Notification{}).Error; err != nil {
			return fmt.Errorf("failed to delete notifications of user %d: %w", id, err)
		}

		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return translate(res.Error, "user", "delete")
		}
		if res.RowsAffected == 0 {
			return translate(gorm.ErrRecordNotFound, "User", "delete")
		}
		return nil
	})
}

// Count returns the number of users.
func (r *GORMUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, translate(err, "users", "count")
	}
	return count, nil
}
