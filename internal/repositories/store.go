package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one database handle. Inside
// Transaction every repository of the Store passed to fn runs on the same
// transaction.
type Store struct {
	db *gorm.DB

	Users         UserRepository
	Recipes       RecipeRepository
	Comments      CommentRepository
	Likes         LikeRepository
	Favorites     FavoriteRepository
	Notifications NotificationRepository
}

// NewStore creates a Store backed by GORM repositories.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Users:         NewGORMUserRepository(db),
		Recipes:       NewGORMRecipeRepository(db),
		Comments:      NewGORMCommentRepository(db),
		Likes:         NewGORMLikeRepository(db),
		Favorites:     NewGORMFavoriteRepository(db),
		Notifications: NewGORMNotificationRepository(db),
	}
}

// Transaction runs fn in a single database transaction. fn's writes commit
// together when it returns nil and are rolled back when it returns an error or
// panics. fn must use tx, never the outer Store.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
