package services

import (
	"context"
	"errors"
	"strings"

	"recipebox/internal/apperr"
	"recipebox/internal/logging"
	"recipebox/internal/metrics"
	"recipebox/internal/models"
	"recipebox/internal/repositories"
	"recipebox/internal/validation"
)

// SocialService runs the like, favorite and comment writes. Every write with
// more than one step runs in a single transaction.
type SocialService struct {
	store     *repositories.Store
	publisher EventPublisher
}

// NewSocialService creates a new SocialService. publisher may be nil.
func NewSocialService(store *repositories.Store, publisher EventPublisher) *SocialService {
	return &SocialService{store: store, publisher: publisher}
}

// CreateLike likes a recipe. The user also favorites it if they have not yet,
// and the recipe owner is notified unless they liked their own recipe.
func (s *SocialService) CreateLike(ctx context.Context, userID, recipeID uint) (*models.Like, error) {
	var like *models.Like
	var note *models.Notification
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		recipe, err := tx.Recipes.GetByID(ctx, recipeID)
		if err != nil {
			return err
		}
		liked, err := tx.Likes.Exists(ctx, userID, recipeID)
		if err != nil {
			return err
		}
		if liked {
			return apperr.Conflict("Recipe already liked")
		}

		like = &models.Like{UserID: userID, RecipeID: recipeID}
		if err := tx.Likes.Create(ctx, like); err != nil {
			return err
		}

		favorited, err := tx.Favorites.Exists(ctx, userID, recipeID)
		if err != nil {
			return err
		}
		if !favorited {
			if err := tx.Favorites.Create(ctx, &models.Favorite{UserID: userID, RecipeID: recipeID}); err != nil {
				return err
			}
		}

		note, err = notify(ctx, tx, models.NotificationLike, recipe, userID)
		return err
	})
	if err = s.finish("like_create", "Failed to create like", err, note); err != nil {
		return nil, err
	}
	return like, nil
}

// DeleteLike removes a like together with the matching favorite.
func (s *SocialService) DeleteLike(ctx context.Context, userID, recipeID uint) error {
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Likes.Delete(ctx, userID, recipeID); err != nil {
			return err
		}
		return deleteIfExists(ctx, tx.Favorites.Exists, tx.Favorites.Delete, userID, recipeID)
	})
	return s.finish("like_delete", "Failed to remove like", err)
}

// CreateFavorite favorites a recipe. It never creates a like.
func (s *SocialService) CreateFavorite(ctx context.Context, userID, recipeID uint) (*models.Favorite, error) {
	var favorite *models.Favorite
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Recipes.GetByID(ctx, recipeID); err != nil {
			return err
		}
		favorited, err := tx.Favorites.Exists(ctx, userID, recipeID)
		if err != nil {
			return err
		}
		if favorited {
			return apperr.Conflict("Recipe already favorited")
		}
		favorite = &models.Favorite{UserID: userID, RecipeID: recipeID}
		return tx.Favorites.Create(ctx, favorite)
	})
	if err = s.finish("favorite_create", "Failed to create favorite", err); err != nil {
		return nil, err
	}
	return favorite, nil
}

// DeleteFavorite removes a favorite and also the user's like of the same
// recipe, although creating a favorite never creates a like.
func (s *SocialService) DeleteFavorite(ctx context.Context, userID, recipeID uint) error {
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Favorites.Delete(ctx, userID, recipeID); err != nil {
			return err
		}
		return deleteIfExists(ctx, tx.Likes.Exists, tx.Likes.Delete, userID, recipeID)
	})
	return s.finish("favorite_delete", "Failed to remove favorite", err)
}

// CreateComment adds a comment and notifies the recipe owner unless they wrote it.
func (s *SocialService) CreateComment(ctx context.Context, userID, recipeID uint, content string) (*CommentView, error) {
	content = strings.TrimSpace(content)
	if err := validation.ValidateComment(content).Err(); err != nil {
		return nil, s.finish("comment_create", "", err)
	}

	var view *CommentView
	var note *models.Notification
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		recipe, err := tx.Recipes.GetByID(ctx, recipeID)
		if err != nil {
			return err
		}
		author, err := tx.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		comment := models.Comment{Content: content, UserID: userID, RecipeID: recipeID}
		if err := tx.Comments.Create(ctx, &comment); err != nil {
			return err
		}
		view = &CommentView{Comment: comment, User: summaryOf(*author)}

		note, err = notify(ctx, tx, models.NotificationComment, recipe, userID)
		return err
	})
	if err = s.finish("comment_create", "Failed to create comment", err, note); err != nil {
		return nil, err
	}
	return view, nil
}

// DeleteComment removes a comment. Only its author or the recipe owner may do so.
func (s *SocialService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		comment, err := tx.Comments.GetByID(ctx, commentID)
		if err != nil {
			return err
		}
		if comment.UserID != userID {
			recipe, err := tx.Recipes.GetByID(ctx, comment.RecipeID)
			if err != nil {
				return err
			}
			if recipe.UserID != userID {
				return apperr.Forbidden("Not authorized to delete this comment")
			}
		}
		return tx.Comments.Delete(ctx, commentID)
	})
	return s.finish("comment_delete", "Failed to delete comment", err)
}

// ListComments returns the comments on a recipe, newest first, with their authors.
func (s *SocialService) ListComments(ctx context.Context, recipeID uint) ([]CommentView, error) {
	comments, err := s.store.Comments.ListByRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return commentViews(ctx, s.store, comments)
}

// ListFavorites returns a user's favorites with the favorited recipes.
func (s *SocialService) ListFavorites(ctx context.Context, userID uint) ([]FavoriteView, error) {
	favorites, err := s.store.Favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	recipeIDs := make([]uint, len(favorites))
	for i, f := range favorites {
		recipeIDs[i] = f.RecipeID
	}
	recipes, err := s.store.Recipes.ListByIDs(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}
	views, err := recipeViews(ctx, s.store, recipes)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]RecipeView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}

	out := make([]FavoriteView, 0, len(favorites))
	for _, f := range favorites {
		out = append(out, FavoriteView{Favorite: f, Recipe: byID[f.RecipeID]})
	}
	return out, nil
}

// finish records the outcome of a write and, once it has committed, announces
// its notifications. Unclassified errors are logged and replaced by an
// internal error carrying failMsg.
func (s *SocialService) finish(action, failMsg string, err error, notes ...*models.Notification) error {
	metrics.ObserveSocial(action, err)
	if err != nil {
		if apperr.KindOf(err) == apperr.ErrInternal && !errors.Is(err, apperr.ErrInternal) {
			logging.Error().Err(err).Str("action", action).Msg("social write rolled back")
			return apperr.Internal(failMsg, err)
		}
		return err
	}
	announce(s.publisher, notes...)
	return nil
}

// notify stores a notification for the recipe owner unless the actor owns the recipe.
func notify(ctx context.Context, tx *repositories.Store, kind models.NotificationType, recipe *models.Recipe, actorID uint) (*models.Notification, error) {
	if recipe.UserID == actorID {
		return nil, nil
	}
	if err := validation.ValidateNotificationType(kind).Err(); err != nil {
		return nil, err
	}
	recipeID := recipe.ID
	n := &models.Notification{
		Type:     kind,
		UserID:   recipe.UserID,
		ActorID:  actorID,
		RecipeID: &recipeID,
	}
	if err := tx.Notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func deleteIfExists(ctx context.Context, exists func(context.Context, uint, uint) (bool, error), del func(context.Context, uint, uint) error, userID, recipeID uint) error {
	ok, err := exists(ctx, userID, recipeID)
	if err != nil || !ok {
		return err
	}
	return del(ctx, userID, recipeID)
}
