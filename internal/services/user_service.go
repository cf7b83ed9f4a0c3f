package services

import (
	"context"
	"errors"

	"recipebox/internal/apperr"
	"recipebox/internal/logging"
	"recipebox/internal/models"
	"recipebox/internal/repositories"
	"recipebox/internal/validation"
)

// UserPatch is a partial profile update; nil fields are left unchanged.
type UserPatch struct {
	Username       *string `json:"username"`
	Email          *string `json:"email"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
}

// UserService handles profiles.
type UserService struct {
	store *repositories.Store
}

// NewUserService creates a new UserService.
func NewUserService(store *repositories.Store) *UserService {
	return &UserService{store: store}
}

// Profile returns a user with recipe and received-like counts.
func (s *UserService) Profile(ctx context.Context, id uint) (*Profile, error) {
	user, err := s.store.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.profileOf(ctx, user)
}

func (s *UserService) profileOf(ctx context.Context, user *models.User) (*Profile, error) {
	recipes, err := s.store.Recipes.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	likes, err := s.store.Likes.CountReceived(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, RecipeCount: recipes, LikesReceived: likes}, nil
}

// Update changes the profile of id. Users may only edit themselves; a new
// username or email must be valid and not used by anyone else.
func (s *UserService) Update(ctx context.Context, actingID, id uint, patch UserPatch) (*Profile, error) {
	if actingID != id {
		return nil, apperr.Forbidden("Not authorized")
	}
	user, err := s.store.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changeUsername := patch.Username != nil && *patch.Username != user.Username
	changeEmail := patch.Email != nil && *patch.Email != user.Email

	var result validation.Result
	if changeUsername {
		result = result.Merge(validation.ValidateUsername(*patch.Username))
	}
	if changeEmail {
		result = result.Merge(validation.ValidateEmail(*patch.Email))
	}
	if err := result.Err(); err != nil {
		return nil, err
	}

	if changeUsername {
		if err := s.ensureFree(ctx, s.store.Users.GetByUsername, *patch.Username, id, "Username already taken"); err != nil {
			return nil, err
		}
		user.Username = *patch.Username
	}
	if changeEmail {
		if err := s.ensureFree(ctx, s.store.Users.GetByEmail, *patch.Email, id, "Email already taken"); err != nil {
			return nil, err
		}
		user.Email = *patch.Email
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.ProfilePicture != nil {
		user.ProfilePicture = *patch.ProfilePicture
	}

	if err := s.store.Users.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.profileOf(ctx, user)
}

func (s *UserService) ensureFree(ctx context.Context, get func(context.Context, string) (*models.User, error), key string, selfID uint, msg string) error {
	other, err := get(ctx, key)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return nil
	case err != nil:
		return err
	case other.ID != selfID:
		return apperr.Conflict("%s", msg)
	default:
		return nil
	}
}

// Delete removes a user and everything the user owns. Users may only delete themselves.
func (s *UserService) Delete(ctx context.Context, actingID, id uint) error {
	if actingID != id {
		return apperr.Forbidden("Not authorized")
	}
	if err := s.store.Users.Delete(ctx, id); err != nil {
		return err
	}
	logging.Info().Uint("user_id", id).Msg("user deleted")
	return nil
}
