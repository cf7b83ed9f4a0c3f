package services

import (
	"context"
	"time"

	"recipebox/internal/models"
	"recipebox/internal/repositories"
)

// UserSummary is the public face of a user nested in other payloads.
type UserSummary struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
}

// Profile is a user with activity counters.
type Profile struct {
	*models.User
	RecipeCount   int64 `json:"recipe_count"`
	LikesReceived int64 `json:"likes_received"`
}

// LikeRef identifies a like and the user who gave it.
type LikeRef struct {
	ID     uint `json:"id"`
	UserID uint `json:"user_id"`
}

// FavoriteRef identifies a favorite and the user who saved it.
type FavoriteRef struct {
	ID     uint `json:"id"`
	UserID uint `json:"user_id"`
}

// CommentRef is a comment as listed on a recipe, without its author.
type CommentRef struct {
	ID      uint   `json:"id"`
	Content string `json:"content"`
	UserID  uint   `json:"user_id"`
}

// RecipeView is a recipe with its owner and interaction references.
type RecipeView struct {
	models.Recipe
	User      UserSummary   `json:"user"`
	Likes     []LikeRef     `json:"likes"`
	Favorites []FavoriteRef `json:"favorites"`
	Comments  []CommentRef  `json:"comments"`
}

// CommentView is a comment with its author.
type CommentView struct {
	models.Comment
	User UserSummary `json:"user"`
}

// RecipeDetail is the single-recipe payload: comments carry their authors and
// the instructions are also rendered to HTML.
type RecipeDetail struct {
	models.Recipe
	InstructionsHTML string        `json:"instructions_html"`
	User             UserSummary   `json:"user"`
	Likes            []LikeRef     `json:"likes"`
	Favorites        []FavoriteRef `json:"favorites"`
	Comments         []CommentView `json:"comments"`
}

// FavoriteView is a favorite with the recipe it points at.
type FavoriteView struct {
	models.Favorite
	Recipe RecipeView `json:"recipe"`
}

// RecipeRef names the recipe a notification is about.
type RecipeRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// NotificationView is a notification with its actor and, when the recipe
// still exists, a recipe reference.
type NotificationView struct {
	ID         uint                    `json:"id"`
	Type       models.NotificationType `json:"type"`
	ReadStatus bool                    `json:"read_status"`
	CreatedAt  time.Time               `json:"created_at"`
	Actor      UserSummary             `json:"actor"`
	Recipe     *RecipeRef              `json:"recipe"`
}

func summaryOf(u models.User) UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, ProfilePicture: u.ProfilePicture}
}

// usersByID loads the given users in one query.
func usersByID(ctx context.Context, store *repositories.Store, ids []uint) (map[uint]models.User, error) {
	users, err := store.Users.ListByIDs(ctx, unique(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

// recipeViews attaches owners, likes, favorites and comments to recipes using
// one query per relation.
func recipeViews(ctx context.Context, store *repositories.Store, recipes []models.Recipe) ([]RecipeView, error) {
	views := make([]RecipeView, 0, len(recipes))
	if len(recipes) == 0 {
		return views, nil
	}

	recipeIDs := make([]uint, len(recipes))
	ownerIDs := make([]uint, len(recipes))
	for i, r := range recipes {
		recipeIDs[i] = r.ID
		ownerIDs[i] = r.UserID
	}

	owners, err := usersByID(ctx, store, ownerIDs)
	if err != nil {
		return nil, err
	}
	likes, err := store.Likes.ListByRecipes(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}
	favorites, err := store.Favorites.ListByRecipes(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}
	comments, err := store.Comments.ListByRecipes(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}

	likesBy := make(map[uint][]LikeRef)
	for _, l := range likes {
		likesBy[l.RecipeID] = append(likesBy[l.RecipeID], LikeRef{ID: l.ID, UserID: l.UserID})
	}
	favoritesBy := make(map[uint][]FavoriteRef)
	for _, f := range favorites {
		favoritesBy[f.RecipeID] = append(favoritesBy[f.RecipeID], FavoriteRef{ID: f.ID, UserID: f.UserID})
	}
	commentsBy := make(map[uint][]CommentRef)
	for _, c := range comments {
		commentsBy[c.RecipeID] = append(commentsBy[c.RecipeID], CommentRef{ID: c.ID, Content: c.Content, UserID: c.UserID})
	}

	for _, r := range recipes {
		views = append(views, RecipeView{
			Recipe:    r,
			User:      summaryOf(owners[r.UserID]),
			Likes:     nonNil(likesBy[r.ID]),
			Favorites: nonNil(favoritesBy[r.ID]),
			Comments:  nonNil(commentsBy[r.ID]),
		})
	}
	return views, nil
}

// commentViews attaches authors to comments, keeping their order.
func commentViews(ctx context.Context, store *repositories.Store, comments []models.Comment) ([]CommentView, error) {
	authorIDs := make([]uint, len(comments))
	for i, c := range comments {
		authorIDs[i] = c.UserID
	}
	authors, err := usersByID(ctx, store, authorIDs)
	if err != nil {
		return nil, err
	}
	views := make([]CommentView, len(comments))
	for i, c := range comments {
		views[i] = CommentView{Comment: c, User: summaryOf(authors[c.UserID])}
	}
	return views, nil
}

func unique(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// nonNil keeps empty relations encoded as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
