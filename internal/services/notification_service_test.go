package services_test

import (
	"testing"

	"recipebox/internal/apperr"
	"recipebox/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupFor(name string) validation.Signup {
	return validation.Signup{Username: name, Email: name + "@example.com", Password: "pw1234"}
}

func TestNotificationsSelfOnlyNewestFirst(t *testing.T) {
	w := newWorld(t)
	a := w.signup(t, "alice")
	b := w.signup(t, "bob")
	r := w.recipe(t, a)

	_, err := w.social.CreateLike(w.ctx, b.ID, r.ID)
	require.NoError(t, err)
	_, err = w.social.CreateComment(w.ctx, b.ID, r.ID, "Yum")
	require.NoError(t, err)

	_, err = w.notes.ListForUser(w.ctx, b.ID, a.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	views, err := w.notes.ListForUser(w.ctx, a.ID, a.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "comment", string(views[0].Type))
	assert.Equal(t, "like", string(views[1].Type))
	assert.Equal(t, "bob", views[0].Actor.Username)
	require.NotNil(t, views[0].Recipe)
	assert.Equal(t, r.Title, views[0].Recipe.Title)
}

func TestMarkRead(t *testing.T) {
	w := newWorld(t)
	a := w.signup(t, "alice")
	b := w.signup(t, "bob")
	r := w.recipe(t, a)
	_, err := w.social.CreateLike(w.ctx, b.ID, r.ID)
	require.NoError(t, err)
	_, err = w.social.CreateComment(w.ctx, b.ID, r.ID, "Yum")
	require.NoError(t, err)

	views, err := w.notes.ListForUser(w.ctx, a.ID, a.ID)
	require.NoError(t, err)
	id := views[0].ID

	_, err = w.notes.MarkRead(w.ctx, b.ID, id)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	n, err := w.notes.MarkRead(w.ctx, a.ID, id)
	require.NoError(t, err)
	assert.True(t, n.ReadStatus)

	unread, err := w.notes.UnreadCount(w.ctx, a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)

	changed, err := w.notes.MarkAllRead(w.ctx, a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, changed)

	_, err = w.notes.MarkRead(w.ctx, a.ID, 999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "Notification not found", apperr.MessageOf(err))
}

func TestSeed(t *testing.T) {
	w := newWorld(t)
	require.NoError(t, servicesSeed(w))

	n, err := w.store.Users.Count(w.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)

	user, err := w.auth.Login(w.ctx, "chef_mario", "password123")
	require.NoError(t, err)
	assert.Equal(t, "Italian cuisine expert", user.Bio)

	all, err := w.recipes.List(w.ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for _, r := range all {
		assert.Len(t, r.Likes, 2)
		assert.Len(t, r.Favorites, 2)
		assert.Len(t, r.Comments, 2)
	}

	// A second run leaves the data alone.
	require.NoError(t, servicesSeed(w))
	n, err = w.store.Users.Count(w.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)
}
