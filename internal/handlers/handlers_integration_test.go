package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"recipebox/internal/logging"
	"recipebox/internal/server"
	"recipebox/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	logging.Init(logging.Config{Level: "disabled", Output: io.Discard})
	os.Exit(m.Run())
}

// setupApp sets up the application on a private in-memory SQLite database.
func setupApp(t *testing.T) *server.App {
	t.Helper()
	return server.New(server.Options{
		DB:            testutil.OpenDB(t),
		JWTSecret:     "test_jwt_secret",
		SessionTTL:    time.Hour,
		CORSOrigins:   []string{"http://localhost:3000"},
		DisableAccess: true,
	})
}

// client sends requests to the app and carries the session cookie between them.
type client struct {
	t      *testing.T
	app    *server.App
	cookie *http.Cookie
	bearer string
}

func newClient(t *testing.T, app *server.App) *client {
	return &client{t: t, app: app}
}

func (cl *client) do(method, path string, body any) (int, []byte) {
	cl.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(cl.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cl.cookie != nil {
		req.AddCookie(cl.cookie)
	}
	if cl.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+cl.bearer)
	}

	resp, err := cl.app.Test(req, -1)
	require.NoError(cl.t, err)
	defer resp.Body.Close()

	for _, c := range resp.Cookies() {
		if c.Name == "recipebox_session" {
			if c.Value == "" || c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(time.Now())) {
				cl.cookie = nil
			} else {
				cl.cookie = c
			}
		}
	}

	raw, err := io.ReadAll(resp.Body)
	require.NoError(cl.t, err)
	return resp.StatusCode, raw
}

func (cl *client) json(method, path string, body any, wantStatus int, out any) {
	cl.t.Helper()
	status, raw := cl.do(method, path, body)
	require.Equal(cl.t, wantStatus, status, "%s %s: %s", method, path, raw)
	if out != nil {
		require.NoError(cl.t, json.Unmarshal(raw, out), string(raw))
	}
}

func errorOf(t *testing.T, raw []byte) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return body["error"]
}

type userJSON struct {
	ID            uint   `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	RecipeCount   int64  `json:"recipe_count"`
	LikesReceived int64  `json:"likes_received"`
}

func signup(t *testing.T, app *server.App, name string) (*client, userJSON) {
	cl := newClient(t, app)
	var u userJSON
	cl.json(http.MethodPost, "/api/signup", map[string]string{
		"username": name, "email": name + "@example.com", "password": "secret1",
	}, http.StatusCreated, &u)
	require.NotNil(t, cl.cookie, "signup must set the session cookie")
	return cl, u
}

func createRecipe(t *testing.T, cl *client) uint {
	var r struct {
		ID uint `json:"id"`
	}
	cl.json(http.MethodPost, "/api/recipes", map[string]any{
		"title":        "Lentil Stew",
		"ingredients":  "lentils, carrots, onion, stock",
		"instructions": "Simmer everything for 40 minutes.",
		"cooking_time": 45,
	}, http.StatusCreated, &r)
	return r.ID
}

func TestHealthCheck(t *testing.T) {
	app := setupApp(t)
	status, raw := newClient(t, app).do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"status":"healthy"`)
}

func TestSignupLoginLogout(t *testing.T) {
	app := setupApp(t)
	cl, u := signup(t, app, "alice")
	assert.Equal(t, "alice", u.Username)

	status, raw := cl.do(http.MethodGet, "/api/check_session", nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, string(raw), "password")
	var me userJSON
	require.NoError(t, json.Unmarshal(raw, &me))
	assert.Equal(t, u.ID, me.ID)

	status, _ = cl.do(http.MethodDelete, "/api/logout", nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, raw = cl.do(http.MethodGet, "/api/check_session", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Not logged in", errorOf(t, raw))

	status, _ = cl.do(http.MethodDelete, "/api/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, raw = cl.do(http.MethodPost, "/api/login", map[string]string{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", errorOf(t, raw))

	cl.json(http.MethodPost, "/api/login", map[string]string{"username": "alice", "password": "secret1"}, http.StatusOK, &me)
	assert.Equal(t, u.ID, me.ID)
	cl.json(http.MethodGet, "/api/check_session", nil, http.StatusOK, nil)
}

func TestSignupErrors(t *testing.T) {
	app := setupApp(t)
	signup(t, app, "alice")
	cl := newClient(t, app)

	status, raw := cl.do(http.MethodPost, "/api/signup", map[string]string{"username": "alice", "email": "x@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Username already taken", errorOf(t, raw))

	status, raw = cl.do(http.MethodPost, "/api/signup", map[string]string{"username": "bob", "email": "bad-email", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid email format", errorOf(t, raw))

	status, raw = cl.do(http.MethodPost, "/api/login", map[string]string{"password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "username is required", errorOf(t, raw))
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	app := setupApp(t)
	cl := newClient(t, app)

	for _, r := range []struct{ method, path string }{
		{http.MethodPost, "/api/recipes"},
		{http.MethodPost, "/api/likes"},
		{http.MethodDelete, "/api/favorites"},
		{http.MethodPost, "/api/comments"},
		{http.MethodGet, "/api/notifications/user/1"},
		{http.MethodPatch, "/api/users/1"},
	} {
		status, _ := cl.do(r.method, r.path, map[string]any{})
		assert.Equal(t, http.StatusUnauthorized, status, "%s %s", r.method, r.path)
	}
}

func TestLikeFlow(t *testing.T) {
	app := setupApp(t)
	alice, a := signup(t, app, "alice")
	bob, b := signup(t, app, "bob")
	recipeID := createRecipe(t, alice)

	var like struct {
		UserID   uint `json:"user_id"`
		RecipeID uint `json:"recipe_id"`
	}
	bob.json(http.MethodPost, "/api/likes", map[string]uint{"recipe_id": recipeID}, http.StatusCreated, &like)
	assert.Equal(t, b.ID, like.UserID)

	status, raw := bob.do(http.MethodPost, "/api/likes", map[string]uint{"recipe_id": recipeID})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Recipe already liked", errorOf(t, raw))

	status, raw = bob.do(http.MethodPost, "/api/likes", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "recipe_id is required", errorOf(t, raw))

	status, _ = bob.do(http.MethodPost, "/api/likes", map[string]uint{"recipe_id": 999})
	assert.Equal(t, http.StatusNotFound, status)

	var favorites []struct {
		RecipeID uint `json:"recipe_id"`
		Recipe   struct {
			Title string `json:"title"`
		} `json:"recipe"`
	}
	bob.json(http.MethodGet, fmt.Sprintf("/api/favorites/user/%d", b.ID), nil, http.StatusOK, &favorites)
	require.Len(t, favorites, 1)
	assert.Equal(t, "Lentil Stew", favorites[0].Recipe.Title)

	var notes []struct {
		ID    uint   `json:"id"`
		Type  string `json:"type"`
		Actor struct {
			Username string `json:"username"`
		} `json:"actor"`
	}
	alice.json(http.MethodGet, fmt.Sprintf("/api/notifications/user/%d", a.ID), nil, http.StatusOK, &notes)
	require.Len(t, notes, 1)
	assert.Equal(t, "like", notes[0].Type)
	assert.Equal(t, "bob", notes[0].Actor.Username)

	status, _ = bob.do(http.MethodGet, fmt.Sprintf("/api/notifications/user/%d", a.ID), nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = bob.do(http.MethodPatch, fmt.Sprintf("/api/notifications/%d/mark_read", notes[0].ID), nil)
	assert.Equal(t, http.StatusForbidden, status)

	var unread struct {
		UnreadCount int64 `json:"unread_count"`
	}
	alice.json(http.MethodGet, "/api/notifications/unread_count", nil, http.StatusOK, &unread)
	assert.EqualValues(t, 1, unread.UnreadCount)

	var read struct {
		ReadStatus bool `json:"read_status"`
	}
	alice.json(http.MethodPatch, fmt.Sprintf("/api/notifications/%d/mark_read", notes[0].ID), nil, http.StatusOK, &read)
	assert.True(t, read.ReadStatus)

	var profile userJSON
	alice.json(http.MethodGet, fmt.Sprintf("/api/users/%d", a.ID), nil, http.StatusOK, &profile)
	assert.EqualValues(t, 1, profile.RecipeCount)
	assert.EqualValues(t, 1, profile.LikesReceived)

	status, _ = bob.do(http.MethodDelete, "/api/likes", map[string]uint{"recipe_id": recipeID})
	assert.Equal(t, http.StatusNoContent, status)
	bob.json(http.MethodGet, fmt.Sprintf("/api/favorites/user/%d", b.ID), nil, http.StatusOK, &favorites)
	assert.Empty(t, favorites)

	status, raw = bob.do(http.MethodDelete, "/api/likes", map[string]uint{"recipe_id": recipeID})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Like not found", errorOf(t, raw))
}

func TestCommentFlow(t *testing.T) {
	app := setupApp(t)
	alice, _ := signup(t, app, "alice")
	bob, _ := signup(t, app, "bob")
	carol, _ := signup(t, app, "carol")
	recipeID := createRecipe(t, alice)

	var comment struct {
		ID      uint   `json:"id"`
		Content string `json:"content"`
		User    struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	bob.json(http.MethodPost, "/api/comments", map[string]any{"recipe_id": recipeID, "content": "  Hearty!  "}, http.StatusCreated, &comment)
	assert.Equal(t, "Hearty!", comment.Content)
	assert.Equal(t, "bob", comment.User.Username)

	status, raw := bob.do(http.MethodPost, "/api/comments", map[string]any{"recipe_id": recipeID, "content": "   "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Comment cannot be empty", errorOf(t, raw))

	var comments []struct {
		Content string `json:"content"`
	}
	carol.json(http.MethodGet, fmt.Sprintf("/api/comments/recipe/%d", recipeID), nil, http.StatusOK, &comments)
	require.Len(t, comments, 1)

	status, _ = carol.do(http.MethodDelete, "/api/comments", map[string]uint{"comment_id": comment.ID})
	assert.Equal(t, http.StatusForbidden, status)

	// The recipe owner may delete comments on their recipe.
	status, _ = alice.do(http.MethodDelete, "/api/comments", map[string]uint{"comment_id": comment.ID})
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = alice.do(http.MethodDelete, "/api/comments", map[string]uint{"comment_id": comment.ID})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRecipeFlow(t *testing.T) {
	app := setupApp(t)
	alice, a := signup(t, app, "alice")
	bob, _ := signup(t, app, "bob")
	recipeID := createRecipe(t, alice)

	var detail struct {
		Title            string `json:"title"`
		InstructionsHTML string `json:"instructions_html"`
		User             struct {
			ID uint `json:"id"`
		} `json:"user"`
		Likes    []any `json:"likes"`
		Comments []any `json:"comments"`
	}
	bob.json(http.MethodGet, fmt.Sprintf("/api/recipes/%d", recipeID), nil, http.StatusOK, &detail)
	assert.Equal(t, a.ID, detail.User.ID)
	assert.Contains(t, detail.InstructionsHTML, "<p>Simmer everything")
	assert.NotNil(t, detail.Likes)

	status, _ := bob.do(http.MethodPatch, fmt.Sprintf("/api/recipes/%d", recipeID), map[string]string{"title": "Mine now"})
	assert.Equal(t, http.StatusForbidden, status)

	status, raw := alice.do(http.MethodPatch, fmt.Sprintf("/api/recipes/%d", recipeID), map[string]any{"cooking_time": 0})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Cooking time must be a positive integer", errorOf(t, raw))

	alice.json(http.MethodPatch, fmt.Sprintf("/api/recipes/%d", recipeID), map[string]string{"title": "Red Lentil Stew"}, http.StatusOK, &detail)
	assert.Equal(t, "Red Lentil Stew", detail.Title)

	var list []struct {
		ID uint `json:"id"`
	}
	bob.json(http.MethodGet, "/api/recipes", nil, http.StatusOK, &list)
	assert.Len(t, list, 1)
	bob.json(http.MethodGet, fmt.Sprintf("/api/recipes/user/%d", a.ID), nil, http.StatusOK, &list)
	assert.Len(t, list, 1)

	status, _ = bob.do(http.MethodDelete, fmt.Sprintf("/api/recipes/%d", recipeID), nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = alice.do(http.MethodDelete, fmt.Sprintf("/api/recipes/%d", recipeID), nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, raw = bob.do(http.MethodGet, fmt.Sprintf("/api/recipes/%d", recipeID), nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Recipe not found", errorOf(t, raw))

	status, _ = bob.do(http.MethodGet, "/api/recipes/abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUserProfileAndDelete(t *testing.T) {
	app := setupApp(t)
	alice, a := signup(t, app, "alice")
	bob, b := signup(t, app, "bob")

	status, _ := bob.do(http.MethodPatch, fmt.Sprintf("/api/users/%d", a.ID), map[string]string{"bio": "hacked"})
	assert.Equal(t, http.StatusForbidden, status)

	status, raw := alice.do(http.MethodPatch, fmt.Sprintf("/api/users/%d", a.ID), map[string]string{"username": "bob"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Username already taken", errorOf(t, raw))

	var me struct {
		Bio string `json:"bio"`
	}
	alice.json(http.MethodPatch, fmt.Sprintf("/api/users/%d", a.ID), map[string]string{"bio": "Soup person"}, http.StatusOK, &me)
	assert.Equal(t, "Soup person", me.Bio)

	status, _ = bob.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", b.ID), nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = bob.do(http.MethodGet, "/api/check_session", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = alice.do(http.MethodGet, fmt.Sprintf("/api/users/%d", b.ID), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBearerToken(t *testing.T) {
	app := setupApp(t)
	alice, _ := signup(t, app, "alice")

	var tok struct {
		Token string `json:"token"`
	}
	alice.json(http.MethodPost, "/api/token", nil, http.StatusOK, &tok)
	require.NotEmpty(t, tok.Token)

	api := newClient(t, app)
	api.bearer = tok.Token
	createRecipe(t, api)

	api.bearer = "garbage"
	status, raw := api.do(http.MethodPost, "/api/recipes", map[string]any{})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token", errorOf(t, raw))
}

func TestMetricsEndpoint(t *testing.T) {
	app := setupApp(t)
	alice, _ := signup(t, app, "alice")
	recipeID := createRecipe(t, alice)
	alice.json(http.MethodPost, "/api/likes", map[string]uint{"recipe_id": recipeID}, http.StatusCreated, nil)

	status, raw := newClient(t, app).do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, strings.Contains(string(raw), `recipebox_social_actions_total{action="like_create",outcome="ok"}`))
}
