package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lovecorner/internal/config"
	"lovecorner/internal/kvstore"
	"lovecorner/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-handler-tests-only"

func newTestApp(t *testing.T) (*fiber.App, *Server, *kvstore.Memory) {
	t.Helper()
	cfg := &config.Config{
		Port:         "0",
		Env:          "test",
		JWTSecret:    testSecret,
		StoreBackend: config.StoreMemory,
	}
	store := kvstore.NewMemory()
	s := NewServerWithStore(cfg, store)

	app := s.NewApp()
	s.SetupRoutes(app)
	return app, s, store
}

func seedPosts(t *testing.T, store kvstore.Store, posts ...models.Post) {
	t.Helper()
	require.NoError(t, kvstore.SetJSON(context.Background(), store, kvstore.PostsKey, posts))
}

func bearerToken(t *testing.T, username, displayName string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": username,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	if displayName != "" {
		claims["name"] = displayName
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func jsonRequest(method, target string, body any, authorization string) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func TestGetPickupLine(t *testing.T) {
	app, _, store := newTestApp(t)
	seedPosts(t, store, models.Post{
		ID:        7,
		Content:   "Em có mỏi không? Vì em đã chạy trong tâm trí anh cả ngày.",
		Category:  "romantic",
		Author:    "admin",
		CreatedAt: time.Date(2024, time.March, 9, 10, 0, 0, 0, time.UTC),
	})

	t.Run("renders the page view-model", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/pickup-lines/7", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var page struct {
			Post struct {
				ID       int64 `json:"id"`
				Category struct {
					Label string `json:"label"`
				} `json:"category"`
				PostedAt string `json:"postedAt"`
			} `json:"post"`
			Comments     []json.RawMessage `json:"comments"`
			CommentCount int               `json:"commentCount"`
		}
		decodeBody(t, resp, &page)
		assert.Equal(t, int64(7), page.Post.ID)
		assert.Equal(t, "Lãng mạn", page.Post.Category.Label)
		assert.Equal(t, "09/03/2024", page.Post.PostedAt)
		assert.Zero(t, page.CommentCount)
	})

	t.Run("unknown id answers 404", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/pickup-lines/404", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetComments_EmptyThread(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/pickup-lines/7/comments", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var comments []models.Comment
	decodeBody(t, resp, &comments)
	assert.Empty(t, comments)
}

func TestCreateComment(t *testing.T) {
	t.Run("missing identity answers 401 with a login redirect", func(t *testing.T) {
		app, _, _ := newTestApp(t)
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/pickup-lines/7/comments",
			fiber.Map{"content": "hi"}, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var body models.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "/login", body.Redirect)
	})

	t.Run("creates and lists the comment", func(t *testing.T) {
		app, _, _ := newTestApp(t)
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/pickup-lines/7/comments",
			fiber.Map{"content": "tuyệt vời"}, bearerToken(t, "bob", "Bobby")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var created models.Comment
		decodeBody(t, resp, &created)
		assert.Equal(t, "Bobby", created.Author)
		assert.Equal(t, "tuyệt vời", created.Content)

		resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/pickup-lines/7/comments", nil))
		require.NoError(t, err)
		var comments []models.Comment
		decodeBody(t, resp, &comments)
		require.Len(t, comments, 1)
		assert.Equal(t, created.ID, comments[0].ID)
	})

	t.Run("whitespace-only content answers 204", func(t *testing.T) {
		app, _, _ := newTestApp(t)
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/pickup-lines/7/comments",
			fiber.Map{"content": "   "}, bearerToken(t, "bob", "")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}

func TestCreateReply(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/pickup-lines/7/comments",
		fiber.Map{"content": "hello"}, bearerToken(t, "alice", "")))
	require.NoError(t, err)
	var comment models.Comment
	decodeBody(t, resp, &comment)

	t.Run("creates the reply and notifies the comment author", func(t *testing.T) {
		url := fmt.Sprintf("/api/pickup-lines/7/comments/%d/replies", comment.ID)
		resp, err := app.Test(jsonRequest(http.MethodPost, url,
			fiber.Map{"content": "chào alice"}, bearerToken(t, "bob", "")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, err = app.Test(jsonRequest(http.MethodGet, "/api/notifications/", nil,
			bearerToken(t, "alice", "")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var log []models.Notification
		decodeBody(t, resp, &log)
		require.Len(t, log, 1)
		assert.Equal(t, models.NotificationReply, log[0].Type)
		assert.Equal(t, "bob", log[0].From)
		assert.Equal(t, "đã trả lời bình luận của bạn", log[0].Content)

		resp, err = app.Test(jsonRequest(http.MethodGet, "/api/notifications/unread-count", nil,
			bearerToken(t, "alice", "")))
		require.NoError(t, err)
		var count struct {
			Count int `json:"count"`
		}
		decodeBody(t, resp, &count)
		assert.Equal(t, 1, count.Count)
	})

	t.Run("unknown comment id answers 204", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/pickup-lines/7/comments/999/replies",
			fiber.Map{"content": "hi"}, bearerToken(t, "bob", "")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("non-numeric comment id answers 400", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/pickup-lines/7/comments/abc/replies",
			fiber.Map{"content": "hi"}, bearerToken(t, "bob", "")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestReact(t *testing.T) {
	app, _, store := newTestApp(t)
	seedPosts(t, store, models.Post{ID: 7, Content: "hi", Category: "funny"})

	t.Run("toggles a post reaction", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/pickup-lines/7/reactions",
			fiber.Map{"target": "post", "kind": "haha"}, bearerToken(t, "bob", "")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/pickup-lines/7", nil))
		require.NoError(t, err)
		var page struct {
			Post struct {
				Reactions struct {
					Total   int  `json:"total"`
					Visible bool `json:"visible"`
				} `json:"reactions"`
			} `json:"post"`
		}
		decodeBody(t, resp, &page)
		assert.Equal(t, 1, page.Post.Reactions.Total)
		assert.True(t, page.Post.Reactions.Visible)
	})

	t.Run("unknown kind answers 400", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/pickup-lines/7/reactions",
			fiber.Map{"target": "post", "kind": "meh"}, bearerToken(t, "bob", "")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown target answers 400", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/pickup-lines/7/reactions",
			fiber.Map{"target": "page", "kind": "like"}, bearerToken(t, "bob", "")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("comment target without commentId answers 400", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/pickup-lines/7/reactions",
			fiber.Map{"target": "comment", "kind": "like"}, bearerToken(t, "bob", "")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unresolved comment target answers 204", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/pickup-lines/7/reactions",
			fiber.Map{"target": "comment", "commentId": 999, "kind": "like"}, bearerToken(t, "bob", "")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}

func TestErrorEnvelope_UnknownRoute(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body models.ErrorResponse
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Error, "routing errors answer with the standard envelope")
}

func TestHealthEndpoints(t *testing.T) {
	app, _, _ := newTestApp(t)

	for _, path := range []string{"/health/live", "/health/ready", "/health"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}
}
