package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lovecorner/internal/kvstore"
	"lovecorner/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_Seed(t *testing.T) {
	store := kvstore.NewMemory()
	f := NewFactory(store)
	ctx := context.Background()

	require.NoError(t, f.Seed(ctx, Options{
		NumPosts:             3,
		CommentsPerPost:      2,
		MaxRepliesPerComment: 2,
	}))

	var posts []models.Post
	ok, err := kvstore.GetJSON(ctx, store, kvstore.PostsKey, &posts)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, posts, 3)

	seen := map[int64]bool{}
	for _, p := range posts {
		assert.NotEmpty(t, p.Content)
		assert.Contains(t, []string{"romantic", "sweet", "funny"}, p.Category)
		assert.False(t, seen[p.ID], "post ids must be unique")
		seen[p.ID] = true

		var comments []models.Comment
		ok, err := kvstore.GetJSON(ctx, store, kvstore.CommentsKey(p.Key()), &comments)
		require.NoError(t, err)
		require.True(t, ok)
		require.Len(t, comments, 2)
		for _, c := range comments {
			assert.NotNil(t, c.Replies)
			assert.LessOrEqual(t, len(c.Replies), 2)
		}
	}

	var user models.User
	ok, err = kvstore.GetJSON(ctx, store, kvstore.CurrentUserKey, &user)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "demo", user.Username)
	assert.Equal(t, "Người dùng demo", user.DisplayName)
}

func TestFactory_Seed_Defaults(t *testing.T) {
	store := kvstore.NewMemory()
	f := NewFactory(store)

	require.NoError(t, f.Seed(context.Background(), Options{}))

	var posts []models.Post
	ok, err := kvstore.GetJSON(context.Background(), store, kvstore.PostsKey, &posts)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEmpty(t, posts)
}

const presetYAML = `
currentUser:
  username: demo
  displayName: Bạn Demo
posts:
  - id: 1
    content: "Em có phải là wifi không? Vì anh thấy có kết nối."
    category: funny
    author: admin
    comments:
      - author: Minh Anh
        content: "Câu này vui quá!"
        replies:
          - author: Tuấn
            content: "Chuẩn luôn."
`

func TestPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yml")
	require.NoError(t, os.WriteFile(path, []byte(presetYAML), 0o600))

	preset, err := LoadPreset(path)
	require.NoError(t, err)
	require.NotNil(t, preset.CurrentUser)
	require.Len(t, preset.Posts, 1)

	store := kvstore.NewMemory()
	f := NewFactory(store)
	ctx := context.Background()
	require.NoError(t, f.Apply(ctx, preset))

	var posts []models.Post
	ok, err := kvstore.GetJSON(ctx, store, kvstore.PostsKey, &posts)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, posts, 1)
	assert.Equal(t, int64(1), posts[0].ID)
	assert.Equal(t, "funny", posts[0].Category)

	var comments []models.Comment
	ok, err = kvstore.GetJSON(ctx, store, kvstore.CommentsKey("1"), &comments)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, comments, 1)
	assert.Equal(t, "Minh Anh", comments[0].Author)
	require.Len(t, comments[0].Replies, 1)
	assert.Equal(t, "Tuấn", comments[0].Replies[0].Author)
	assert.NotZero(t, comments[0].Replies[0].ID)
}

func TestLoadPreset_MissingFile(t *testing.T) {
	_, err := LoadPreset(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
