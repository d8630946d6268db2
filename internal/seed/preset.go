package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"lovecorner/internal/kvstore"
	"lovecorner/internal/models"

	"gopkg.in/yaml.v3"
)

// Preset describes a hand-written demo dataset loaded from a YAML file.
// Presets keep curated content under version control while the factory
// covers random bulk data.
type Preset struct {
	CurrentUser *PresetUser  `yaml:"currentUser"`
	Posts       []PresetPost `yaml:"posts"`
}

// PresetUser is the demo viewer identity.
type PresetUser struct {
	Username    string `yaml:"username"`
	DisplayName string `yaml:"displayName"`
	Avatar      string `yaml:"avatar"`
}

// PresetPost is one curated pickup line with its thread.
type PresetPost struct {
	ID       int64           `yaml:"id"`
	Content  string          `yaml:"content"`
	Image    string          `yaml:"image"`
	Category string          `yaml:"category"`
	Author   string          `yaml:"author"`
	Comments []PresetComment `yaml:"comments"`
}

// PresetComment is one curated comment with optional replies.
type PresetComment struct {
	Author  string        `yaml:"author"`
	Content string        `yaml:"content"`
	Avatar  string        `yaml:"avatar"`
	Replies []PresetReply `yaml:"replies"`
}

// PresetReply is one curated reply.
type PresetReply struct {
	Author  string `yaml:"author"`
	Content string `yaml:"content"`
	Avatar  string `yaml:"avatar"`
}

// LoadPreset reads and parses a preset file.
func LoadPreset(path string) (*Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset %s: %w", path, err)
	}
	var preset Preset
	if err := yaml.Unmarshal(raw, &preset); err != nil {
		return nil, fmt.Errorf("failed to parse preset %s: %w", path, err)
	}
	return &preset, nil
}

// Apply writes the preset's content into the store. Entities get fresh ids
// and timestamps; only the curated text and identities come from the file.
func (f *Factory) Apply(ctx context.Context, preset *Preset) error {
	posts := make([]models.Post, 0, len(preset.Posts))
	for _, p := range preset.Posts {
		post := models.Post{
			ID:        p.ID,
			Content:   p.Content,
			Image:     p.Image,
			Category:  p.Category,
			Author:    p.Author,
			CreatedAt: f.spreadCreatedAt(90),
		}
		if post.ID == 0 {
			post.ID = f.id()
		}
		posts = append(posts, post)
	}
	if err := kvstore.SetJSON(ctx, f.store, kvstore.PostsKey, posts); err != nil {
		return fmt.Errorf("failed to apply preset posts: %w", err)
	}

	for i, p := range preset.Posts {
		comments := make([]models.Comment, 0, len(p.Comments))
		for _, pc := range p.Comments {
			comment := models.Comment{
				ID:        f.id(),
				Author:    pc.Author,
				Content:   pc.Content,
				CreatedAt: f.spreadCreatedAt(30),
				Avatar:    pc.Avatar,
				Replies:   []models.Reply{},
			}
			for _, pr := range pc.Replies {
				comment.Replies = append(comment.Replies, models.Reply{
					ID:        f.id(),
					Author:    pr.Author,
					Content:   pr.Content,
					CreatedAt: comment.CreatedAt.Add(time.Duration(len(comment.Replies)+1) * time.Hour),
					Avatar:    pr.Avatar,
				})
			}
			comments = append(comments, comment)
		}
		if err := kvstore.SetJSON(ctx, f.store, kvstore.CommentsKey(posts[i].Key()), comments); err != nil {
			return fmt.Errorf("failed to apply preset comments for post %s: %w", posts[i].Key(), err)
		}
	}

	if preset.CurrentUser != nil {
		user := models.User{
			Username:    preset.CurrentUser.Username,
			DisplayName: preset.CurrentUser.DisplayName,
			Avatar:      preset.CurrentUser.Avatar,
		}
		if err := kvstore.SetJSON(ctx, f.store, kvstore.CurrentUserKey, user); err != nil {
			return fmt.Errorf("failed to apply preset identity: %w", err)
		}
	}

	return nil
}
