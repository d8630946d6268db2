// Package seed provides helpers to create demo engagement data in the
// key-value store. These helpers are intended for development and testing
// only.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"lovecorner/internal/kvstore"
	"lovecorner/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// Options configuration for the seeder.
type Options struct {
	NumPosts             int
	CommentsPerPost      int
	MaxRepliesPerComment int
}

var (
	pickupLines = []string{
		"Em có mỏi chân không? Vì em đã chạy trong tâm trí anh cả ngày rồi.",
		"Anh không phải nhiếp ảnh gia, nhưng anh có thể hình dung em và anh bên nhau.",
		"Em có phải là Google không? Vì em có tất cả những gì anh đang tìm kiếm.",
		"Nếu được viết lại bảng chữ cái, anh sẽ đặt U và I cạnh nhau.",
		"Em có tin vào tình yêu sét đánh không, hay anh nên đi ngang qua lần nữa?",
		"Trái tim anh như điện thoại hết pin, chỉ có em mới sạc đầy được.",
		"Em cười một cái là anh quên luôn mật khẩu wifi nhà mình.",
		"Gặp em xong anh mới hiểu vì sao người ta sợ say nắng.",
	}

	commentPhrases = []string{
		"Câu này đỉnh quá, để mai thử liền!",
		"Haha cười xỉu, ai mà chịu nổi câu này.",
		"Nghe sến nhưng mà dễ thương ghê.",
		"Đã dùng thử và thành công, cảm ơn admin!",
		"Câu này cũ rồi, cần bản cập nhật mới hơn.",
		"Crush mình mà nghe câu này chắc bỏ chạy mất.",
		"Ngọt quá trời ngọt, răng sâu hết rồi nè.",
		"Lưu lại liền, tối nay có hẹn.",
	}

	replyPhrases = []string{
		"Chuẩn luôn bạn ơi!",
		"Mình cũng nghĩ vậy đó.",
		"Thử chưa mà biết, kể nghe với!",
		"Haha đồng cảm ghê.",
		"Đừng nha, quê lắm đó.",
	}

	seedCategories = []string{"romantic", "sweet", "funny"}
)

// Factory builds engagement entities and persists them through the store.
// It is a thin helper used by presets and tests.
type Factory struct {
	store kvstore.Store
	r     *rand.Rand
	// synthetic id counter so seeded entities never collide
	nextID int64
}

// NewFactory creates a Factory bound to the provided store.
func NewFactory(store kvstore.Store) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	// #nosec G404: acceptable for seeding
	return &Factory{
		store:  store,
		r:      rand.New(rand.NewSource(time.Now().UnixNano())),
		nextID: time.Now().UnixMilli(),
	}
}

func (f *Factory) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *Factory) avatar() string {
	return fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID())
}

// spreadCreatedAt returns a timestamp scattered over the past maxDays days.
func (f *Factory) spreadCreatedAt(maxDays int) time.Time {
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.r.Intn(maxDays)
	hoursBack := f.r.Intn(24)
	minsBack := f.r.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

func (f *Factory) reactionSpread() models.ReactionSet {
	return models.ReactionSet{
		Like:  gofakeit.Number(0, 40),
		Love:  gofakeit.Number(0, 25),
		Haha:  gofakeit.Number(0, 15),
		Wow:   gofakeit.Number(0, 5),
		Sad:   gofakeit.Number(0, 2),
		Angry: gofakeit.Number(0, 2),
	}
}

// BuildPost constructs a demo pickup line but does not persist it. Optional
// override functions may modify the generated post.
func (f *Factory) BuildPost(overrides ...func(*models.Post)) models.Post {
	post := models.Post{
		ID:        f.id(),
		Content:   pickupLines[f.r.Intn(len(pickupLines))],
		Category:  seedCategories[f.r.Intn(len(seedCategories))],
		Author:    gofakeit.FirstName() + " " + gofakeit.LastName(),
		CreatedAt: f.spreadCreatedAt(90),
	}
	post.Reactions = f.reactionSpread()
	for _, override := range overrides {
		override(&post)
	}
	return post
}

// BuildComment constructs a demo comment with replies but does not persist
// it.
func (f *Factory) BuildComment(maxReplies int, overrides ...func(*models.Comment)) models.Comment {
	comment := models.Comment{
		ID:        f.id(),
		Author:    gofakeit.FirstName() + " " + gofakeit.LastName(),
		Content:   commentPhrases[f.r.Intn(len(commentPhrases))],
		CreatedAt: f.spreadCreatedAt(30),
		Avatar:    f.avatar(),
		Replies:   []models.Reply{},
	}
	comment.Reactions = f.reactionSpread()

	if maxReplies > 0 {
		for i := 0; i < f.r.Intn(maxReplies+1); i++ {
			comment.Replies = append(comment.Replies, models.Reply{
				ID:        f.id(),
				Author:    gofakeit.FirstName() + " " + gofakeit.LastName(),
				Content:   replyPhrases[f.r.Intn(len(replyPhrases))],
				CreatedAt: f.spreadCreatedAt(7),
				Avatar:    f.avatar(),
			})
		}
	}

	for _, override := range overrides {
		override(&comment)
	}
	return comment
}

// Seed populates the store with demo posts, comment threads, and the demo
// viewer identity.
func (f *Factory) Seed(ctx context.Context, opts Options) error {
	if opts.NumPosts <= 0 {
		opts.NumPosts = len(pickupLines)
	}
	if opts.CommentsPerPost <= 0 {
		opts.CommentsPerPost = 4
	}

	posts := make([]models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		posts = append(posts, f.BuildPost())
	}
	if err := kvstore.SetJSON(ctx, f.store, kvstore.PostsKey, posts); err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}
	log.Printf("✓ %d pickup lines seeded", len(posts))

	for _, post := range posts {
		comments := make([]models.Comment, 0, opts.CommentsPerPost)
		for i := 0; i < opts.CommentsPerPost; i++ {
			comments = append(comments, f.BuildComment(opts.MaxRepliesPerComment))
		}
		if err := kvstore.SetJSON(ctx, f.store, kvstore.CommentsKey(post.Key()), comments); err != nil {
			return fmt.Errorf("failed to seed comments for post %s: %w", post.Key(), err)
		}
	}
	log.Printf("✓ comment threads seeded for %d posts", len(posts))

	demo := models.User{
		Username:    "demo",
		DisplayName: "Người dùng demo",
		Avatar:      f.avatar(),
	}
	if err := kvstore.SetJSON(ctx, f.store, kvstore.CurrentUserKey, demo); err != nil {
		return fmt.Errorf("failed to seed demo identity: %w", err)
	}
	log.Printf("✓ demo identity %q seeded", demo.Username)

	return nil
}
