package seed

import (
	"fmt"
	"math/rand"
	"time"

	"connectsphere/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// generatePosts fabricates extra posts spread over the last week,
// attributed round-robin to the fixture users. Roughly a third carry an
// image.
func generatePosts(users []*models.User, count int) []*models.Post {
	gofakeit.Seed(time.Now().UnixNano())
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	now := time.Now().UTC()
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		user := users[i%len(users)]
		age := time.Duration(rng.Intn(7*24)) * time.Hour

		post := &models.Post{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			Content:   gofakeit.Paragraph(1, 3, 5, " "),
			CreatedAt: now.Add(-age),
			Likes:     models.NewLikeSet(),
			Comments:  []models.Comment{},
		}

		if rng.Intn(3) == 0 {
			post.MediaURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/450", uuid.NewString()[:8])
			post.MediaKind = models.MediaImage
		}

		for j := 0; j < rng.Intn(3); j++ {
			commenter := users[rng.Intn(len(users))]
			post.Comments = append(post.Comments, models.Comment{
				ID:        uuid.NewString(),
				UserID:    commenter.ID,
				Content:   gofakeit.Sentence(8),
				CreatedAt: post.CreatedAt.Add(time.Duration(j+1) * time.Minute),
			})
		}

		for _, u := range users {
			if u.ID != user.ID && rng.Intn(2) == 0 {
				post.Likes.Add(u.ID)
			}
		}

		posts = append(posts, post)
	}
	return posts
}
