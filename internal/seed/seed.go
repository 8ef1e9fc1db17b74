// Package seed provides store seeding utilities for development and testing.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"connectsphere/internal/models"
	"connectsphere/internal/repository"
	"connectsphere/internal/store"
)

// Options configuration for the seeder
type Options struct {
	ExtraPosts  int
	ShouldClean bool
}

// Fixture friend counts span every quota tier: no posting, one per day,
// two per day, and unlimited.
func fixtureUsers() []*models.User {
	return []*models.User{
		{ID: "u1", Name: "Alex Johnson", Avatar: "https://i.pravatar.cc/150?img=12", FriendCount: 5},
		{ID: "u2", Name: "Maria Garcia", Avatar: "https://i.pravatar.cc/150?img=25", FriendCount: 12},
		{ID: "u3", Name: "Sam Chen", Avatar: "https://i.pravatar.cc/150?img=33", FriendCount: 1},
		{ID: "u4", Name: "Jessica Williams", Avatar: "https://i.pravatar.cc/150?img=45", FriendCount: 0},
		{ID: "u5", Name: "Mike Brown", Avatar: "https://i.pravatar.cc/150?img=51", FriendCount: 2},
	}
}

func fixturePosts(now time.Time) []*models.Post {
	return []*models.Post{
		{
			ID:        "p1",
			UserID:    "u2",
			Content:   "Just finished an amazing hike in the mountains! The views were absolutely breathtaking.",
			CreatedAt: now.Add(-26 * time.Hour),
			MediaURL:  "https://picsum.photos/seed/hike/800/450",
			MediaKind: models.MediaImage,
			Likes:     models.LikeSet{"u1": {}, "u3": {}},
			Comments: []models.Comment{
				{ID: "c1", UserID: "u1", Content: "Wow, where is this?", CreatedAt: now.Add(-25 * time.Hour)},
				{ID: "c2", UserID: "u5", Content: "Adding this to my list!", CreatedAt: now.Add(-24 * time.Hour)},
			},
		},
		{
			ID:        "p2",
			UserID:    "u1",
			Content:   "Quick clip from the weekend jam session.",
			CreatedAt: now.Add(-20 * time.Hour),
			MediaURL:  "https://example.com/media/jam-session.mp4",
			MediaKind: models.MediaVideo,
			Likes:     models.LikeSet{"u2": {}},
			Comments:  []models.Comment{},
		},
		{
			ID:        "p3",
			UserID:    "u5",
			Content:   "Finished reading a great book on distributed systems. Highly recommend it.",
			CreatedAt: now.Add(-8 * time.Hour),
			Likes:     models.NewLikeSet(),
			Comments:  []models.Comment{},
		},
	}
}

// Seed populates the store with fixture users, posts, and the default
// current user. With ShouldClean it wipes the relevant keys first;
// otherwise an already-populated store is left untouched.
func Seed(ctx context.Context, kv store.KeyValue, opts Options) error {
	userRepo := repository.NewUserRepository(kv)
	postRepo := repository.NewPostRepository(kv)

	if opts.ShouldClean {
		for _, key := range []string{store.KeyUsers, store.KeyPosts, store.KeyCurrentUser, store.KeyProfile} {
			if err := kv.Delete(ctx, key); err != nil && !errors.Is(err, store.ErrKeyNotFound) {
				return fmt.Errorf("failed to clean key %s: %w", key, err)
			}
		}
	} else if populated, err := isPopulated(ctx, kv); err != nil {
		return err
	} else if populated {
		return nil
	}

	users := fixtureUsers()
	if err := userRepo.SaveAll(ctx, users); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if err := userRepo.SetCurrent(ctx, users[0].ID); err != nil {
		return fmt.Errorf("failed to set current user: %w", err)
	}

	posts := fixturePosts(time.Now().UTC())
	if opts.ExtraPosts > 0 {
		posts = append(posts, generatePosts(users, opts.ExtraPosts)...)
	}
	if err := postRepo.SaveAll(ctx, posts); err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}

	return nil
}

func isPopulated(ctx context.Context, kv store.KeyValue) (bool, error) {
	var users []*models.User
	err := kv.Get(ctx, store.KeyUsers, &users)
	if errors.Is(err, store.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return len(users) > 0, nil
}
