// Package service contains the business logic of the application.
package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"connectsphere/internal/models"
	"connectsphere/internal/observability"
	"connectsphere/internal/policy"
	"connectsphere/internal/repository"

	"github.com/google/uuid"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

type CreatePostInput struct {
	Content   string
	MediaURL  string
	MediaKind string
}

type AddCommentInput struct {
	PostID  string
	Content string
}

// QuotaStatus reports the posting quota for the current user today.
type QuotaStatus struct {
	FriendCount int          `json:"friends"`
	Limit       policy.Quota `json:"limit"`
	Used        int          `json:"used"`
	Remaining   policy.Quota `json:"remaining"`
	Unlimited   bool         `json:"unlimited"`
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, now func() time.Time) *PostService {
	if now == nil {
		now = time.Now
	}
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		now:      now,
	}
}

// ListPosts returns all posts, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sorted := make([]*models.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted, nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// CreatePost creates a post for the current user, subject to the daily quota.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	user, err := s.userRepo.Current(ctx)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(in.Content)

	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	used := policy.PostsCreatedToday(posts, user.ID, now)

	decision := policy.CanPost(user.FriendCount, used, content != "")
	if !decision.Allowed {
		observability.PostsRejected.WithLabelValues(string(decision.Reason)).Inc()
		switch decision.Reason {
		case policy.ReasonEmptyContent:
			return nil, models.NewValidationError("post content is required")
		case policy.ReasonNoFriends:
			return nil, models.NewQuotaError("make a friend to start posting")
		default:
			return nil, models.NewQuotaError("daily post limit reached")
		}
	}

	post := &models.Post{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Content:   content,
		CreatedAt: now.UTC(),
		Likes:     models.NewLikeSet(),
		Comments:  []models.Comment{},
	}

	if in.MediaURL != "" {
		kind := models.MediaKind(in.MediaKind)
		if !kind.Valid() {
			return nil, models.NewValidationError("media kind must be image or video")
		}
		post.MediaURL = in.MediaURL
		post.MediaKind = kind
	}

	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, err
	}

	observability.PostsCreated.Inc()
	return post, nil
}

// ToggleLike flips the current user's like on a post and returns the updated post.
func (s *PostService) ToggleLike(ctx context.Context, postID string) (*models.Post, error) {
	user, err := s.userRepo.Current(ctx)
	if err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	post.Likes = policy.ToggleLike(post.Likes, user.ID)

	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// AddComment appends a comment by the current user to a post.
func (s *PostService) AddComment(ctx context.Context, in AddCommentInput) (*models.Post, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("comment content is required")
	}

	user, err := s.userRepo.Current(ctx)
	if err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}
	post.Comments = policy.AppendComment(post.Comments, comment)

	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListComments returns a post's comments sorted oldest first.
func (s *PostService) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return policy.SortComments(post.Comments), nil
}

// Quota returns the current user's posting quota status for today.
func (s *PostService) Quota(ctx context.Context) (*QuotaStatus, error) {
	user, err := s.userRepo.Current(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	limit := policy.DailyQuota(user.FriendCount)
	used := policy.PostsCreatedToday(posts, user.ID, s.now())

	return &QuotaStatus{
		FriendCount: user.FriendCount,
		Limit:       limit,
		Used:        used,
		Remaining:   limit.Remaining(used),
		Unlimited:   limit.IsUnlimited(),
	}, nil
}
