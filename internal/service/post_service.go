package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pinspire/internal/model"
	"pinspire/pkg/apierror"
)

type PostService struct {
	posts PostStore
}

func NewPostService(posts PostStore) *PostService {
	return &PostService{posts: posts}
}

func (s *PostService) List(ctx context.Context, userID string) ([]model.Post, error) {
	return s.posts.ListByUser(ctx, userID)
}

func (s *PostService) Get(ctx context.Context, userID string, postID string) (model.Post, error) {
	return s.posts.FindByID(ctx, postID, userID)
}

func (s *PostService) Create(ctx context.Context, userID string, req model.CreatePostRequest) (model.Post, error) {
	if strings.TrimSpace(req.Caption) == "" {
		return model.Post{}, apierror.Validation("caption is required", "")
	}

	scheduledTime, err := parseScheduledTime(req.ScheduledTime)
	if err != nil {
		return model.Post{}, err
	}

	status := model.PostStatusDraft
	if scheduledTime != nil {
		status = model.PostStatusScheduled
	}

	boards := req.Boards
	if boards == nil {
		boards = []string{}
	}

	now := time.Now().UTC()
	post := model.Post{
		ID:                 uuid.NewString(),
		UserID:             userID,
		Caption:            req.Caption,
		ImageURL:           req.ImageURL,
		ImageData:          req.ImageData,
		Boards:             boards,
		ScheduledTime:      scheduledTime,
		Status:             status,
		AIGeneratedCaption: req.AIGeneratedCaption,
		AIGeneratedImage:   req.AIGeneratedImage,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return model.Post{}, err
	}

	return post, nil
}

func (s *PostService) Update(ctx context.Context, userID string, postID string, req model.UpdatePostRequest) (model.Post, error) {
	post, err := s.posts.FindByID(ctx, postID, userID)
	if err != nil {
		return model.Post{}, err
	}

	// Published is terminal; status only moves forward.
	if post.Status == model.PostStatusPublished {
		return model.Post{}, apierror.Validation("published posts cannot be modified", "")
	}

	if req.Caption != nil {
		if strings.TrimSpace(*req.Caption) == "" {
			return model.Post{}, apierror.Validation("caption cannot be empty", "")
		}
		post.Caption = *req.Caption
	}
	if req.ImageURL != nil {
		post.ImageURL = *req.ImageURL
	}
	if req.Boards != nil {
		post.Boards = *req.Boards
	}
	if req.ScheduledTime != nil {
		scheduledTime, err := parseScheduledTime(req.ScheduledTime)
		if err != nil {
			return model.Post{}, err
		}
		post.ScheduledTime = scheduledTime
		if scheduledTime != nil {
			post.Status = model.PostStatusScheduled
		} else {
			post.Status = model.PostStatusDraft
		}
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return model.Post{}, err
	}

	return s.posts.FindByID(ctx, postID, userID)
}

func (s *PostService) Delete(ctx context.Context, userID string, postID string) error {
	return s.posts.Delete(ctx, postID, userID)
}

func parseScheduledTime(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, strings.TrimSpace(*raw))
	if err != nil {
		return nil, apierror.Validation("scheduled_time must be RFC 3339", *raw)
	}
	return &t, nil
}
