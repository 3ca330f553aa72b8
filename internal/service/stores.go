package service

import (
	"context"
	"time"

	"pinspire/internal/model"
	"pinspire/internal/pinterest"
)

// UserStore is the persistence surface services need for users. Implemented
// by repository.UserRepository.
type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username string, email string, excludeID string) (bool, error)
	Create(ctx context.Context, u model.User) error
	UpdateProfile(ctx context.Context, id string, username string, email string) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	SetOAuthState(ctx context.Context, id string, state string) error
	SaveLinkage(ctx context.Context, id string, accessToken string, refreshToken string, expiry time.Time, username string) error
	UpdateTokens(ctx context.Context, id string, accessToken string, refreshToken string, expiry time.Time) error
	ClearLinkage(ctx context.Context, id string) error
	SaveAppCredentials(ctx context.Context, id string, appID string, appSecret string, redirectURI string) error
	ClearAppCredentials(ctx context.Context, id string) error
}

// PostStore is the persistence surface for posts. Implemented by
// repository.PostRepository.
type PostStore interface {
	ListByUser(ctx context.Context, userID string) ([]model.Post, error)
	FindByID(ctx context.Context, id string, userID string) (model.Post, error)
	Create(ctx context.Context, p model.Post) error
	Update(ctx context.Context, p model.Post) error
	Delete(ctx context.Context, id string, userID string) error
	MarkPublished(ctx context.Context, id string, userID string, pinIDs []string, boardIDs []string, publishedAt time.Time) error
}

// ClientProvider resolves the per-user Pinterest client and mode. Implemented
// by pinterest.Resolver.
type ClientProvider interface {
	ClientFor(user model.User) pinterest.Client
	ModeInfo(user model.User) pinterest.ModeInfo
}
