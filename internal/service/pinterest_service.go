package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"pinspire/internal/model"
	"pinspire/internal/pinterest"
	"pinspire/pkg/apierror"
)

// tokenRefreshMargin is the safety window before expiry inside which a
// stored access token is refreshed ahead of any Pinterest call.
const tokenRefreshMargin = 5 * time.Minute

const fallbackPinterestUsername = "pinterest_user"

// PinterestService owns the OAuth handshake, the token refresh guard and
// post publishing. The mock/real decision is made once per operation by the
// client provider; no method branches on mode beyond the state check the
// mock consent flow cannot satisfy.
type PinterestService struct {
	users   UserStore
	posts   PostStore
	clients ClientProvider
	now     func() time.Time
}

func NewPinterestService(users UserStore, posts PostStore, clients ClientProvider) *PinterestService {
	return &PinterestService{
		users:   users,
		posts:   posts,
		clients: clients,
		now:     time.Now,
	}
}

func (s *PinterestService) Mode(ctx context.Context, userID string) (pinterest.ModeInfo, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return pinterest.ModeInfo{}, err
	}
	return s.clients.ModeInfo(user), nil
}

// Connect starts the OAuth flow: a fresh anti-forgery nonce is persisted on
// the user (replacing any prior one) and the authorization URL is returned.
func (s *PinterestService) Connect(ctx context.Context, userID string) (model.ConnectData, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.ConnectData{}, err
	}

	state := strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := s.users.SetOAuthState(ctx, user.ID, state); err != nil {
		return model.ConnectData{}, err
	}

	client := s.clients.ClientFor(user)
	return model.ConnectData{
		AuthorizationURL: client.AuthorizationURL(state),
		State:            state,
	}, nil
}

// Callback completes the OAuth flow. In real mode the presented state must
// equal the stored nonce; mock mode skips the check since no third party
// redirects back with a verifiable value. Account-info lookup failure is the
// single non-fatal error in the flow and falls back to a placeholder name.
func (s *PinterestService) Callback(ctx context.Context, userID string, code string, state string) (model.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.Profile{}, err
	}

	client := s.clients.ClientFor(user)
	if !client.IsMock() {
		if state == "" || state != user.Pinterest.OAuthState {
			return model.Profile{}, apierror.InvalidState("oauth state does not match")
		}
	}

	bundle, err := client.ExchangeCode(ctx, code)
	if err != nil {
		return model.Profile{}, err
	}

	username := fallbackPinterestUsername
	if info, infoErr := client.AccountInfo(ctx, bundle.AccessToken); infoErr != nil {
		slog.Warn("pinterest account lookup failed, using placeholder username",
			"user_id", userID, "error", infoErr.Error())
	} else if info.Username != "" {
		username = info.Username
	}

	expiry := s.now().UTC().Add(time.Duration(bundle.ExpiresIn) * time.Second)
	if err := s.users.SaveLinkage(ctx, user.ID, bundle.AccessToken, bundle.RefreshToken, expiry, username); err != nil {
		return model.Profile{}, err
	}

	user.Pinterest.Connected = true
	user.Pinterest.Username = username
	return user.Profile(), nil
}

// Disconnect clears all linkage fields. Idempotent.
func (s *PinterestService) Disconnect(ctx context.Context, userID string) error {
	return s.users.ClearLinkage(ctx, userID)
}

func (s *PinterestService) Credentials(ctx context.Context, userID string) (model.CredentialsData, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.CredentialsData{}, err
	}

	return model.CredentialsData{
		AppID:           user.Pinterest.AppID,
		AppSecretMasked: maskSecret(user.Pinterest.AppSecret),
		RedirectURI:     user.Pinterest.RedirectURI,
		Configured:      user.Pinterest.HasOwnCredentials(),
	}, nil
}

func (s *PinterestService) SaveCredentials(ctx context.Context, userID string, req model.PinterestCredentialsRequest) (model.CredentialsData, error) {
	appID := strings.TrimSpace(req.AppID)
	appSecret := strings.TrimSpace(req.AppSecret)
	if appID == "" || appSecret == "" {
		return model.CredentialsData{}, apierror.Validation("app_id and app_secret are required", "")
	}

	if err := s.users.SaveAppCredentials(ctx, userID, appID, appSecret, strings.TrimSpace(req.RedirectURI)); err != nil {
		return model.CredentialsData{}, err
	}

	return model.CredentialsData{
		AppID:           appID,
		AppSecretMasked: maskSecret(appSecret),
		RedirectURI:     strings.TrimSpace(req.RedirectURI),
		Configured:      true,
	}, nil
}

func (s *PinterestService) DeleteCredentials(ctx context.Context, userID string) error {
	return s.users.ClearAppCredentials(ctx, userID)
}

// ListBoards returns the linked account's boards, refresh-guarded.
func (s *PinterestService) ListBoards(ctx context.Context, userID string) ([]pinterest.Board, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.Pinterest.Connected {
		return nil, apierror.NotConnected("pinterest is not connected")
	}

	client := s.clients.ClientFor(user)
	token, err := s.freshAccessToken(ctx, &user, client)
	if err != nil {
		return nil, err
	}

	return client.ListBoards(ctx, token)
}

// Publish maps a draft or scheduled post onto one pin-creation call per
// board id, in order and without parallelism. If creation fails midway the
// earlier pins remain on Pinterest but the post stays unpublished and their
// ids are discarded.
func (s *PinterestService) Publish(ctx context.Context, userID string, postID string, boardIDs []string) (model.PublishData, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.PublishData{}, err
	}

	post, err := s.posts.FindByID(ctx, postID, userID)
	if err != nil {
		return model.PublishData{}, err
	}

	if !post.Publishable() {
		return model.PublishData{}, apierror.Validation("post is already published", "")
	}
	if post.ImageURL == "" {
		return model.PublishData{}, apierror.Validation("post has no image to publish", "")
	}
	if !user.Pinterest.Connected {
		return model.PublishData{}, apierror.NotConnected("pinterest is not connected")
	}
	if len(boardIDs) == 0 {
		return model.PublishData{}, apierror.Validation("board_ids is required", "")
	}

	client := s.clients.ClientFor(user)
	title := truncateRunes(post.Caption, pinterest.MaxPinTitleLength)

	pinIDs := make([]string, 0, len(boardIDs))
	for _, boardID := range boardIDs {
		token, err := s.freshAccessToken(ctx, &user, client)
		if err != nil {
			return model.PublishData{}, err
		}

		pin, err := client.CreatePin(ctx, token, pinterest.PinRequest{
			BoardID:     boardID,
			Title:       title,
			Description: post.Caption,
			ImageURL:    post.ImageURL,
		})
		if err != nil {
			return model.PublishData{}, err
		}
		pinIDs = append(pinIDs, pin.ID)
	}

	publishedAt := s.now().UTC()
	if err := s.posts.MarkPublished(ctx, post.ID, userID, pinIDs, boardIDs, publishedAt); err != nil {
		return model.PublishData{}, err
	}

	post.Status = model.PostStatusPublished
	post.PinterestPinIDs = pinIDs
	post.PublishedBoards = boardIDs
	post.PublishedAt = &publishedAt

	return model.PublishData{Post: post, PinIDs: pinIDs}, nil
}

// freshAccessToken refreshes the stored token when it expires within the
// safety margin and a refresh token exists; otherwise the stored token is
// used as-is and a stale one fails downstream. Concurrent requests may both
// refresh; the outcome is idempotent and last write wins.
func (s *PinterestService) freshAccessToken(ctx context.Context, user *model.User, client pinterest.Client) (string, error) {
	link := user.Pinterest
	if link.TokenExpiry == nil || link.RefreshToken == "" {
		return link.AccessToken, nil
	}
	if s.now().Add(tokenRefreshMargin).Before(*link.TokenExpiry) {
		return link.AccessToken, nil
	}

	bundle, err := client.RefreshToken(ctx, link.RefreshToken)
	if err != nil {
		return "", err
	}

	refreshToken := bundle.RefreshToken
	if refreshToken == "" {
		refreshToken = link.RefreshToken
	}

	expiry := s.now().UTC().Add(time.Duration(bundle.ExpiresIn) * time.Second)
	if err := s.users.UpdateTokens(ctx, user.ID, bundle.AccessToken, refreshToken, expiry); err != nil {
		return "", err
	}

	user.Pinterest.AccessToken = bundle.AccessToken
	user.Pinterest.RefreshToken = refreshToken
	user.Pinterest.TokenExpiry = &expiry

	return bundle.AccessToken, nil
}

func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
