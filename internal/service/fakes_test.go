package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pinspire/internal/model"
	"pinspire/internal/pinterest"
)

// fakeUserStore keeps a single user in memory and records mutations.
type fakeUserStore struct {
	user             model.User
	updateTokenCalls int
	saveLinkageCalls int
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (model.User, error) {
	if f.user.ID != id {
		return model.User{}, model.ErrUserNotFound
	}
	return f.user, nil
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	if f.user.Username != username {
		return model.User{}, model.ErrUserNotFound
	}
	return f.user, nil
}

func (f *fakeUserStore) ExistsByUsernameOrEmail(_ context.Context, username string, email string, excludeID string) (bool, error) {
	if f.user.ID == "" || f.user.ID == excludeID {
		return false, nil
	}
	return f.user.Username == username || f.user.Email == email, nil
}

func (f *fakeUserStore) Create(_ context.Context, u model.User) error {
	f.user = u
	return nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, id string, username string, email string) error {
	f.user.Username = username
	f.user.Email = email
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id string, passwordHash string) error {
	f.user.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserStore) SetOAuthState(_ context.Context, id string, state string) error {
	f.user.Pinterest.OAuthState = state
	return nil
}

func (f *fakeUserStore) SaveLinkage(_ context.Context, id string, accessToken string, refreshToken string, expiry time.Time, username string) error {
	f.saveLinkageCalls++
	f.user.Pinterest.Connected = true
	f.user.Pinterest.AccessToken = accessToken
	f.user.Pinterest.RefreshToken = refreshToken
	f.user.Pinterest.TokenExpiry = &expiry
	f.user.Pinterest.Username = username
	f.user.Pinterest.OAuthState = ""
	return nil
}

func (f *fakeUserStore) UpdateTokens(_ context.Context, id string, accessToken string, refreshToken string, expiry time.Time) error {
	f.updateTokenCalls++
	f.user.Pinterest.AccessToken = accessToken
	f.user.Pinterest.RefreshToken = refreshToken
	f.user.Pinterest.TokenExpiry = &expiry
	return nil
}

func (f *fakeUserStore) ClearLinkage(_ context.Context, id string) error {
	f.user.Pinterest = model.Pinterest{
		AppID:       f.user.Pinterest.AppID,
		AppSecret:   f.user.Pinterest.AppSecret,
		RedirectURI: f.user.Pinterest.RedirectURI,
	}
	return nil
}

func (f *fakeUserStore) SaveAppCredentials(_ context.Context, id string, appID string, appSecret string, redirectURI string) error {
	f.user.Pinterest.AppID = appID
	f.user.Pinterest.AppSecret = appSecret
	f.user.Pinterest.RedirectURI = redirectURI
	return nil
}

func (f *fakeUserStore) ClearAppCredentials(_ context.Context, id string) error {
	f.user.Pinterest.AppID = ""
	f.user.Pinterest.AppSecret = ""
	f.user.Pinterest.RedirectURI = ""
	return nil
}

// fakePostStore keeps posts keyed by id.
type fakePostStore struct {
	posts map[string]model.Post
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: map[string]model.Post{}}
}

func (f *fakePostStore) ListByUser(_ context.Context, userID string) ([]model.Post, error) {
	var out []model.Post
	for _, p := range f.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostStore) FindByID(_ context.Context, id string, userID string) (model.Post, error) {
	p, ok := f.posts[id]
	if !ok || p.UserID != userID {
		return model.Post{}, model.ErrPostNotFound
	}
	return p, nil
}

func (f *fakePostStore) Create(_ context.Context, p model.Post) error {
	f.posts[p.ID] = p
	return nil
}

func (f *fakePostStore) Update(_ context.Context, p model.Post) error {
	if _, ok := f.posts[p.ID]; !ok {
		return model.ErrPostNotFound
	}
	f.posts[p.ID] = p
	return nil
}

func (f *fakePostStore) Delete(_ context.Context, id string, userID string) error {
	p, ok := f.posts[id]
	if !ok || p.UserID != userID {
		return model.ErrPostNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostStore) MarkPublished(_ context.Context, id string, userID string, pinIDs []string, boardIDs []string, publishedAt time.Time) error {
	p, ok := f.posts[id]
	if !ok || p.UserID != userID {
		return model.ErrPostNotFound
	}
	p.Status = model.PostStatusPublished
	p.PinterestPinIDs = pinIDs
	p.PublishedBoards = boardIDs
	p.PublishedAt = &publishedAt
	f.posts[id] = p
	return nil
}

// fakeClient counts calls and lets tests inject failures. When failPinOn is
// set, the Nth CreatePin call fails.
type fakeClient struct {
	mock           bool
	refreshCalls   int
	createPinCalls int
	failPinOn      int
	accountInfoErr error
	exchangeErr    error
}

func (c *fakeClient) IsMock() bool { return c.mock }

func (c *fakeClient) AuthorizationURL(state string) string {
	return "https://auth.example.com/?state=" + state
}

func (c *fakeClient) ExchangeCode(_ context.Context, _ string) (pinterest.TokenBundle, error) {
	if c.exchangeErr != nil {
		return pinterest.TokenBundle{}, c.exchangeErr
	}
	return pinterest.TokenBundle{
		AccessToken:  "exchanged-at",
		RefreshToken: "exchanged-rt",
		ExpiresIn:    3600,
	}, nil
}

func (c *fakeClient) RefreshToken(_ context.Context, _ string) (pinterest.TokenBundle, error) {
	c.refreshCalls++
	return pinterest.TokenBundle{
		AccessToken: fmt.Sprintf("refreshed-at-%d", c.refreshCalls),
		ExpiresIn:   3600,
	}, nil
}

func (c *fakeClient) ListBoards(_ context.Context, _ string) ([]pinterest.Board, error) {
	return []pinterest.Board{{ID: "b1", Name: "Board One"}}, nil
}

func (c *fakeClient) CreatePin(_ context.Context, _ string, req pinterest.PinRequest) (pinterest.Pin, error) {
	c.createPinCalls++
	if c.failPinOn > 0 && c.createPinCalls == c.failPinOn {
		return pinterest.Pin{}, errors.New("board rejected the pin")
	}
	return pinterest.Pin{
		ID:      fmt.Sprintf("pin-%d", c.createPinCalls),
		BoardID: req.BoardID,
		Title:   req.Title,
	}, nil
}

func (c *fakeClient) AccountInfo(_ context.Context, _ string) (pinterest.AccountInfo, error) {
	if c.accountInfoErr != nil {
		return pinterest.AccountInfo{}, c.accountInfoErr
	}
	return pinterest.AccountInfo{Username: "linked_user"}, nil
}

type fakeProvider struct {
	client pinterest.Client
}

func (p *fakeProvider) ClientFor(_ model.User) pinterest.Client { return p.client }

func (p *fakeProvider) ModeInfo(_ model.User) pinterest.ModeInfo {
	return pinterest.ModeInfo{IsMock: p.client.IsMock()}
}
