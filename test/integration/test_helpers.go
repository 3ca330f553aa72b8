//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pinspire/internal/ai"
	"pinspire/internal/config"
	"pinspire/internal/handler"
	"pinspire/internal/middleware"
	"pinspire/internal/model"
	"pinspire/internal/pinterest"
	"pinspire/internal/router"
	"pinspire/internal/service"
)

// memStore backs the full HTTP stack without PostgreSQL. It implements both
// service.UserStore and service.PostStore.
type memStore struct {
	mu    sync.Mutex
	users map[string]model.User
	posts map[string]model.Post
}

func newMemStore() *memStore {
	return &memStore{
		users: map[string]model.User{},
		posts: map[string]model.Post{},
	}
}

func (m *memStore) FindByID(_ context.Context, id string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (m *memStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (m *memStore) ExistsByUsernameOrEmail(_ context.Context, username string, email string, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == excludeID {
			continue
		}
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) Create(_ context.Context, u model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

func (m *memStore) UpdateProfile(_ context.Context, id string, username string, email string) error {
	return m.mutateUser(id, func(u *model.User) {
		u.Username = username
		u.Email = email
	})
}

func (m *memStore) UpdatePassword(_ context.Context, id string, passwordHash string) error {
	return m.mutateUser(id, func(u *model.User) { u.PasswordHash = passwordHash })
}

func (m *memStore) SetOAuthState(_ context.Context, id string, state string) error {
	return m.mutateUser(id, func(u *model.User) { u.Pinterest.OAuthState = state })
}

func (m *memStore) SaveLinkage(_ context.Context, id string, accessToken string, refreshToken string, expiry time.Time, username string) error {
	return m.mutateUser(id, func(u *model.User) {
		u.Pinterest.Connected = true
		u.Pinterest.AccessToken = accessToken
		u.Pinterest.RefreshToken = refreshToken
		u.Pinterest.TokenExpiry = &expiry
		u.Pinterest.Username = username
		u.Pinterest.OAuthState = ""
	})
}

func (m *memStore) UpdateTokens(_ context.Context, id string, accessToken string, refreshToken string, expiry time.Time) error {
	return m.mutateUser(id, func(u *model.User) {
		u.Pinterest.AccessToken = accessToken
		u.Pinterest.RefreshToken = refreshToken
		u.Pinterest.TokenExpiry = &expiry
	})
}

func (m *memStore) ClearLinkage(_ context.Context, id string) error {
	return m.mutateUser(id, func(u *model.User) {
		u.Pinterest.Connected = false
		u.Pinterest.AccessToken = ""
		u.Pinterest.RefreshToken = ""
		u.Pinterest.TokenExpiry = nil
		u.Pinterest.Username = ""
		u.Pinterest.OAuthState = ""
	})
}

func (m *memStore) SaveAppCredentials(_ context.Context, id string, appID string, appSecret string, redirectURI string) error {
	return m.mutateUser(id, func(u *model.User) {
		u.Pinterest.AppID = appID
		u.Pinterest.AppSecret = appSecret
		u.Pinterest.RedirectURI = redirectURI
	})
}

func (m *memStore) ClearAppCredentials(_ context.Context, id string) error {
	return m.mutateUser(id, func(u *model.User) {
		u.Pinterest.AppID = ""
		u.Pinterest.AppSecret = ""
		u.Pinterest.RedirectURI = ""
	})
}

func (m *memStore) mutateUser(id string, fn func(*model.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	fn(&u)
	m.users[id] = u
	return nil
}

func (m *memStore) ListByUser(_ context.Context, userID string) ([]model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Post
	for _, p := range m.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) FindByID2(_ context.Context, id string, userID string) (model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok || p.UserID != userID {
		return model.Post{}, model.ErrPostNotFound
	}
	return p, nil
}

func (m *memStore) CreatePost(_ context.Context, p model.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts[p.ID] = p
	return nil
}

func (m *memStore) Update(_ context.Context, p model.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.posts[p.ID]; !ok || existing.UserID != p.UserID {
		return model.ErrPostNotFound
	}
	m.posts[p.ID] = p
	return nil
}

func (m *memStore) Delete(_ context.Context, id string, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.posts[id]; !ok || p.UserID != userID {
		return model.ErrPostNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *memStore) MarkPublished(_ context.Context, id string, userID string, pinIDs []string, boardIDs []string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok || p.UserID != userID {
		return model.ErrPostNotFound
	}
	p.Status = model.PostStatusPublished
	p.PinterestPinIDs = pinIDs
	p.PublishedBoards = boardIDs
	p.PublishedAt = &publishedAt
	m.posts[id] = p
	return nil
}

// postStoreAdapter maps memStore onto service.PostStore, whose FindByID and
// Create signatures collide with the user-side ones.
type postStoreAdapter struct{ m *memStore }

func (a postStoreAdapter) ListByUser(ctx context.Context, userID string) ([]model.Post, error) {
	return a.m.ListByUser(ctx, userID)
}

func (a postStoreAdapter) FindByID(ctx context.Context, id string, userID string) (model.Post, error) {
	return a.m.FindByID2(ctx, id, userID)
}

func (a postStoreAdapter) Create(ctx context.Context, p model.Post) error {
	return a.m.CreatePost(ctx, p)
}

func (a postStoreAdapter) Update(ctx context.Context, p model.Post) error {
	return a.m.Update(ctx, p)
}

func (a postStoreAdapter) Delete(ctx context.Context, id string, userID string) error {
	return a.m.Delete(ctx, id, userID)
}

func (a postStoreAdapter) MarkPublished(ctx context.Context, id string, userID string, pinIDs []string, boardIDs []string, publishedAt time.Time) error {
	return a.m.MarkPublished(ctx, id, userID, pinIDs, boardIDs, publishedAt)
}

// newTestServer stands up the full router over in-memory stores with mock
// Pinterest and AI clients, signs up a user and returns the bearer token.
func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	store := newMemStore()
	posts := postStoreAdapter{m: store}

	authService, err := service.NewAuthService("test-secret", 15*time.Minute, store)
	require.NoError(t, err)
	authMiddleware := middleware.NewAuthMiddleware(authService)
	authHandler := handler.NewAuthHandler(authService)

	aiService := service.NewAIService(ai.NewMockGenerator())
	aiHandler := handler.NewAIHandler(aiService)

	postService := service.NewPostService(posts)
	postHandler := handler.NewPostHandler(postService)

	resolver := pinterest.NewResolver(pinterest.Credentials{})
	pinterestService := service.NewPinterestService(store, posts, resolver)
	pinterestHandler := handler.NewPinterestHandler(pinterestService)

	cfg := &config.Config{
		ServerPort:       "8080",
		RequestTimeout:   30 * time.Second,
		JWTSecret:        "test-secret",
		JWTAccessTTL:     15 * time.Minute,
		CORSOrigins:      []string{"*"},
		RateLimitRPM:     1000,
		AuthRateLimitRPM: 1000,
	}

	server := httptest.NewServer(router.New(cfg, authMiddleware, authHandler, aiHandler, postHandler, pinterestHandler))
	t.Cleanup(server.Close)

	signupPayload, err := json.Marshal(map[string]string{
		"username": "casey",
		"email":    "casey@example.com",
		"password": "hunter22",
	})
	require.NoError(t, err)

	resp, err := http.Post(server.URL+"/api/auth/signup", "application/json", bytes.NewReader(signupPayload))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var parsed struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	require.True(t, parsed.Success)
	require.NotEmpty(t, parsed.Data.AccessToken)

	return server, parsed.Data.AccessToken
}

func doAuthJSONRequest(t *testing.T, method string, url string, body []byte, accessToken string) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader([]byte{})
	} else {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func doAuthRequest(t *testing.T, method string, url string, accessToken string) *http.Response {
	t.Helper()
	return doAuthJSONRequest(t, method, url, nil, accessToken)
}

func decodeData[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var parsed struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	require.True(t, parsed.Success)

	var out T
	require.NoError(t, json.Unmarshal(parsed.Data, &out))
	return out
}
