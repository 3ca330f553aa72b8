package pinterest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinspire/pkg/apierror"
)

func newTestClient(serverURL string) *RealClient {
	c := NewClient(Credentials{
		AppID:       "app-id",
		AppSecret:   "app-secret",
		RedirectURI: "https://example.com/cb",
	})
	c.apiBaseURL = serverURL
	c.authURL = serverURL + "/oauth/"
	c.tokenURL = serverURL + "/oauth/token"
	return c
}

func TestRealClientAuthorizationURL(t *testing.T) {
	c := newTestClient("https://example.test")

	url := c.AuthorizationURL("nonce-1")
	assert.Contains(t, url, "client_id=app-id")
	assert.Contains(t, url, "state=nonce-1")
	assert.Contains(t, url, "response_type=code")
	assert.Contains(t, url, "scope=")
}

func TestRealClientExchangeCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/oauth/token", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "app-id", user)
		assert.Equal(t, "app-secret", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		assert.Equal(t, "https://example.com/cb", r.PostForm.Get("redirect_uri"))

		_ = json.NewEncoder(w).Encode(TokenBundle{
			AccessToken:  "at-1",
			RefreshToken: "rt-1",
			TokenType:    "bearer",
			ExpiresIn:    3600,
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	bundle, err := c.ExchangeCode(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "at-1", bundle.AccessToken)
	assert.Equal(t, "rt-1", bundle.RefreshToken)
	assert.Equal(t, 3600, bundle.ExpiresIn)
}

func TestRealClientRefreshTokenGrant(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "rt-old", r.PostForm.Get("refresh_token"))

		_ = json.NewEncoder(w).Encode(TokenBundle{AccessToken: "at-2", ExpiresIn: 3600})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	bundle, err := c.RefreshToken(context.Background(), "rt-old")
	require.NoError(t, err)
	assert.Equal(t, "at-2", bundle.AccessToken)
}

func TestRealClientTokenFailureCarriesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid client"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.ExchangeCode(context.Background(), "bad-code")
	require.Error(t, err)

	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "UPSTREAM_ERROR", apiErr.Code)
	assert.Contains(t, apiErr.Details, "invalid client")
}

func TestRealClientListBoardsUnwrapsItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/boards", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []Board{
				{ID: "b1", Name: "First", PinCount: 3},
				{ID: "b2", Name: "Second", PinCount: 7},
			},
			"bookmark": "next-page",
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	boards, err := c.ListBoards(context.Background(), "token-1")
	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, "b1", boards[0].ID)
	assert.Equal(t, 7, boards[1].PinCount)
}

func TestRealClientCreatePinPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/pins", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var payload createPinPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "b9", payload.BoardID)
		assert.Equal(t, "image_url", payload.MediaSource.SourceType)
		assert.Equal(t, "https://example.com/p.jpg", payload.MediaSource.URL)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(createPinResponse{
			ID:      "pin-77",
			BoardID: payload.BoardID,
			Title:   payload.Title,
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	pin, err := c.CreatePin(context.Background(), "token-1", PinRequest{
		BoardID:     "b9",
		Title:       "Hello",
		Description: "World",
		ImageURL:    "https://example.com/p.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "pin-77", pin.ID)
	assert.Equal(t, "https://example.com/p.jpg", pin.ImageURL)
}

func TestRealClientAccountInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user_account", r.URL.Path)
		_ = json.NewEncoder(w).Encode(AccountInfo{Username: "crafting_carla"})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	info, err := c.AccountInfo(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Equal(t, "crafting_carla", info.Username)
}
