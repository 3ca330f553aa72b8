//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"pinspire/internal/model"
)

func connectMockAccount(t *testing.T, serverURL string, accessToken string) {
	t.Helper()

	connectResp := doAuthRequest(t, http.MethodGet, serverURL+"/api/pinterest/connect", accessToken)
	require.Equal(t, http.StatusOK, connectResp.StatusCode)
	connect := decodeData[model.ConnectData](t, connectResp)
	require.NotEmpty(t, connect.State)
	require.Contains(t, connect.AuthorizationURL, connect.State)

	callbackPayload, err := json.Marshal(map[string]string{
		"code":  "mock-code",
		"state": connect.State,
	})
	require.NoError(t, err)

	callbackResp := doAuthJSONRequest(t, http.MethodPost, serverURL+"/api/pinterest/callback", callbackPayload, accessToken)
	require.Equal(t, http.StatusOK, callbackResp.StatusCode)
	profile := decodeData[model.Profile](t, callbackResp)
	require.True(t, profile.PinterestConnected)
}

func TestPinterestMockConnectFlow(t *testing.T) {
	server, accessToken := newTestServer(t)

	modeResp := doAuthRequest(t, http.MethodGet, server.URL+"/api/pinterest/mode", accessToken)
	require.Equal(t, http.StatusOK, modeResp.StatusCode)
	mode := decodeData[map[string]any](t, modeResp)
	require.Equal(t, "MOCK", mode["mode"])

	connectMockAccount(t, server.URL, accessToken)

	boardsResp := doAuthRequest(t, http.MethodGet, server.URL+"/api/pinterest/boards", accessToken)
	require.Equal(t, http.StatusOK, boardsResp.StatusCode)
	boards := decodeData[map[string]json.RawMessage](t, boardsResp)

	var boardList []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(boards["boards"], &boardList))
	require.Len(t, boardList, 5)
	require.Equal(t, "mock_board_1", boardList[0].ID)

	disconnectResp := doAuthJSONRequest(t, http.MethodPost, server.URL+"/api/pinterest/disconnect", []byte("{}"), accessToken)
	require.Equal(t, http.StatusOK, disconnectResp.StatusCode)

	// idempotent
	disconnectAgain := doAuthJSONRequest(t, http.MethodPost, server.URL+"/api/pinterest/disconnect", []byte("{}"), accessToken)
	require.Equal(t, http.StatusOK, disconnectAgain.StatusCode)

	boardsAfter := doAuthRequest(t, http.MethodGet, server.URL+"/api/pinterest/boards", accessToken)
	require.Equal(t, http.StatusBadRequest, boardsAfter.StatusCode)
}

func TestPublishThroughMockClient(t *testing.T) {
	server, accessToken := newTestServer(t)
	connectMockAccount(t, server.URL, accessToken)

	createPayload, err := json.Marshal(map[string]any{
		"caption":   "Minimalist desk setup",
		"image_url": "https://example.com/desk.jpg",
	})
	require.NoError(t, err)

	createResp := doAuthJSONRequest(t, http.MethodPost, server.URL+"/api/posts", createPayload, accessToken)
	require.Equal(t, http.StatusCreated, createResp.StatusCode)
	created := decodeData[model.PostData](t, createResp)

	publishPayload, err := json.Marshal(map[string]any{"board_ids": []string{"b1", "b2"}})
	require.NoError(t, err)

	publishResp := doAuthJSONRequest(t, http.MethodPost, server.URL+"/api/pinterest/post/"+created.Post.ID, publishPayload, accessToken)
	require.Equal(t, http.StatusOK, publishResp.StatusCode)
	published := decodeData[model.PublishData](t, publishResp)
	require.Len(t, published.PinIDs, 2)
	require.Equal(t, model.PostStatusPublished, published.Post.Status)

	// a published post cannot be published again
	again := doAuthJSONRequest(t, http.MethodPost, server.URL+"/api/pinterest/post/"+created.Post.ID, publishPayload, accessToken)
	require.Equal(t, http.StatusBadRequest, again.StatusCode)
}

func TestPublishWithoutImageRejected(t *testing.T) {
	server, accessToken := newTestServer(t)
	connectMockAccount(t, server.URL, accessToken)

	createPayload, err := json.Marshal(map[string]any{"caption": "No image yet"})
	require.NoError(t, err)

	createResp := doAuthJSONRequest(t, http.MethodPost, server.URL+"/api/posts", createPayload, accessToken)
	require.Equal(t, http.StatusCreated, createResp.StatusCode)
	created := decodeData[model.PostData](t, createResp)

	publishPayload, err := json.Marshal(map[string]any{"board_ids": []string{"b1"}})
	require.NoError(t, err)

	publishResp := doAuthJSONRequest(t, http.MethodPost, server.URL+"/api/pinterest/post/"+created.Post.ID, publishPayload, accessToken)
	require.Equal(t, http.StatusBadRequest, publishResp.StatusCode)

	getResp := doAuthRequest(t, http.MethodGet, server.URL+"/api/posts/"+created.Post.ID, accessToken)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	fetched := decodeData[model.PostData](t, getResp)
	require.Equal(t, model.PostStatusDraft, fetched.Post.Status)
}

func TestCredentialsMasking(t *testing.T) {
	server, accessToken := newTestServer(t)

	savePayload, err := json.Marshal(map[string]string{
		"app_id":       "1234567",
		"app_secret":   "supersecretvalue",
		"redirect_uri": "https://example.com/cb",
	})
	require.NoError(t, err)

	saveResp := doAuthJSONRequest(t, http.MethodPut, server.URL+"/api/pinterest/credentials", savePayload, accessToken)
	require.Equal(t, http.StatusOK, saveResp.StatusCode)
	saved := decodeData[model.CredentialsData](t, saveResp)
	require.Equal(t, "****alue", saved.AppSecretMasked)
	require.True(t, saved.Configured)

	deleteResp := doAuthRequest(t, http.MethodDelete, server.URL+"/api/pinterest/credentials", accessToken)
	require.Equal(t, http.StatusOK, deleteResp.StatusCode)

	getResp := doAuthRequest(t, http.MethodGet, server.URL+"/api/pinterest/credentials", accessToken)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	cleared := decodeData[model.CredentialsData](t, getResp)
	require.False(t, cleared.Configured)
}
