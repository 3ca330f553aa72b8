//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"pinspire/internal/model"
)

func TestPostCRUD(t *testing.T) {
	server, accessToken := newTestServer(t)

	createPayload, err := json.Marshal(map[string]any{
		"caption":   "Autumn moodboard",
		"image_url": "https://example.com/autumn.jpg",
		"boards":    []string{"b1"},
	})
	require.NoError(t, err)

	createResp := doAuthJSONRequest(t, http.MethodPost, server.URL+"/api/posts", createPayload, accessToken)
	require.Equal(t, http.StatusCreated, createResp.StatusCode)
	created := decodeData[model.PostData](t, createResp)
	require.NotEmpty(t, created.Post.ID)
	require.Equal(t, model.PostStatusDraft, created.Post.Status)

	listResp := doAuthRequest(t, http.MethodGet, server.URL+"/api/posts", accessToken)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	list := decodeData[model.PostListData](t, listResp)
	require.Len(t, list.Posts, 1)

	updatePayload, err := json.Marshal(map[string]any{"caption": "Autumn moodboard v2"})
	require.NoError(t, err)

	updateResp := doAuthJSONRequest(t, http.MethodPut, server.URL+"/api/posts/"+created.Post.ID, updatePayload, accessToken)
	require.Equal(t, http.StatusOK, updateResp.StatusCode)
	updated := decodeData[model.PostData](t, updateResp)
	require.Equal(t, "Autumn moodboard v2", updated.Post.Caption)

	deleteResp := doAuthRequest(t, http.MethodDelete, server.URL+"/api/posts/"+created.Post.ID, accessToken)
	require.Equal(t, http.StatusOK, deleteResp.StatusCode)

	getResp := doAuthRequest(t, http.MethodGet, server.URL+"/api/posts/"+created.Post.ID, accessToken)
	require.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestScheduledTimeValidation(t *testing.T) {
	server, accessToken := newTestServer(t)

	payload, err := json.Marshal(map[string]any{
		"caption":        "Scheduled pin",
		"scheduled_time": "not-a-timestamp",
	})
	require.NoError(t, err)

	resp := doAuthJSONRequest(t, http.MethodPost, server.URL+"/api/posts", payload, accessToken)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAIEndpointsMockMode(t *testing.T) {
	server, accessToken := newTestServer(t)

	captionPayload, err := json.Marshal(map[string]any{"topic": "home office decor"})
	require.NoError(t, err)

	captionResp := doAuthJSONRequest(t, http.MethodPost, server.URL+"/api/ai/generate-caption", captionPayload, accessToken)
	require.Equal(t, http.StatusOK, captionResp.StatusCode)
	caption := decodeData[model.CaptionData](t, captionResp)
	require.NotEmpty(t, caption.Caption)

	hashtagResp := doAuthJSONRequest(t, http.MethodPost, server.URL+"/api/ai/suggest-hashtags", captionPayload, accessToken)
	require.Equal(t, http.StatusOK, hashtagResp.StatusCode)
	hashtags := decodeData[model.HashtagsData](t, hashtagResp)
	require.NotEmpty(t, hashtags.Hashtags)

	imagePayload, err := json.Marshal(map[string]any{"prompt": "cozy reading nook", "size": "bogus"})
	require.NoError(t, err)

	imageResp := doAuthJSONRequest(t, http.MethodPost, server.URL+"/api/ai/generate-image", imagePayload, accessToken)
	require.Equal(t, http.StatusBadRequest, imageResp.StatusCode)
}
