package pinterest

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// MockClient simulates the Pinterest API for development and tests. Boards
// are a fixed deterministic sample set; tokens and pin ids are synthesized.
// None of its methods ever return an error.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (c *MockClient) IsMock() bool { return true }

func (c *MockClient) AuthorizationURL(state string) string {
	// Points at the local mock-consent route instead of the real provider.
	return fmt.Sprintf("/pinterest/mock-auth?state=%s&mock=true", state)
}

func (c *MockClient) ExchangeCode(_ context.Context, _ string) (TokenBundle, error) {
	return TokenBundle{
		AccessToken:  "mock_access_token_" + randomHex(8),
		RefreshToken: "mock_refresh_token_" + randomHex(8),
		TokenType:    "bearer",
		ExpiresIn:    3600,
		Scope:        oauthScope,
	}, nil
}

func (c *MockClient) RefreshToken(_ context.Context, refreshToken string) (TokenBundle, error) {
	return TokenBundle{
		AccessToken:  "mock_access_token_" + randomHex(8),
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    3600,
	}, nil
}

var mockBoardNames = []string{
	"My Inspiration Board",
	"Design Ideas",
	"Marketing Tips",
	"Travel Dreams",
	"Recipe Collection",
}

func (c *MockClient) ListBoards(_ context.Context, _ string) ([]Board, error) {
	boards := make([]Board, 0, len(mockBoardNames))
	for i, name := range mockBoardNames {
		boards = append(boards, Board{
			ID:          fmt.Sprintf("mock_board_%d", i+1),
			Name:        name,
			Description: fmt.Sprintf("A sample %s board", name),
			Privacy:     "PUBLIC",
			PinCount:    10 + (i+1)*5,
		})
	}
	return boards, nil
}

func (c *MockClient) CreatePin(_ context.Context, _ string, req PinRequest) (Pin, error) {
	link := req.Link
	if link == "" {
		link = req.ImageURL
	}
	return Pin{
		ID:          "mock_pin_" + randomHex(6),
		BoardID:     req.BoardID,
		Title:       req.Title,
		Description: req.Description,
		Link:        link,
		ImageURL:    req.ImageURL,
	}, nil
}

func (c *MockClient) AccountInfo(_ context.Context, _ string) (AccountInfo, error) {
	return AccountInfo{
		Username:     "mock_pinterest_user",
		AccountType:  "BUSINESS",
		ProfileImage: "https://placehold.co/150",
		WebsiteURL:   "https://example.com",
	}, nil
}

func randomHex(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
