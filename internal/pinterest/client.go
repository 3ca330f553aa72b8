package pinterest

import (
	"context"
)

const (
	defaultAPIBaseURL = "https://api.pinterest.com/v5"
	defaultAuthURL    = "https://www.pinterest.com/oauth/"
	defaultTokenURL   = "https://api.pinterest.com/v5/oauth/token"

	oauthScope = "boards:read,boards:write,pins:read,pins:write,user_accounts:read"

	// PlaceholderPrefix marks credentials that were never replaced with real
	// ones; they force mock mode.
	PlaceholderPrefix = "MOCK_"

	// MaxPinTitleLength is Pinterest's limit on pin titles. Callers truncate
	// before CreatePin.
	MaxPinTitleLength = 100
)

// TokenBundle is returned by both the initial code exchange and a refresh.
// AccessToken is opaque and treated as a secret.
type TokenBundle struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope,omitempty"`
}

type Board struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Privacy     string `json:"privacy,omitempty"`
	PinCount    int    `json:"pin_count"`
}

type Pin struct {
	ID          string `json:"id"`
	BoardID     string `json:"board_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

type PinRequest struct {
	BoardID     string
	Title       string
	Description string
	ImageURL    string
	Link        string
}

type AccountInfo struct {
	Username     string `json:"username"`
	AccountType  string `json:"account_type,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
	WebsiteURL   string `json:"website_url,omitempty"`
}

type ModeInfo struct {
	IsMock              bool   `json:"is_mock"`
	Mode                string `json:"mode"`
	Message             string `json:"message"`
	AppIDConfigured     bool   `json:"app_id_configured"`
	AppSecretConfigured bool   `json:"app_secret_configured"`
}

// Client is the uniform Pinterest API surface. Two implementations exist:
// a real one backed by the Pinterest v5 REST API and a deterministic mock
// used when no valid app credentials are configured. The mock never errors.
type Client interface {
	AuthorizationURL(state string) string
	ExchangeCode(ctx context.Context, code string) (TokenBundle, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenBundle, error)
	ListBoards(ctx context.Context, accessToken string) ([]Board, error)
	CreatePin(ctx context.Context, accessToken string, req PinRequest) (Pin, error)
	AccountInfo(ctx context.Context, accessToken string) (AccountInfo, error)
	IsMock() bool
}
