package model

import "time"

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Pinterest    Pinterest `json:"pinterest"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Pinterest is the per-user Pinterest linkage embedded in User.
// Connected implies a non-empty AccessToken.
type Pinterest struct {
	Connected    bool       `json:"connected"`
	AccessToken  string     `json:"-"`
	RefreshToken string     `json:"-"`
	TokenExpiry  *time.Time `json:"-"`
	OAuthState   string     `json:"-"`
	Username     string     `json:"username,omitempty"`

	// Optional per-user app credentials. When both AppID and AppSecret are
	// set they take precedence over the process-wide configuration.
	AppID       string `json:"-"`
	AppSecret   string `json:"-"`
	RedirectURI string `json:"-"`
}

// HasOwnCredentials reports whether the user saved a personal app id/secret pair.
func (p Pinterest) HasOwnCredentials() bool {
	return p.AppID != "" && p.AppSecret != ""
}

type AuthClaims struct {
	UserID   string
	Username string
	TokenID  string
}

// Profile is the public view of a user returned by auth endpoints.
type Profile struct {
	ID                 string `json:"id"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	PinterestConnected bool   `json:"pinterest_connected"`
	PinterestUsername  string `json:"pinterest_username,omitempty"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:                 u.ID,
		Username:           u.Username,
		Email:              u.Email,
		PinterestConnected: u.Pinterest.Connected,
		PinterestUsername:  u.Pinterest.Username,
	}
}

type AuthData struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   int64   `json:"expires_in"`
	User        Profile `json:"user"`
}
