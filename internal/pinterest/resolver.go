package pinterest

import (
	"strings"

	"pinspire/internal/model"
)

// Credentials identify a Pinterest app.
type Credentials struct {
	AppID       string
	AppSecret   string
	RedirectURI string
}

// Valid reports whether the pair can drive real API calls: both values
// present and neither still carrying the placeholder prefix.
func (c Credentials) Valid() bool {
	if strings.TrimSpace(c.AppID) == "" || strings.TrimSpace(c.AppSecret) == "" {
		return false
	}
	if strings.HasPrefix(c.AppID, PlaceholderPrefix) || strings.HasPrefix(c.AppSecret, PlaceholderPrefix) {
		return false
	}
	return true
}

// Resolver picks mock or real mode per user. It holds the process-wide app
// credentials; user-saved credentials take precedence when present.
type Resolver struct {
	defaults Credentials
}

func NewResolver(defaults Credentials) *Resolver {
	return &Resolver{defaults: defaults}
}

// Effective returns the credentials that apply to the given user.
func (r *Resolver) Effective(user model.User) Credentials {
	if user.Pinterest.HasOwnCredentials() {
		creds := Credentials{
			AppID:       user.Pinterest.AppID,
			AppSecret:   user.Pinterest.AppSecret,
			RedirectURI: user.Pinterest.RedirectURI,
		}
		if creds.RedirectURI == "" {
			creds.RedirectURI = r.defaults.RedirectURI
		}
		return creds
	}
	return r.defaults
}

// ClientFor constructs the client for the user's resolved mode. The mode is
// decided once here; callers never branch on mock vs real again.
func (r *Resolver) ClientFor(user model.User) Client {
	creds := r.Effective(user)
	if !creds.Valid() {
		return NewMockClient()
	}
	return NewClient(creds)
}

// ModeInfo describes the resolved mode for the user, for the mode endpoint.
func (r *Resolver) ModeInfo(user model.User) ModeInfo {
	creds := r.Effective(user)
	info := ModeInfo{
		IsMock:              !creds.Valid(),
		AppIDConfigured:     creds.AppID != "" && !strings.HasPrefix(creds.AppID, PlaceholderPrefix),
		AppSecretConfigured: creds.AppSecret != "" && !strings.HasPrefix(creds.AppSecret, PlaceholderPrefix),
	}
	if info.IsMock {
		info.Mode = "MOCK"
		info.Message = "Using mock Pinterest API for testing. Update credentials in settings to use real Pinterest."
	} else {
		info.Mode = "REAL"
		info.Message = "Connected to real Pinterest API"
	}
	return info
}
