package model

type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type CaptionData struct {
	Caption string `json:"caption"`
}

type HashtagsData struct {
	Hashtags []string `json:"hashtags"`
}

type GeneratedImageData struct {
	ImageURL string `json:"image_url"`
	Prompt   string `json:"prompt"`
	Style    string `json:"style"`
	Size     string `json:"size"`
	Quality  string `json:"quality"`
}

type PostData struct {
	Post Post `json:"post"`
}

type PostListData struct {
	Posts []Post `json:"posts"`
}

type ConnectData struct {
	AuthorizationURL string `json:"authorization_url"`
	State            string `json:"state"`
}

type PublishData struct {
	Post   Post     `json:"post"`
	PinIDs []string `json:"pin_ids"`
}

// CredentialsData reports the saved per-user app credentials with the
// secret masked down to its last 4 characters.
type CredentialsData struct {
	AppID           string `json:"app_id"`
	AppSecretMasked string `json:"app_secret_masked"`
	RedirectURI     string `json:"redirect_uri"`
	Configured      bool   `json:"configured"`
}
