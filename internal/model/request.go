package model

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type CaptionRequest struct {
	Topic    string   `json:"topic"`
	Tone     string   `json:"tone"`
	Keywords []string `json:"keywords"`
}

type HashtagRequest struct {
	Topic string `json:"topic"`
}

type ImageGenerationRequest struct {
	Prompt  string `json:"prompt"`
	Style   string `json:"style"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
}

type CreatePostRequest struct {
	Caption            string   `json:"caption"`
	ImageURL           string   `json:"image_url"`
	ImageData          string   `json:"image_data"`
	Boards             []string `json:"boards"`
	ScheduledTime      *string  `json:"scheduled_time"`
	AIGeneratedCaption bool     `json:"ai_generated_caption"`
	AIGeneratedImage   bool     `json:"ai_generated_image"`
}

type UpdatePostRequest struct {
	Caption       *string   `json:"caption"`
	ImageURL      *string   `json:"image_url"`
	Boards        *[]string `json:"boards"`
	ScheduledTime *string   `json:"scheduled_time"`
}

type OAuthCallbackRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

type PinterestCredentialsRequest struct {
	AppID       string `json:"app_id"`
	AppSecret   string `json:"app_secret"`
	RedirectURI string `json:"redirect_uri"`
}

type PublishRequest struct {
	BoardIDs []string `json:"board_ids"`
}
