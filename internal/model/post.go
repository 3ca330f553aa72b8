package model

import "time"

const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
)

type Post struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	Caption            string     `json:"caption"`
	ImageURL           string     `json:"image_url,omitempty"`
	ImageData          string     `json:"image_data,omitempty"`
	Boards             []string   `json:"boards"`
	ScheduledTime      *time.Time `json:"scheduled_time,omitempty"`
	Status             string     `json:"status"`
	AIGeneratedCaption bool       `json:"ai_generated_caption"`
	AIGeneratedImage   bool       `json:"ai_generated_image"`
	PinterestPinIDs    []string   `json:"pinterest_pin_ids,omitempty"`
	PublishedBoards    []string   `json:"published_boards,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	PublishedAt        *time.Time `json:"published_at,omitempty"`
}

// Publishable reports whether the post may still transition to published.
// Status only moves forward: draft/scheduled -> published.
func (p Post) Publishable() bool {
	return p.Status == PostStatusDraft || p.Status == PostStatusScheduled
}
