package entity

import "time"

type Post struct {
	ID      string `json:"post_id"`
	Origin  Origin `json:"origin"`
	PostURL string `json:"post_url,omitempty"`

	Username  string `json:"username,omitempty"`
	Caption   string `json:"caption"`
	ImagePath string `json:"image_path"`

	Status     Status      `json:"status"` // pending, enriched, completed
	Attributes *Attributes `json:"attributes,omitempty"`

	Timestamp time.Time `json:"timestamp"`
	ScrapedAt time.Time `json:"scraped_at"`
}
