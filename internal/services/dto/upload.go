package dto

import "time"

type UploadQuery struct {
	Category string `form:"category" validate:"required,upload-category"`
}

type UploadResponse struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Category  string    `json:"category"`
	MimeType  string    `json:"mimeType"`
	Size      int64     `json:"size"`
	Width     int       `json:"width,omitempty"`
	Height    int       `json:"height,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
