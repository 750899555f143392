package models

type Upload struct {
	BaseModel
	UserID          string `gorm:"type:uuid;not null;index" json:"userId"`
	Category        string `gorm:"type:varchar(30);not null" json:"category"` // "restaurants", "menu", "posts", "avatars"
	OriginalName    string `json:"originalName"`
	Path            string `gorm:"not null" json:"path"`
	URL             string `gorm:"not null" json:"url"`
	MimeType        string `json:"mimeType"`
	Size            int64  `json:"size"`
	Width           int    `json:"width,omitempty"`
	Height          int    `json:"height,omitempty"`
	StorageProvider string `gorm:"type:varchar(20);default:'local'" json:"storageProvider"`
}
