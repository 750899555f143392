package config

// UploadCategories lists the directories files may be stored under
// and whether the category accepts images only.
var UploadCategories = map[string]UploadCategory{
	"restaurants": {ImagesOnly: true, MaxWidth: 1600},
	"menu":        {ImagesOnly: true, MaxWidth: 1024},
	"posts":       {ImagesOnly: true, MaxWidth: 1280},
	"avatars":     {ImagesOnly: true, MaxWidth: 512},
}

type UploadCategory struct {
	ImagesOnly bool
	MaxWidth   int
}
