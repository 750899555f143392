package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
)

// Storage keeps uploaded files. Keys look like "<category>/<file name>".
type Storage interface {
	// Save stores the content under key and returns the URL clients should use
	Save(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	Delete(ctx context.Context, key string) error

	Exists(ctx context.Context, key string) (bool, error)

	// Provider names the backend ("local", "cloudflare_r2", "cloudinary")
	Provider() string
}

type Config struct {
	Type       string // local, cloudflare_r2, cloudinary
	BasePath   string // local root directory
	BaseURL    string // public URL prefix
	Bucket     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	PublicRead bool
	CloudName  string
}

func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	case "cloudinary":
		return NewCloudinaryStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// Key builds a storage key and rejects traversal out of the category directory.
func Key(category, fileName string) (string, error) {
	if category == "" || fileName == "" {
		return "", fmt.Errorf("category and file name are required")
	}
	if strings.ContainsAny(category, `/\`) || strings.ContainsAny(fileName, `/\`) || fileName == ".." || category == ".." {
		return "", fmt.Errorf("invalid storage key %q/%q", category, fileName)
	}
	return path.Join(category, fileName), nil
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
