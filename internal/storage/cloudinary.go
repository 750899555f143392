package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorage keeps the category as the Cloudinary folder.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStorage(cfg Config) (*CloudinaryStorage, error) {
	if cfg.CloudName == "" {
		return nil, fmt.Errorf("cloud name is required for cloudinary")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.AccessKey, cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld}, nil
}

func (s *CloudinaryStorage) Provider() string { return "cloudinary" }

func (s *CloudinaryStorage) Save(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	folder, publicID := splitKey(key)
	resp, err := s.cld.Upload.Upload(ctx, reader, uploader.UploadParams{
		Folder:    folder,
		PublicID:  publicID,
		Overwrite: api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

func (s *CloudinaryStorage) Delete(ctx context.Context, key string) error {
	folder, publicID := splitKey(key)
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: folder + "/" + publicID})
	if err != nil {
		return fmt.Errorf("failed to delete from cloudinary: %w", err)
	}
	return nil
}

func (s *CloudinaryStorage) Exists(ctx context.Context, key string) (bool, error) {
	folder, publicID := splitKey(key)
	asset, err := s.cld.Admin.Asset(ctx, admin.AssetParams{PublicID: folder + "/" + publicID})
	if err != nil {
		return false, err
	}
	return asset.Error.Message == "" && asset.PublicID != "", nil
}

// splitKey turns "posts/abc.jpg" into ("posts", "abc")
func splitKey(key string) (string, string) {
	folder, file := path.Split(key)
	return strings.TrimSuffix(folder, "/"), strings.TrimSuffix(file, path.Ext(file))
}
