package service

import (
	"context"
	"edutrack_backend/internal/config"
	"edutrack_backend/internal/util"
	"edutrack_backend/pkg/logger"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	storage_go "github.com/supabase-community/storage-go"
	"go.uber.org/zap"
)

// StorageProvider stores resource blobs and resolves their public URLs.
type StorageProvider interface {
	Upload(ctx context.Context, path string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, path string) error
	GetURL(path string) string
}

// LocalStorageProvider writes blobs under LocalPath/Bucket and serves them from /uploads.
type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) fullPath(path string) string {
	return filepath.Join(p.Config.LocalPath, p.Config.Bucket, filepath.FromSlash(path))
}

func (p *LocalStorageProvider) Upload(ctx context.Context, path string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := p.fullPath(path)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}
	return path, nil
}

func (p *LocalStorageProvider) Delete(ctx context.Context, path string) error {
	return os.Remove(p.fullPath(path))
}

func (p *LocalStorageProvider) GetURL(path string) string {
	return "/uploads/" + p.Config.Bucket + "/" + path
}

// MinioStorageProvider stores blobs in a MinIO or S3 compatible bucket.
type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, path string, reader io.Reader, size int64, contentType string) (string, error) {
	info, err := p.Client.PutObject(ctx, p.Config.Bucket, path, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "max-age=3600",
	})
	if err != nil {
		return "", err
	}
	return info.Key, nil
}

func (p *MinioStorageProvider) Delete(ctx context.Context, path string) error {
	return p.Client.RemoveObject(ctx, p.Config.Bucket, path, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) GetURL(path string) string {
	scheme := "http"
	if p.Config.MinioUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, p.Config.MinioEndpoint, p.Config.Bucket, path)
}

// SupabaseStorageProvider stores blobs in a Supabase storage bucket.
type SupabaseStorageProvider struct {
	Config *config.StorageConfig
	Client *storage_go.Client
}

func NewSupabaseStorageProvider(cfg *config.StorageConfig) (*SupabaseStorageProvider, error) {
	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		return nil, fmt.Errorf("missing SUPABASE_URL or SUPABASE_KEY")
	}
	client := storage_go.NewClient(strings.TrimRight(cfg.SupabaseURL, "/")+"/storage/v1", cfg.SupabaseKey, nil)
	return &SupabaseStorageProvider{Config: cfg, Client: client}, nil
}

func (p *SupabaseStorageProvider) Upload(ctx context.Context, path string, reader io.Reader, size int64, contentType string) (string, error) {
	cacheControl := "3600"
	upsert := false
	_, err := p.Client.UploadFile(p.Config.Bucket, path, reader, storage_go.FileOptions{
		ContentType:  &contentType,
		CacheControl: &cacheControl,
		Upsert:       &upsert,
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

func (p *SupabaseStorageProvider) Delete(ctx context.Context, path string) error {
	_, err := p.Client.RemoveFile(p.Config.Bucket, []string{path})
	return err
}

func (p *SupabaseStorageProvider) GetURL(path string) string {
	return p.Client.GetPublicUrl(p.Config.Bucket, path).SignedURL
}

// OSSStorageProvider stores blobs in Aliyun OSS.
type OSSStorageProvider struct {
	Config *config.StorageConfig
	Client *oss.Client
}

func NewOSSStorageProvider(cfg *config.StorageConfig) (*OSSStorageProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	return &OSSStorageProvider{Config: cfg, Client: client}, nil
}

func (p *OSSStorageProvider) Upload(ctx context.Context, path string, reader io.Reader, size int64, contentType string) (string, error) {
	bucket, err := p.Client.Bucket(p.Config.Bucket)
	if err != nil {
		return "", err
	}

	if err := bucket.PutObject(path, reader, oss.ContentType(contentType)); err != nil {
		return "", err
	}
	return path, nil
}

func (p *OSSStorageProvider) Delete(ctx context.Context, path string) error {
	bucket, err := p.Client.Bucket(p.Config.Bucket)
	if err != nil {
		return err
	}
	return bucket.DeleteObject(path)
}

func (p *OSSStorageProvider) GetURL(path string) string {
	return fmt.Sprintf("https://%s.%s/%s", p.Config.Bucket, p.Config.OSSEndpoint, path)
}

// StorageService fronts the configured StorageProvider.
type StorageService struct {
	Provider StorageProvider
}

// NewStorageService picks the provider named by storage.type and falls back to local
// disk when the remote provider cannot be built.
func NewStorageService(cfg *config.Config) *StorageService {
	var provider StorageProvider
	var err error

	switch cfg.Storage.Type {
	case util.StorageMinio:
		provider, err = NewMinioStorageProvider(&cfg.Storage)
	case util.StorageSupabase:
		provider, err = NewSupabaseStorageProvider(&cfg.Storage)
	case util.StorageOSS:
		provider, err = NewOSSStorageProvider(&cfg.Storage)
	}
	if err != nil {
		logger.Log.Error("Failed to initialize storage provider, using local storage",
			zap.String("type", cfg.Storage.Type),
			zap.Error(err),
		)
		provider = nil
	}

	if provider == nil {
		provider = &LocalStorageProvider{Config: &cfg.Storage}
	}

	return &StorageService{Provider: provider}
}

func (s *StorageService) Upload(ctx context.Context, path string, reader io.Reader, size int64, contentType string) (string, error) {
	return s.Provider.Upload(ctx, path, reader, size, contentType)
}

func (s *StorageService) Delete(ctx context.Context, path string) error {
	return s.Provider.Delete(ctx, path)
}

func (s *StorageService) GetURL(path string) string {
	return s.Provider.GetURL(path)
}
