package filestorage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

// OSSConfig holds the Aliyun OSS connection settings
type OSSConfig struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	Prefix          string // optional key prefix, e.g. "learnhub"
	PublicBaseURL   string // optional CDN base; defaults to https://<bucket>.<endpoint>
}

// OSSStorage signs direct uploads to an Aliyun OSS bucket
type OSSStorage struct {
	bucket     *oss.Bucket
	prefix     string
	publicBase string
}

// NewOSSStorage connects to the bucket described by cfg
func NewOSSStorage(cfg OSSConfig) (*OSSStorage, error) {
	if cfg.Endpoint == "" || cfg.AccessKeyID == "" || cfg.AccessKeySecret == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("oss storage requires endpoint, access key, secret and bucket")
	}

	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	publicBase := strings.TrimRight(cfg.PublicBaseURL, "/")
	if publicBase == "" {
		end := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")
		publicBase = fmt.Sprintf("https://%s.%s", cfg.Bucket, end)
	}

	logger.Info().Str("bucket", cfg.Bucket).Str("endpoint", cfg.Endpoint).Msg("OSS storage configured")
	return &OSSStorage{
		bucket:     bucket,
		prefix:     strings.Trim(cfg.Prefix, "/"),
		publicBase: publicBase,
	}, nil
}

func (s *OSSStorage) fullKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + "/" + key
}

// PresignPut returns a signed PUT URL bound to the content type
func (s *OSSStorage) PresignPut(_ context.Context, key, contentType string, ttl time.Duration) (*PresignedUpload, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	full := s.fullKey(key)

	signed, err := s.bucket.SignURL(full, oss.HTTPPut, int64(ttl/time.Second), oss.ContentType(contentType))
	if err != nil {
		logger.Error().Err(err).Str("key", full).Msg("Failed to sign OSS upload URL")
		return nil, fmt.Errorf("sign upload url: %w", err)
	}

	return &PresignedUpload{
		UploadURL: signed,
		FileURL:   s.publicBase + "/" + full,
		ObjectKey: full,
		Fields:    map[string]string{},
		ExpiresAt: time.Now().Add(ttl).UTC().Truncate(time.Second),
	}, nil
}

// DeleteObject removes an object from the bucket
func (s *OSSStorage) DeleteObject(ctx context.Context, key string) error {
	if err := s.bucket.DeleteObject(key, oss.WithContext(ctx)); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Failed to delete OSS object")
		return err
	}
	return nil
}

// KeyFromURL strips the public base from a file URL
func (s *OSSStorage) KeyFromURL(fileURL string) (string, error) {
	prefix := s.publicBase + "/"
	if !strings.HasPrefix(fileURL, prefix) {
		return "", fmt.Errorf("%w: %s is not served by this bucket", ErrInvalidKey, fileURL)
	}
	return cleanKey(strings.TrimPrefix(fileURL, prefix))
}
