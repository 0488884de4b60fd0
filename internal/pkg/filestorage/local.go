package filestorage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yigit/learnhub/internal/pkg/logger"
)

var (
	ErrSignatureInvalid = errors.New("upload signature is invalid")
	ErrSignatureExpired = errors.New("upload signature has expired")
)

// LocalStorage keeps media on the local filesystem. Uploads go through this
// server's PUT /uploads/*key endpoint with an HMAC signed query string.
type LocalStorage struct {
	basePath   string // The root directory where files will be stored
	baseURL    string // Public URL the files are served under, e.g. http://host/uploads
	signingKey []byte
	now        func() time.Time
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the required directory path on the server.
func NewLocalStorage(basePath, baseURL, signingKey string) (*LocalStorage, error) {
	if signingKey == "" {
		return nil, errors.New("local storage requires a signing key")
	}
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath:   basePath,
		baseURL:    strings.TrimRight(baseURL, "/"),
		signingKey: []byte(signingKey),
		now:        time.Now,
	}, nil
}

func (ls *LocalStorage) sign(key, contentType string, expires int64) string {
	mac := hmac.New(sha256.New, ls.signingKey)
	fmt.Fprintf(mac, "PUT\n%s\n%s\n%d", key, contentType, expires)
	return hex.EncodeToString(mac.Sum(nil))
}

// PresignPut signs a PUT to /uploads/<key>
func (ls *LocalStorage) PresignPut(_ context.Context, key, contentType string, ttl time.Duration) (*PresignedUpload, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	expiresAt := ls.now().Add(ttl).UTC().Truncate(time.Second)
	q := url.Values{}
	q.Set("content_type", contentType)
	q.Set("expires", strconv.FormatInt(expiresAt.Unix(), 10))
	q.Set("signature", ls.sign(key, contentType, expiresAt.Unix()))

	fileURL := ls.baseURL + "/" + key
	return &PresignedUpload{
		UploadURL: fileURL + "?" + q.Encode(),
		FileURL:   fileURL,
		ObjectKey: key,
		Fields:    map[string]string{},
		ExpiresAt: expiresAt,
	}, nil
}

// VerifyUpload checks the query string produced by PresignPut
func (ls *LocalStorage) VerifyUpload(key, contentType, expires, signature string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return ErrSignatureInvalid
	}
	want := ls.sign(key, contentType, exp)
	if !hmac.Equal([]byte(want), []byte(signature)) {
		return ErrSignatureInvalid
	}
	if ls.now().Unix() > exp {
		return ErrSignatureExpired
	}
	return nil
}

// Save writes the object body under the storage root and returns its size
func (ls *LocalStorage) Save(key string, body io.Reader) (int64, error) {
	key, err := cleanKey(key)
	if err != nil {
		return 0, err
	}

	dstPath := filepath.Join(ls.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dstPath), os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create subdirectory")
		return 0, fmt.Errorf("failed to create subdirectory: %w", err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return 0, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, body)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return 0, fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("key", key).Int64("bytes", n).Msg("File saved successfully")
	return n, nil
}

// DeleteObject removes a file from the storage filesystem.
// Returns nil if deletion is successful or if the file doesn't exist.
func (ls *LocalStorage) DeleteObject(_ context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	physicalPath := filepath.Join(ls.basePath, filepath.FromSlash(key))
	if err := os.Remove(physicalPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// KeyFromURL strips the public base URL from a file URL
func (ls *LocalStorage) KeyFromURL(fileURL string) (string, error) {
	prefix := ls.baseURL + "/"
	if !strings.HasPrefix(fileURL, prefix) {
		return "", fmt.Errorf("%w: %s is not served by local storage", ErrInvalidKey, fileURL)
	}
	return cleanKey(strings.TrimPrefix(fileURL, prefix))
}

// Root returns the directory files are stored in
func (ls *LocalStorage) Root() string {
	return ls.basePath
}
