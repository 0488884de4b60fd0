package filestorage

import (
	"context"
	"errors"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidKey is returned for object keys that escape the storage root
var ErrInvalidKey = errors.New("invalid object key")

// PresignedUpload describes a direct, time-limited upload target
type PresignedUpload struct {
	UploadURL string            // URL the client PUTs the file body to
	FileURL   string            // URL the file is served from once uploaded
	ObjectKey string            // Key of the object inside the storage backend
	Fields    map[string]string // Extra form fields; empty for signed PUT uploads
	ExpiresAt time.Time
}

// ObjectStorage is implemented by every media storage backend
type ObjectStorage interface {
	// PresignPut returns a URL that accepts a PUT of the object until ttl expires
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (*PresignedUpload, error)

	// DeleteObject removes an object. Deleting a missing object is not an error.
	DeleteObject(ctx context.Context, key string) error

	// KeyFromURL maps a public file URL back to its object key
	KeyFromURL(fileURL string) (string, error)
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9._-]+`)

// ObjectKey builds a collision-free key for a course upload:
// courses/<courseID>/<uuid>-<sanitised file name>
func ObjectKey(courseID uuid.UUID, fileName string) string {
	base := strings.ToLower(path.Base(strings.ReplaceAll(fileName, "\\", "/")))
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "-"), "-.")
	if base == "" {
		base = "file"
	}
	return "courses/" + courseID.String() + "/" + uuid.NewString() + "-" + base
}

// cleanKey rejects absolute keys and keys containing parent references
func cleanKey(key string) (string, error) {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(key)
	if cleaned != key || strings.HasPrefix(cleaned, "../") || cleaned == ".." {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
