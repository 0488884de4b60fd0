package filestorage

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	ls, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads/", "secret")
	require.NoError(t, err)
	ls.now = func() time.Time { return time.Unix(1_700_000_000, 0) }
	return ls
}

func TestObjectKey(t *testing.T) {
	courseID := uuid.New()
	key := ObjectKey(courseID, `C:\Users\me\My Slides (final).PDF`)

	assert.True(t, strings.HasPrefix(key, "courses/"+courseID.String()+"/"))
	assert.True(t, strings.HasSuffix(key, "-my-slides-final-.pdf"), key)

	assert.True(t, strings.HasSuffix(ObjectKey(courseID, "../.."), "-file"))
}

func TestLocalStorage_PresignAndVerify(t *testing.T) {
	ls := newTestStorage(t)

	up, err := ls.PresignPut(context.Background(), "courses/a/b.pdf", "application/pdf", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/courses/a/b.pdf", up.FileURL)
	assert.Equal(t, "courses/a/b.pdf", up.ObjectKey)
	assert.NotNil(t, up.Fields)
	assert.Empty(t, up.Fields)
	assert.Equal(t, time.Unix(1_700_000_900, 0).UTC(), up.ExpiresAt)

	u, err := url.Parse(up.UploadURL)
	require.NoError(t, err)
	q := u.Query()
	require.NoError(t, ls.VerifyUpload("courses/a/b.pdf", q.Get("content_type"), q.Get("expires"), q.Get("signature")))

	assert.ErrorIs(t, ls.VerifyUpload("courses/a/other.pdf", q.Get("content_type"), q.Get("expires"), q.Get("signature")), ErrSignatureInvalid)
	assert.ErrorIs(t, ls.VerifyUpload("courses/a/b.pdf", "text/html", q.Get("expires"), q.Get("signature")), ErrSignatureInvalid)

	ls.now = func() time.Time { return time.Unix(1_700_001_000, 0) }
	assert.ErrorIs(t, ls.VerifyUpload("courses/a/b.pdf", q.Get("content_type"), q.Get("expires"), q.Get("signature")), ErrSignatureExpired)
}

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	ls := newTestStorage(t)
	ctx := context.Background()

	n, err := ls.Save("courses/a/notes.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)

	data, err := os.ReadFile(filepath.Join(ls.Root(), "courses", "a", "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	key, err := ls.KeyFromURL("http://localhost:8080/uploads/courses/a/notes.txt")
	require.NoError(t, err)
	require.NoError(t, ls.DeleteObject(ctx, key))
	require.NoError(t, ls.DeleteObject(ctx, key), "deleting twice is not an error")

	_, err = os.Stat(filepath.Join(ls.Root(), "courses", "a", "notes.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	ls := newTestStorage(t)

	for _, key := range []string{"", "../etc/passwd", "a/../../b", ".."} {
		_, err := ls.Save(key, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}

	_, err := ls.KeyFromURL("https://elsewhere.example.com/a.pdf")
	assert.ErrorIs(t, err, ErrInvalidKey)
}
