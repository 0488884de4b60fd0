package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) dto.APIResponse {
	t.Helper()
	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   dto.ErrorCode
	}{
		{apperrors.NewValidationError("name cannot be empty"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.ErrInvalidParent, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{fmt.Errorf("%w: bad sig", apperrors.ErrTokenInvalid), http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{apperrors.ErrInvalidSignature, http.StatusForbidden, dto.ErrorCodeForbidden},
		{fmt.Errorf("loading: %w", apperrors.ErrModuleNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{fmt.Errorf("%w: constraint", apperrors.ErrConflict), http.StatusConflict, dto.ErrorCodeConflict},
		{apperrors.ErrStorageUnavailable, http.StatusServiceUnavailable, dto.ErrorCodeExternalServiceError},
		{fmt.Errorf("connection reset"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Code)
		})
	}
}

func TestHandleAPIError_KeepsCustomMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, fmt.Errorf("wrapped: %w", apperrors.ErrLessonNotFound))

	assert.Equal(t, "lesson not found", decode(t, rec).Error)
}

func newAuthRouter(m *AuthMiddleware) *gin.Engine {
	r := gin.New()
	r.GET("/read", m.JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": CurrentUserID(c)})
	})
	r.POST("/write", m.JWTAuth(), m.AuthorRequired(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{SecretKey: "secret"})
	router := newAuthRouter(NewAuthMiddleware(svc, true))

	student, err := svc.GenerateToken("s-1", models.RoleStudent, time.Minute)
	require.NoError(t, err)
	instructor, err := svc.GenerateToken("i-1", models.RoleInstructor, time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		header string
		status int
	}{
		{"missing token", http.MethodGet, "/read", "", http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/read", "Bearer nope", http.StatusUnauthorized},
		{"student reads", http.MethodGet, "/read", "Bearer " + student, http.StatusOK},
		{"student writes", http.MethodPost, "/write", "Bearer " + student, http.StatusForbidden},
		{"instructor writes", http.MethodPost, "/write", "Bearer " + instructor, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestJWTAuth_Disabled(t *testing.T) {
	router := newAuthRouter(NewAuthMiddleware(nil, false))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/write", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestBindJSON_FieldErrors(t *testing.T) {
	r := gin.New()
	r.POST("/modules", func(c *gin.Context) {
		var req dto.CreateModuleRequest
		if !BindJSON(c, &req) {
			return
		}
		c.Status(http.StatusCreated)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/modules", strings.NewReader(`{"number":-1}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Code    dto.ErrorCode        `json:"code"`
		Details dto.ValidationErrors `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Code)
	fields := map[string]string{}
	for _, fe := range body.Details.Errors {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "name is required", fields["name"])
	assert.Contains(t, fields, "number")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/modules", strings.NewReader(`{"name":`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestIDAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	r := gin.New()
	r.Use(RequestID(), RequestLogger(), metrics.Handler())
	r.GET("/courses/:courseId", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/courses/abc", nil)
	req.Header.Set("X-Request-ID", "req-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "req-1", rec.Header().Get("X-Request-ID"))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.requests.WithLabelValues("/courses/:courseId", http.MethodGet, "200")))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courses/abc", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
