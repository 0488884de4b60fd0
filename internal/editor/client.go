// Package editor is the client side of the course structure editor: a REST
// client for the structure endpoints and an editing Session that applies
// drag-and-drop moves locally and syncs them back with a full replace.
package editor

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/pkg/coursetree"
)

// StructureClient reads and replaces the structure of a course
type StructureClient interface {
	GetStructure(ctx context.Context, courseID uuid.UUID) ([]*coursetree.Node, error)
	PutStructure(ctx context.Context, courseID uuid.UUID, roots []*coursetree.Node) ([]*coursetree.Node, error)
}

// APIError is a non-2xx answer from the API
type APIError struct {
	Status  int
	Code    dto.ErrorCode
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type structureEnvelope struct {
	Success bool                  `json:"success"`
	Data    dto.StructureResponse `json:"data"`
}

// Client talks to the /api/v1 structure endpoints
type Client struct {
	http *resty.Client
}

// NewClient creates a client for the API rooted at baseURL, e.g.
// http://localhost:8080/api/v1. An empty token sends no Authorization header.
func NewClient(baseURL, token string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15*time.Second).
		SetHeader("Accept", "application/json")
	if token != "" {
		c.SetAuthToken(token)
	}
	return &Client{http: c}
}

// GetStructure fetches the course tree
func (c *Client) GetStructure(ctx context.Context, courseID uuid.UUID) ([]*coursetree.Node, error) {
	var result structureEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("courseId", courseID.String()).
		SetResult(&result).
		SetError(&dto.ErrorResponse{}).
		Get("/courses/{courseId}/structure")
	if err != nil {
		return nil, fmt.Errorf("error fetching structure: %w", err)
	}
	if err := apiError(resp); err != nil {
		return nil, err
	}
	return result.Data.Structure, nil
}

// PutStructure replaces the course tree and returns the tree the server stored
func (c *Client) PutStructure(ctx context.Context, courseID uuid.UUID, roots []*coursetree.Node) ([]*coursetree.Node, error) {
	if roots == nil {
		roots = []*coursetree.Node{}
	}
	var result structureEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("courseId", courseID.String()).
		SetBody(dto.ReplaceStructureRequest{Structure: roots}).
		SetResult(&result).
		SetError(&dto.ErrorResponse{}).
		Put("/courses/{courseId}/structure")
	if err != nil {
		return nil, fmt.Errorf("error saving structure: %w", err)
	}
	if err := apiError(resp); err != nil {
		return nil, err
	}
	return result.Data.Structure, nil
}

func apiError(resp *resty.Response) error {
	if !resp.IsError() {
		return nil
	}
	apiErr := &APIError{Status: resp.StatusCode(), Message: http.StatusText(resp.StatusCode())}
	if body, ok := resp.Error().(*dto.ErrorResponse); ok && body.Error != "" {
		apiErr.Code = body.Code
		apiErr.Message = body.Error
	}
	return apiErr
}
