package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
)

// CreateMediaRequest registers an uploaded file in the course tree.
// ParentID is the module or lesson the media is placed under; when omitted the
// lesson is used.
type CreateMediaRequest struct {
	Title    string     `json:"title" binding:"required,max=255" example:"Slides"`
	FileType string     `json:"file_type" binding:"required" example:"application/pdf"`
	FileURL  string     `json:"file_url" binding:"required" example:"https://cdn.example.com/courses/1/slides.pdf"`
	LessonID *uuid.UUID `json:"lesson_id"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// MediaCreatedResponse is returned after a media row and its structural entry are stored
type MediaCreatedResponse struct {
	Media     *models.Media          `json:"media"`
	Structure *models.StructureEntry `json:"structure"`
}

// PresignRequest asks for a time-limited upload URL
type PresignRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255" example:"slides.pdf"`
	ContentType string `json:"content_type" binding:"required" example:"application/pdf"`
}

// PresignResponse carries everything a client needs to upload a file directly
type PresignResponse struct {
	UploadURL string            `json:"upload_url"`
	FileURL   string            `json:"file_url"`
	ObjectKey string            `json:"object_key"`
	Fields    map[string]string `json:"fields"`
	ExpiresAt time.Time         `json:"expires_at"`
}
