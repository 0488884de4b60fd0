package dto

import "github.com/yigit/learnhub/internal/app/models"

// CreateModuleRequest represents module creation data
type CreateModuleRequest struct {
	Name   string `json:"name" binding:"required,max=255" example:"Getting started"`
	Number int    `json:"number" binding:"gte=0" example:"1"`
}

// UpdateModuleRequest patches a module; nil fields are left unchanged
type UpdateModuleRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=1,max=255"`
	Number *int    `json:"number" binding:"omitempty,gte=0"`
}

// CreateLessonRequest represents lesson creation data
type CreateLessonRequest struct {
	Name          string  `json:"name" binding:"required,max=255" example:"Installing the toolchain"`
	Number        int     `json:"number" binding:"gte=0" example:"1"`
	VideoURL      *string `json:"video_url" binding:"omitempty,url" example:"https://videos.example.com/1.mp4"`
	LessonDetails *string `json:"lesson_details"`
}

// UpdateLessonRequest patches a lesson; nil fields are left unchanged
type UpdateLessonRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=255"`
	Number        *int    `json:"number" binding:"omitempty,gte=0"`
	VideoURL      *string `json:"video_url" binding:"omitempty,url"`
	LessonDetails *string `json:"lesson_details"`
}

// CreateLessonContentRequest represents a new lesson content item
type CreateLessonContentRequest struct {
	Title       string                   `json:"title" binding:"required,max=255" example:"Reading"`
	ContentType models.LessonContentType `json:"content_type" binding:"required,oneof=media text discussion" example:"text"`
	Content     string                   `json:"content"`
	FileType    *string                  `json:"file_type"`
	FileURL     *string                  `json:"file_url"`
}

// ModuleCreatedResponse is returned after a module and its structural entry are stored
type ModuleCreatedResponse struct {
	Module    *models.Module         `json:"module"`
	Structure *models.StructureEntry `json:"structure"`
}

// LessonCreatedResponse is returned after a lesson and its structural entry are stored
type LessonCreatedResponse struct {
	Lesson    *models.Lesson         `json:"lesson"`
	Structure *models.StructureEntry `json:"structure"`
}
