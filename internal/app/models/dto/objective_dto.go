package dto

import (
	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
)

// CreateObjectiveRequest appends a learning objective
type CreateObjectiveRequest struct {
	ObjectiveText string `json:"objective_text" binding:"required" example:"Write table driven tests"`
}

// ObjectiveOrderUpdate moves one objective to a new position
type ObjectiveOrderUpdate struct {
	ID             uuid.UUID `json:"id" binding:"required"`
	ObjectiveOrder int       `json:"objective_order" binding:"required,min=1" example:"2"`
}

// ReorderObjectivesRequest is applied as a single batch
type ReorderObjectivesRequest struct {
	Updates []ObjectiveOrderUpdate `json:"updates" binding:"required,min=1,dive"`
}

// MainObjectiveRequest sets the course's main objective text
type MainObjectiveRequest struct {
	MainObjective string `json:"main_objective" binding:"required" example:"Ship a production Go service"`
}

// ObjectivesResponse lists the objectives of a course in order
type ObjectivesResponse struct {
	MainObjective string                    `json:"main_objective"`
	Objectives    []*models.CourseObjective `json:"objectives"`
}
