package dto

import "github.com/yigit/learnhub/internal/pkg/coursetree"

// StructureResponse is the hydrated course tree
type StructureResponse struct {
	Structure []*coursetree.Node `json:"structure"`
}

// ReplaceStructureRequest is the full tree sent by the editor
type ReplaceStructureRequest struct {
	Structure []*coursetree.Node `json:"structure" binding:"required"`
}
