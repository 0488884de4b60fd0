// Package controllers holds the gin handlers of the REST API. Handlers bind and
// validate input, call one service method and wrap the result in
// dto.APIResponse; every error goes through middleware.HandleAPIError.
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models/dto"
)

// uuidParam parses a path parameter. It writes a 400 and returns false when
// the value is not a UUID.
func uuidParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeBadRequest, "Invalid "+name+": must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// uuidParams parses several path parameters in order
func uuidParams(ctx *gin.Context, names ...string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, len(names))
	for i, name := range names {
		id, ok := uuidParam(ctx, name)
		if !ok {
			return nil, false
		}
		ids[i] = id
	}
	return ids, true
}

func ok(ctx *gin.Context, data interface{}, message string) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(data, message))
}

func created(ctx *gin.Context, data interface{}, message string) {
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(data, message))
}
