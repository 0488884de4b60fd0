package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/learnhub/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is a normalized 1-based page request
type Page struct {
	Number int
	Size   int
}

// NewPage clamps the page number to >= 1 and the size to 1..MaxPageSize,
// using DefaultPageSize for anything out of range
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return Page{Number: number, Size: size}
}

// PageFromQuery reads ?page= and ?size=; malformed values fall back to defaults
func PageFromQuery(c *gin.Context) Page {
	number, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		number = 1
	}
	size, err := strconv.Atoi(c.Query("size"))
	if err != nil {
		size = DefaultPageSize
	}
	return NewPage(number, size)
}

// Offset is the number of rows to skip
func (p Page) Offset() uint64 {
	return uint64((p.Number - 1) * p.Size)
}

// Info builds the response metadata for a total row count. An empty result
// still reports one page and CurrentPage never exceeds TotalPages.
func (p Page) Info(totalItems int64) dto.PaginationInfo {
	totalPages := int((totalItems + int64(p.Size) - 1) / int64(p.Size))
	if totalPages == 0 {
		totalPages = 1
	}
	current := p.Number
	if current > totalPages {
		current = totalPages
	}
	return dto.PaginationInfo{
		CurrentPage: current,
		TotalPages:  totalPages,
		PageSize:    p.Size,
		TotalItems:  totalItems,
	}
}
