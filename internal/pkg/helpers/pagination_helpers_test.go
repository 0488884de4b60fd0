package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name         string
		number, size int
		offset       uint64
		limit        int
	}{
		{"first page", 1, 20, 0, 20},
		{"third page", 3, 10, 20, 10},
		{"size too large", 2, 500, 10, DefaultPageSize},
		{"page below one", 0, 5, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage(tt.number, tt.size)
			assert.Equal(t, tt.offset, p.Offset())
			assert.Equal(t, tt.limit, p.Size)
		})
	}
}

func TestPageInfo(t *testing.T) {
	info := NewPage(2, 10).Info(21)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 2, info.CurrentPage)
	assert.EqualValues(t, 21, info.TotalItems)

	assert.Equal(t, 1, NewPage(1, 10).Info(0).TotalPages)
	assert.Equal(t, 1, NewPage(9, 10).Info(5).CurrentPage)
}

func TestPageFromQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/courses?page=4&size=abc", nil)

	p := PageFromQuery(c)
	assert.Equal(t, 4, p.Number)
	assert.Equal(t, DefaultPageSize, p.Size)
}
