package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextFor(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   Params
	}{
		{"defaults", "/", Params{Limit: DefaultLimit, Offset: 0}},
		{"custom values", "/?limit=50&offset=10", Params{Limit: 50, Offset: 10}},
		{"max limit", "/?limit=500", Params{Limit: MaxLimit, Offset: 0}},
		{"negative offset", "/?offset=-4", Params{Limit: DefaultLimit, Offset: 0}},
		{"garbage", "/?limit=abc&offset=xyz", Params{Limit: DefaultLimit, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromContext(contextFor(tt.target)))
		})
	}
}

func TestNewResponse_HasMore(t *testing.T) {
	assert.True(t, NewResponse([]int{1, 2}, 5, Params{Limit: 2, Offset: 0}).HasMore)
	assert.True(t, NewResponse([]int{3, 4}, 5, Params{Limit: 2, Offset: 2}).HasMore)
	assert.False(t, NewResponse([]int{5}, 5, Params{Limit: 2, Offset: 4}).HasMore)
}
