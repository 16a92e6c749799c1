package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParishContext(t *testing.T) {
	queryID := uuid.New()
	headerID := uuid.New()

	tests := []struct {
		name   string
		query  string
		header string
		want   uuid.UUID
		found  bool
	}{
		{name: "query parameter", query: queryID.String(), want: queryID, found: true},
		{name: "header", header: headerID.String(), want: headerID, found: true},
		{name: "query wins over header", query: queryID.String(), header: headerID.String(), want: queryID, found: true},
		{name: "missing", found: false},
		{name: "malformed", query: "not-a-uuid", found: false},
		{name: "nil uuid", header: uuid.Nil.String(), found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got uuid.UUID
			var found bool
			router := gin.New()
			router.Use(ParishContext())
			router.GET("/test", func(c *gin.Context) {
				got, found = GetParishID(c)
				c.Status(http.StatusOK)
			})

			path := "/test"
			if tt.query != "" {
				path += "?parish_id=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, path, nil)
			if tt.header != "" {
				req.Header.Set(ParishHeaderKey, tt.header)
			}
			router.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestGetParishID_WrongType(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(ParishIDKey, "not-a-uuid-value")

	_, ok := GetParishID(c)
	assert.False(t, ok)
}
