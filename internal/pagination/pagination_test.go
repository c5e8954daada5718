package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func parseQuery(t *testing.T, query string) Params {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return Parse(c)
}

func TestParseDefaults(t *testing.T) {
	p := parseQuery(t, "")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
}

func TestParseClamping(t *testing.T) {
	tests := []struct {
		query string
		page  int
		limit int
	}{
		{"page=3&limit=50", 3, 50},
		{"page=0&limit=0", 1, DefaultLimit},
		{"page=-2&limit=-1", 1, DefaultLimit},
		{"page=2&limit=500", 2, MaxLimit},
		{"page=abc&limit=xyz", 1, DefaultLimit},
	}
	for _, tc := range tests {
		p := parseQuery(t, tc.query)
		assert.Equal(t, tc.page, p.Page, tc.query)
		assert.Equal(t, tc.limit, p.Limit, tc.query)
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, Params{Page: 3, Limit: 20}.Offset())
}
