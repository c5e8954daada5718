package responses

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeschool/internal/apperrors"
)

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"first of many", 1, 20, 45, 3, true, false},
		{"middle page", 2, 20, 45, 3, true, true},
		{"last page", 3, 20, 45, 3, false, true},
		{"exact fit", 2, 10, 20, 2, false, true},
		{"empty", 1, 20, 0, 0, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMeta(tc.page, tc.limit, tc.total)
			assert.Equal(t, tc.totalPages, m.TotalPages)
			assert.Equal(t, tc.hasNext, m.HasNext)
			assert.Equal(t, tc.hasPrev, m.HasPrev)
		})
	}
}

func envelopeContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/students", nil)
	return c, w
}

func TestSuccessEnvelope(t *testing.T) {
	c, w := envelopeContext(t)

	Success(c, http.StatusOK, gin.H{"hello": "world"})

	require.Equal(t, http.StatusOK, w.Code)
	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Nil(t, body.Error)
}

func TestFailKnownError(t *testing.T) {
	c, w := envelopeContext(t)

	Fail(c, apperrors.NotFound("student"))

	require.Equal(t, http.StatusNotFound, w.Code)
	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, string(apperrors.CodeNotFound), body.Error.Code)
}

func TestFailOpaqueError(t *testing.T) {
	c, w := envelopeContext(t)

	Fail(c, assert.AnError)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, string(apperrors.CodeInternalError), body.Error.Code)
	// Internal detail never leaks to the client.
	assert.NotContains(t, body.Error.Message, assert.AnError.Error())
}

func TestFailOpaqueErrorWithoutRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	// No request attached; the opaque branch still has to answer.
	Fail(c, assert.AnError)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, string(apperrors.CodeInternalError), body.Error.Code)
}

func TestFailValidationDetails(t *testing.T) {
	c, w := envelopeContext(t)

	Fail(c, apperrors.Validation("invalid student", map[string]string{
		"first_name": "this field is required",
	}))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "this field is required", body.Error.Details["first_name"])
}
