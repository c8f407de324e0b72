package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	h(c)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSuccess(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) { Success(c, []string{"a"}) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)
	assert.Nil(t, body.Error)
	assert.Equal(t, []any{"a"}, body.Data)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		h      gin.HandlerFunc
		status int
		code   string
	}{
		{"bad request", func(c *gin.Context) { BadRequest(c, "x") }, http.StatusBadRequest, CodeBadRequest},
		{"unsupported", func(c *gin.Context) { Unsupported(c, "x") }, http.StatusBadRequest, CodeUnsupported},
		{"not found", func(c *gin.Context) { NotFound(c, "x") }, http.StatusNotFound, CodeNotFound},
		{"internal", func(c *gin.Context) { InternalError(c, "x") }, http.StatusInternalServerError, CodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := serve(t, tt.h)
			assert.Equal(t, tt.status, w.Code)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, "x", body.Error.Message)
		})
	}
}
