package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the flat error envelope every endpoint returns. Fields carries
// per-field validation messages on 422 responses.
type Response struct {
	Status int               `json:"-"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string) {
	abort(c, err, Response{Status: status, Error: msg})
}

// AbortWithFields is AbortWithError for validation failures.
func AbortWithFields(c *gin.Context, status int, err error, msg string, fields map[string]string) {
	abort(c, err, Response{Status: status, Error: msg, Fields: fields})
}

func abort(c *gin.Context, err error, resp Response) {
	if err == nil {
		panic("httperr: err cannot be nil")
	}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}
