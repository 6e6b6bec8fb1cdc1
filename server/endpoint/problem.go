package endpoint

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/faber/errors"
)

// ProblemContentType is the media type of error responses.
const ProblemContentType = "application/problem+json"

// Problem is an RFC 7807 problem document carrying the AppError code.
type Problem struct {
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Status   int            `json:"status"`
	Detail   string         `json:"detail,omitempty"`
	Instance string         `json:"instance,omitempty"`
	Code     string         `json:"code,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

// NewProblem builds the problem document for err. Errors that are not
// AppErrors are reported as a bare 500 without leaking their message.
func NewProblem(err error, instance string) Problem {
	status := errors.Status(err)
	p := Problem{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Instance: instance,
	}
	if appErr, ok := errors.AsAppError(err); ok {
		p.Type = "urn:faber:error:" + strings.ToLower(string(appErr.Code))
		p.Code = string(appErr.Code)
		p.Detail = appErr.Message
		p.Details = appErr.Details
	}
	return p
}

// RespondWithError aborts the request with the problem document for err.
func RespondWithError(c *gin.Context, err error) {
	p := NewProblem(err, c.Request.URL.Path)
	c.Header("Content-Type", ProblemContentType)
	c.AbortWithStatusJSON(p.Status, p)
}

// NotFound renders unknown routes as problems.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", ProblemContentType)
		c.AbortWithStatusJSON(http.StatusNotFound, Problem{
			Type:     "about:blank",
			Title:    http.StatusText(http.StatusNotFound),
			Status:   http.StatusNotFound,
			Instance: c.Request.URL.Path,
		})
	}
}
