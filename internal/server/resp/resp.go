package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the response structure of every JSON endpoint.
type Envelope struct {
	Status      string `json:"status"`      // success | error
	Code        int    `json:"code"`        // usually HTTP status code
	Description string `json:"description"` // human readable
	Data        any    `json:"data"`        // object | array | null
}

func Success(c *gin.Context, httpCode int, description string, data any) {
	c.JSON(httpCode, Envelope{
		Status:      "success",
		Code:        httpCode,
		Description: description,
		Data:        data,
	})
}

func OK(c *gin.Context, data any) {
	Success(c, http.StatusOK, "ok", data)
}

func Created(c *gin.Context, data any) {
	Success(c, http.StatusCreated, "created", data)
}

func Error(c *gin.Context, httpCode int, description string) {
	ErrorData(c, httpCode, description, nil)
}

// ErrorData is Error with a payload, e.g. per-field validation messages.
func ErrorData(c *gin.Context, httpCode int, description string, data any) {
	c.JSON(httpCode, Envelope{
		Status:      "error",
		Code:        httpCode,
		Description: description,
		Data:        data,
	})
}

// Abort writes an error envelope and stops the handler chain.
func Abort(c *gin.Context, httpCode int, description string) {
	Error(c, httpCode, description)
	c.Abort()
}
