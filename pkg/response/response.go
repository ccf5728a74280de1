package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/hassansardar246/eclero-availability-api/pkg/errors"
)

// ErrorBody is the public error contract: a human-readable error plus
// best-effort details about the underlying cause.
type ErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// JSON sends a success payload. Calendar responses are computed per
// request from live data, so intermediaries must not cache them.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	body := ErrorBody{Error: appErr.Message, Code: appErr.Code}
	if appErr.Err != nil {
		body.Details = appErr.Err.Error()
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, body)
}

// Attachment streams a rendered file as a download.
func Attachment(c *gin.Context, contentType, filename string, payload []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, payload)
}
