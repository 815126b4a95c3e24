// Package core provides the uniform HTTP response envelope.
package core

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kiosk404/parley/pkg/errorx"
	"github.com/kiosk404/parley/pkg/logger"
)

// ErrResponse is the JSON body written for failed requests.
type ErrResponse struct {
	// Code is the registered business error code.
	Code int `json:"code"`
	// Message is the user-facing description of the failure.
	Message string `json:"message"`
	// Reference is an optional documentation link.
	Reference string `json:"reference,omitempty"`
}

// WriteResponse writes either an error envelope resolved through the errorx
// coder registry, or the data payload with HTTP 200.
func WriteResponse(c *gin.Context, err error, data interface{}) {
	if err != nil {
		coder := errorx.ParseCoder(err)
		logger.Warn("[core] request failed: %v (code=%d)", err, coder.Code())
		c.JSON(coder.HTTPStatus(), ErrResponse{
			Code:      coder.Code(),
			Message:   coder.String(),
			Reference: coder.Reference(),
		})
		return
	}

	c.JSON(http.StatusOK, data)
}
