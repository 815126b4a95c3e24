package v1

import (
	"net/http"

	"github.com/kiosk404/parley/pkg/errorx"
)

// Parlor handler error codes.
// Code format: 1XXYYZ
//   - 1:  module prefix (parlor handler)
//   - XX: resource group (00=common, 01=chat, 02=conversation, 03=usage)
//   - YY: sequential error number
//   - Z:  reserved (0)

const (
	// Common request errors (100xxx).
	ErrBind       = 100001
	ErrValidation = 100002

	// Chat stream errors (1001xx).
	ErrTopicRequired      = 100101
	ErrContinuationNoID   = 100102
	ErrConversationActive = 100103
	ErrChatStart          = 100104
	ErrStreamRecv         = 100105
	ErrStopChat           = 100106

	// Conversation errors (1002xx).
	ErrConversationNotFound = 100201
	ErrConversationList     = 100202

	// Usage errors (1003xx).
	ErrUsageReport = 100301
)

func init() {
	// Common.
	errorx.MustRegister(newCoder(ErrBind, http.StatusBadRequest, "Request body binding failed"))
	errorx.MustRegister(newCoder(ErrValidation, http.StatusBadRequest, "Request validation failed"))

	// Chat stream.
	errorx.MustRegister(newCoder(ErrTopicRequired, http.StatusBadRequest, "Topic is required and must not be empty"))
	errorx.MustRegister(newCoder(ErrContinuationNoID, http.StatusBadRequest, "Continuation requires a conversation id"))
	errorx.MustRegister(newCoder(ErrConversationActive, http.StatusConflict, "Conversation already has an active session"))
	errorx.MustRegister(newCoder(ErrChatStart, http.StatusInternalServerError, "Failed to start conversation"))
	errorx.MustRegister(newCoder(ErrStreamRecv, http.StatusInternalServerError, "Stream receive error"))
	errorx.MustRegister(newCoder(ErrStopChat, http.StatusInternalServerError, "Failed to stop conversation"))

	// Conversation.
	errorx.MustRegister(newCoder(ErrConversationNotFound, http.StatusNotFound, "Conversation not found"))
	errorx.MustRegister(newCoder(ErrConversationList, http.StatusInternalServerError, "Failed to list conversations"))

	// Usage.
	errorx.MustRegister(newCoder(ErrUsageReport, http.StatusInternalServerError, "Failed to build usage report"))
}

type coder struct {
	code int
	http int
	msg  string
}

func newCoder(code, httpStatus int, msg string) *coder {
	return &coder{code: code, http: httpStatus, msg: msg}
}

func (c *coder) Code() int         { return c.code }
func (c *coder) HTTPStatus() int   { return c.http }
func (c *coder) String() string    { return c.msg }
func (c *coder) Reference() string { return "" }
