package v1

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"

	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/service"
	"github.com/kiosk404/parley/internal/parlor/service/chat/pkg/errno"
	"github.com/kiosk404/parley/internal/pkg/core"
	"github.com/kiosk404/parley/pkg/errorx"
)

// ConversationHandler serves stored transcripts.
type ConversationHandler struct {
	svc service.ChatService
}

// NewConversationHandler creates a new ConversationHandler.
func NewConversationHandler(svc service.ChatService) *ConversationHandler {
	return &ConversationHandler{svc: svc}
}

// List handles GET /v1/conversations.
func (h *ConversationHandler) List(c *gin.Context) {
	summaries, err := h.svc.ListConversations(c.Request.Context())
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrConversationList, "list conversations"), nil)
		return
	}

	rows := make([]SummaryResponse, 0, len(summaries))
	if err := copier.Copy(&rows, &summaries); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrConversationList, "map conversation summaries"), nil)
		return
	}
	core.WriteResponse(c, nil, ConversationListResponse{Conversations: rows})
}

// Get handles GET /v1/conversations/:id.
func (h *ConversationHandler) Get(c *gin.Context) {
	id := c.Param("id")
	conv, err := h.svc.GetConversation(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, errno.ErrConversationNotFound) {
			core.WriteResponse(c, errorx.WrapC(err, ErrConversationNotFound, "conversation %q not found", id), nil)
			return
		}
		core.WriteResponse(c, errorx.WrapC(err, ErrConversationList, "get conversation %q", id), nil)
		return
	}

	var resp ConversationResponse
	if err := copier.Copy(&resp, conv); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrConversationList, "map conversation %q", id), nil)
		return
	}
	if resp.Messages == nil {
		resp.Messages = []MessageResponse{}
	}
	core.WriteResponse(c, nil, resp)
}
