package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/service"
	"github.com/kiosk404/parley/internal/parlor/service/chat/pkg/errno"
	"github.com/kiosk404/parley/internal/pkg/core"
	"github.com/kiosk404/parley/pkg/errorx"
	"github.com/kiosk404/parley/pkg/logger"
	"github.com/kiosk404/parley/pkg/utils/json"
	"github.com/kiosk404/parley/pkg/utils/safego"
)

// ChatHandler handles the conversation stream and stop endpoints.
type ChatHandler struct {
	svc service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(svc service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Stream handles POST /v1/chat/stream.
//
// Validation failures, conflicts and unknown conversation ids are
// reported synchronously as coded JSON before the stream opens. Once the
// stream is open, all outcomes travel as events: the stream carries a
// start event, zero or more message events, exactly one terminal event,
// and the [DONE] sentinel.
func (h *ChatHandler) Stream(c *gin.Context) {
	var req ChatStreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrBind, "bind chat stream request"), nil)
		return
	}

	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		core.WriteResponse(c, errorx.WithCode(ErrTopicRequired, "topic must not be empty"), nil)
		return
	}
	if req.IsContinuation && req.ConversationID == "" {
		core.WriteResponse(c, errorx.WithCode(ErrContinuationNoID, "isContinuation requires conversationId"), nil)
		return
	}

	result, err := h.svc.StartChat(c.Request.Context(), &service.StartChatRequest{
		Topic:          req.Topic,
		Turns:          req.Turns,
		ConversationID: req.ConversationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, errno.ErrConversationNotFound):
			core.WriteResponse(c, errorx.WrapC(err, ErrConversationNotFound, "conversation %q not found", req.ConversationID), nil)
		case errors.Is(err, errno.ErrConversationActive):
			core.WriteResponse(c, errorx.WrapC(err, ErrConversationActive, "conversation %q already active", req.ConversationID), nil)
		default:
			core.WriteResponse(c, errorx.WrapC(err, ErrChatStart, "start conversation"), nil)
		}
		return
	}

	// Set SSE headers.
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	w := c.Writer

	// Open the stream immediately so clients see the connection is live.
	fmt.Fprintf(w, ": connected\n\n")
	w.Flush()

	// A dropped client triggers the cancellation path; writes after the
	// disconnect are discarded by the HTTP stack.
	reqCtx := c.Request.Context()
	streamDone := make(chan struct{})
	defer close(streamDone)
	safego.Go(reqCtx, func() {
		select {
		case <-reqCtx.Done():
			logger.Info("[Chat] client disconnected from conversation %s, cancelling", result.ConversationID)
			_ = h.svc.StopChat(context.Background(), result.ConversationID)
		case <-streamDone:
		}
	})

	sr := result.Events
	defer sr.Close()

	for {
		event, err := sr.Recv()
		if err != nil {
			if err == io.EOF {
				break
			}
			logger.Warn("[Chat] stream recv error (code=%d): %v", ErrStreamRecv, err)
			break
		}

		data, err := json.Marshal(event)
		if err != nil {
			logger.Warn("[Chat] marshal event error: %v", err)
			continue
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		w.Flush()
	}

	fmt.Fprintf(w, "data: [DONE]\n\n")
	w.Flush()
}

// Stop handles POST /v1/chat/stop. Stopping is idempotent and always
// reports success, matching the fire-and-forget stop button semantics.
func (h *ChatHandler) Stop(c *gin.Context) {
	var req StopRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		core.WriteResponse(c, errorx.WrapC(err, ErrBind, "bind stop request"), nil)
		return
	}

	if err := h.svc.StopChat(c.Request.Context(), req.ConversationID); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrStopChat, "stop conversation %q", req.ConversationID), nil)
		return
	}

	core.WriteResponse(c, nil, StopResponse{Success: true})
}
