package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"

	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/service"
	"github.com/kiosk404/parley/internal/pkg/core"
	"github.com/kiosk404/parley/pkg/errorx"
)

// UsageHandler serves the locally-estimated usage report.
type UsageHandler struct {
	svc service.ChatService
}

// NewUsageHandler creates a new UsageHandler.
func NewUsageHandler(svc service.ChatService) *UsageHandler {
	return &UsageHandler{svc: svc}
}

// Report handles GET /v1/usage.
func (h *UsageHandler) Report(c *gin.Context) {
	report, err := h.svc.UsageReport(c.Request.Context())
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrUsageReport, "build usage report"), nil)
		return
	}

	var resp UsageResponse
	if err := copier.Copy(&resp, report); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrUsageReport, "map usage report"), nil)
		return
	}
	if resp.Agents == nil {
		resp.Agents = []AgentUsageResponse{}
	}
	core.WriteResponse(c, nil, resp)
}
