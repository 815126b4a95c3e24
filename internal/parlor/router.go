package parlor

import (
	"github.com/gin-gonic/gin"

	"github.com/kiosk404/parley/internal/parlor/handler/middleware"
	v1 "github.com/kiosk404/parley/internal/parlor/handler/v1"
	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/service"
)

// routerDeps holds the dependencies needed for route registration.
type routerDeps struct {
	chatService service.ChatService
	authConfig  *middleware.AuthConfig
}

func initRouter(g *gin.Engine, deps *routerDeps) {
	installMiddleware(g, deps)
	installController(g, deps)
}

func installMiddleware(g *gin.Engine, deps *routerDeps) {
	g.Use(gin.Recovery())
	g.Use(middleware.CORS())

	if deps.authConfig != nil {
		g.Use(middleware.BearerAuth(deps.authConfig))
	}
}

func installController(g *gin.Engine, deps *routerDeps) {
	// Handlers.
	chatHandler := v1.NewChatHandler(deps.chatService)
	conversationHandler := v1.NewConversationHandler(deps.chatService)
	usageHandler := v1.NewUsageHandler(deps.chatService)

	// --- /v1 route group ---
	apiV1 := g.Group("/v1")
	{
		// Conversation stream and stop.
		apiV1.POST("/chat/stream", chatHandler.Stream)
		apiV1.POST("/chat/stop", chatHandler.Stop)

		// Stored transcripts.
		apiV1.GET("/conversations", conversationHandler.List)
		apiV1.GET("/conversations/:id", conversationHandler.Get)

		// Usage estimation.
		apiV1.GET("/usage", usageHandler.Report)
	}
}
