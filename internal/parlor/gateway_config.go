package parlor

import (
	"github.com/kiosk404/parley/internal/parlor/handler/middleware"
)

// GatewayConfig holds the gateway-level configuration for HTTP API endpoints.
type GatewayConfig struct {
	// Auth holds the authentication configuration for the gateway.
	Auth middleware.AuthConfig `json:"auth"`
}

func DefaultGatewayConfig() *GatewayConfig {
	return &GatewayConfig{
		Auth: middleware.AuthConfig{
			Enabled: false,
		},
	}
}
