package options

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/kiosk404/parley/internal/pkg/server"
)

// ServerRunOptions configures the generic HTTP serving parameters.
type ServerRunOptions struct {
	Mode            string `json:"mode"        mapstructure:"mode"`
	BindAddress     string `json:"bind-address" mapstructure:"bind-address"`
	BindPort        int    `json:"bind-port"   mapstructure:"bind-port"`
	Healthz         bool   `json:"healthz"     mapstructure:"healthz"`
	EnableProfiling bool   `json:"profiling"   mapstructure:"profiling"`
}

// NewServerRunOptions returns serving options with defaults applied.
func NewServerRunOptions() *ServerRunOptions {
	defaults := server.NewConfig()
	return &ServerRunOptions{
		Mode:            defaults.Mode,
		BindAddress:     defaults.BindAddress,
		BindPort:        defaults.BindPort,
		Healthz:         defaults.Healthz,
		EnableProfiling: defaults.EnableProfiling,
	}
}

// ApplyTo copies the options onto a server.Config.
func (o *ServerRunOptions) ApplyTo(c *server.Config) error {
	c.Mode = o.Mode
	c.BindAddress = o.BindAddress
	c.BindPort = o.BindPort
	c.Healthz = o.Healthz
	c.EnableProfiling = o.EnableProfiling
	return nil
}

// Validate checks the serving options.
func (o *ServerRunOptions) Validate() []error {
	var errs []error
	if o.BindPort < 1 || o.BindPort > 65535 {
		errs = append(errs, fmt.Errorf("bind port %d must be between 1 and 65535", o.BindPort))
	}
	switch o.Mode {
	case "debug", "test", "release":
	default:
		errs = append(errs, fmt.Errorf("invalid server mode %q, must be 'debug', 'test' or 'release'", o.Mode))
	}
	return errs
}

// AddFlags adds serving flags to the given flag set.
func (o *ServerRunOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Mode, "server.mode", o.Mode, "Server run mode: debug, test or release.")
	fs.StringVar(&o.BindAddress, "server.bind-address", o.BindAddress, "IP address the HTTP server listens on.")
	fs.IntVar(&o.BindPort, "server.bind-port", o.BindPort, "Port the HTTP server listens on.")
	fs.BoolVar(&o.Healthz, "server.healthz", o.Healthz, "Install the /healthz readiness route.")
	fs.BoolVar(&o.EnableProfiling, "server.profiling", o.EnableProfiling, "Install pprof routes for profiling.")
}
