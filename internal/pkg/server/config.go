package server

// Config is the configuration for a GenericAPIServer.
type Config struct {
	// Mode is the gin run mode: debug, test or release.
	Mode string
	// BindAddress is the IP address to listen on.
	BindAddress string
	// BindPort is the port to listen on.
	BindPort int
	// Healthz installs the /healthz readiness route when true.
	Healthz bool
	// EnableProfiling installs the pprof routes when true.
	EnableProfiling bool
}

// CompletedConfig is a Config with defaults applied.
type CompletedConfig struct {
	*Config
}

// NewConfig returns a Config with sane defaults.
func NewConfig() *Config {
	return &Config{
		Mode:            "release",
		BindAddress:     "127.0.0.1",
		BindPort:        11750,
		Healthz:         true,
		EnableProfiling: false,
	}
}

// Complete fills any unset fields that can be derived and returns the
// completed config.
func (c *Config) Complete() CompletedConfig {
	if c.Mode == "" {
		c.Mode = "release"
	}
	if c.BindAddress == "" {
		c.BindAddress = "127.0.0.1"
	}
	if c.BindPort == 0 {
		c.BindPort = 11750
	}
	return CompletedConfig{c}
}

// New builds a GenericAPIServer from the completed config.
func (c CompletedConfig) New() (*GenericAPIServer, error) {
	s := &GenericAPIServer{
		Config: c.Config,
	}
	s.setup()
	return s, nil
}
