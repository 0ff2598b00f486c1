// Package config handles configuration for the CLI client.
package config

// Config holds runtime settings for the Lockbox CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the Lockbox HTTP endpoint.
//   - SessionFile: path where the session token is persisted between runs.
type Config struct {
	ServerEndpointAddr string
	SessionFile        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.SessionFile = ".lockbox_session"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
