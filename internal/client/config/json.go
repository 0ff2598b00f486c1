package config

import (
	"encoding/json"
	"os"

	"github.com/mkraev/lockbox/internal/flagx"
)

// JsonConfig is an intermediate DTO for reading JSON configuration files.
type JsonConfig struct {
	ServerEndpointAddr string `json:"server_endpoint_addr"`
	SessionFile        string `json:"session_file"`
}

// parseJson loads configuration values from the JSON file selected by the
// -c/-config flags. When no file is given nothing happens; an unreadable or
// invalid file panics.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	cfg.ServerEndpointAddr = c.ServerEndpointAddr
	cfg.SessionFile = c.SessionFile
}
