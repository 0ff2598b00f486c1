package config

import (
	"encoding/json"
	"os"

	"github.com/mkraev/lockbox/internal/flagx"
	"github.com/mkraev/lockbox/internal/timex"
)

// JsonConfig is an intermediate DTO for reading JSON configuration files.
// Duration fields accept both strings ("24h") and integer nanoseconds. After
// unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	Env                   string         `json:"env"`
	SecretKey             string         `json:"secret_key"`
	EncryptionKey         string         `json:"encryption_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	MaxFileSize           int64          `json:"max_file_size"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from the JSON file selected by the
// -c/-config flags. When no file is given nothing happens; an unreadable or
// invalid file panics, since a requested config that cannot be applied must
// not be silently ignored.
func parseJson(config *Config) {
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

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.Env = c.Env
	config.SecretKey = c.SecretKey
	config.EncryptionKey = c.EncryptionKey
	config.TokenValidityDuration = c.TokenValidityDuration.Duration
	config.MaxFileSize = c.MaxFileSize
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
}
