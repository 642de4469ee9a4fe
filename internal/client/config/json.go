package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/ignitegym/internal/flagx"
	"github.com/dmitrijs2005/ignitegym/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Missing or
// empty fields keep the value set by earlier sources.
type JsonConfig struct {
	ServerURL      string          `json:"server_url"`
	DatabasePath   string          `json:"database_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogLevel       string          `json:"log_level"`
	Avatar         struct {
		Bucket    string `json:"bucket"`
		Region    string `json:"region"`
		Endpoint  string `json:"endpoint"`
		AccessKey string `json:"access_key"`
		SecretKey string `json:"secret_key"`
		PublicURL string `json:"public_url"`
	} `json:"avatar"`
}

// parseJson overlays cfg with the JSON file named by -c/-config in args.
// Without such a flag it does nothing. Read and decode errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFile(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIfNotEmpty(&cfg.ServerURL, jc.ServerURL)
	setIfNotEmpty(&cfg.DatabasePath, jc.DatabasePath)
	setIfNotEmpty(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}

	setIfNotEmpty(&cfg.Avatar.Bucket, jc.Avatar.Bucket)
	setIfNotEmpty(&cfg.Avatar.Region, jc.Avatar.Region)
	setIfNotEmpty(&cfg.Avatar.Endpoint, jc.Avatar.Endpoint)
	setIfNotEmpty(&cfg.Avatar.AccessKey, jc.Avatar.AccessKey)
	setIfNotEmpty(&cfg.Avatar.SecretKey, jc.Avatar.SecretKey)
	setIfNotEmpty(&cfg.Avatar.PublicURL, jc.Avatar.PublicURL)
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
