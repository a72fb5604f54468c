package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/mediaxis/internal/flagx"
	"github.com/dmitrijs2005/mediaxis/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "1h" and integer nanoseconds are accepted. Zero
// values leave the corresponding Config field untouched.
type JsonConfig struct {
	HTTPAddr       string         `json:"http_addr"`
	DatabaseDriver string         `json:"database_driver"`
	DatabaseDSN    string         `json:"database_dsn"`
	ResetTokenTTL  timex.Duration `json:"reset_token_ttl"`
	ResetBaseURL   string         `json:"reset_base_url"`
	SMTPHost       string         `json:"smtp_host"`
	SMTPPort       int            `json:"smtp_port"`
	SMTPUsername   string         `json:"smtp_username"`
	SMTPPassword   string         `json:"smtp_password"`
	MailFrom       string         `json:"mail_from"`
	LogLevel       string         `json:"log_level"`
	AllowedOrigins []string       `json:"allowed_origins"`
}

// parseJson loads configuration values from a JSON file into config.
//
// The file path comes from the -c/-config flag, or the CONFIG environment
// variable when no flag is given. Without a path nothing is loaded. A file
// that cannot be read or parsed panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFilePath(os.Args[1:])

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	overlay(&config.HTTPAddr, c.HTTPAddr)
	overlay(&config.DatabaseDriver, c.DatabaseDriver)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	if c.ResetTokenTTL.Duration != 0 {
		config.ResetTokenTTL = c.ResetTokenTTL.Duration
	}
	overlay(&config.ResetBaseURL, c.ResetBaseURL)
	overlay(&config.SMTPHost, c.SMTPHost)
	if c.SMTPPort != 0 {
		config.SMTPPort = c.SMTPPort
	}
	overlay(&config.SMTPUsername, c.SMTPUsername)
	overlay(&config.SMTPPassword, c.SMTPPassword)
	overlay(&config.MailFrom, c.MailFrom)
	overlay(&config.LogLevel, c.LogLevel)
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
