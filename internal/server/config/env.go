package config

import (
	"errors"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// envFile is loaded before the environment is read. Variables already set in
// the process environment win over the file.
var envFile = ".env"

// parseEnv overlays Config with environment variables.
//
// Recognised keys:
//
//	PORT                             HTTP port; binds ":<PORT>"
//	HTTP_ADDR                        full bind address, wins over PORT
//	DATABASE_DRIVER, DATABASE_DSN    database/sql driver and DSN
//	DB_HOST, DB_USER, DB_PASSWORD, DB_NAME
//	                                 MySQL connection parts, used when DATABASE_DSN is unset
//	                                 and DATABASE_DRIVER is unset or mysql
//	RESET_TOKEN_TTL                  Go duration, e.g. "1h"
//	RESET_BASE_URL                   reset link prefix
//	SMTP_HOST, SMTP_PORT             mail server
//	EMAIL_SENDER, EMAIL_PASSWORD     SMTP login; EMAIL_SENDER is also the From address
//	MAIL_FROM                        From address, wins over EMAIL_SENDER
//	LOG_LEVEL                        debug, info, warn, error
//	ALLOWED_ORIGINS                  comma-separated CORS origins
//
// Malformed numeric or duration values panic, like malformed JSON or flags.
func parseEnv(config *Config) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v := os.Getenv("PORT"); v != "" {
		config.HTTPAddr = ":" + v
	}
	setString(&config.HTTPAddr, "HTTP_ADDR")

	setString(&config.DatabaseDriver, "DATABASE_DRIVER")
	if dsn, ok := mysqlDSNFromEnv(); ok {
		config.DatabaseDriver = "mysql"
		config.DatabaseDSN = dsn
	}
	setString(&config.DatabaseDSN, "DATABASE_DSN")

	if v := os.Getenv("RESET_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.ResetTokenTTL = d
	}
	setString(&config.ResetBaseURL, "RESET_BASE_URL")

	setString(&config.SMTPHost, "SMTP_HOST")
	if v := os.Getenv("SMTP_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		config.SMTPPort = p
	}
	if v := os.Getenv("EMAIL_SENDER"); v != "" {
		config.SMTPUsername = v
		config.MailFrom = v
	}
	setString(&config.SMTPPassword, "EMAIL_PASSWORD")
	setString(&config.MailFrom, "MAIL_FROM")

	setString(&config.LogLevel, "LOG_LEVEL")
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		config.AllowedOrigins = splitList(v)
	}
}

// mysqlDSNFromEnv assembles a MySQL DSN from DB_HOST and friends. It reports
// false when DB_HOST is unset, DATABASE_DSN is given explicitly, or
// DATABASE_DRIVER names a driver other than mysql.
func mysqlDSNFromEnv() (string, bool) {
	host := os.Getenv("DB_HOST")
	if host == "" || os.Getenv("DATABASE_DSN") != "" {
		return "", false
	}
	if d := os.Getenv("DATABASE_DRIVER"); d != "" && d != "mysql" {
		return "", false
	}
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, "3306")
	}

	c := mysql.NewConfig()
	c.Net = "tcp"
	c.Addr = host
	c.User = getEnv("DB_USER", "root")
	c.Passwd = os.Getenv("DB_PASSWORD")
	c.DBName = getEnv("DB_NAME", "mediaxis")
	c.ParseTime = true
	return c.FormatDSN(), true
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
