package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/mediaxis/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string       HTTP bind address (e.g., ":5000")
//	-d string       database DSN
//	-driver string  database/sql driver, "pgx" or "mysql"
//	-t duration     reset token lifetime (e.g., "1h")
//	-u string       reset link base URL
//	-l string       log level
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, so -c/-config and foreign flags do not trip the parser.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-driver", "-t", "-u", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DatabaseDriver, "driver", config.DatabaseDriver, "database driver (pgx or mysql)")
	fs.DurationVar(&config.ResetTokenTTL, "t", config.ResetTokenTTL, "password reset token lifetime")
	fs.StringVar(&config.ResetBaseURL, "u", config.ResetBaseURL, "password reset link base URL")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
