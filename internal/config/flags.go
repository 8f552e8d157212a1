package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/rbacdash/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. Only the
// flags listed here are looked at, so -c/-config does not trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-dsn", "-l", "-v", "-log-level"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorageDriver, "d", cfg.StorageDriver, "storage driver (sqlite, postgres, memory)")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.Locale, "l", cfg.Locale, "locale for name ordering")
	fs.StringVar(&cfg.Verifier, "v", cfg.Verifier, "credential verifier (plain, argon2)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
