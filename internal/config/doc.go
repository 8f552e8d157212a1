// Package config loads runtime configuration for the dashboard.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string           storage driver: sqlite, postgres or memory
//	-dsn string         database DSN (file path for sqlite)
//	-l string           locale used to order names
//	-v string           credential verifier: plain or argon2
//	-log-level string   debug, info, warn or error
//
// # JSON schema
//
//	{
//	  "storage_driver": "sqlite",
//	  "database_dsn": "dashboard.db",
//	  "session_key": "rbac-storage",
//	  "snapshot_key": "users",
//	  "locale": "en",
//	  "verifier": "plain",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// Keys missing from the file keep their previous value. Bad JSON or flags
// panic.
package config
