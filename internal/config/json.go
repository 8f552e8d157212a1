package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/rbacdash/internal/flagx"
)

// JsonConfig is the on-disk layout. Pointers tell absent keys from empty
// values.
type JsonConfig struct {
	StorageDriver *string `json:"storage_driver"`
	DatabaseDSN   *string `json:"database_dsn"`
	SessionKey    *string `json:"session_key"`
	SnapshotKey   *string `json:"snapshot_key"`
	Locale        *string `json:"locale"`
	Verifier      *string `json:"verifier"`
	LogLevel      *string `json:"log_level"`
	LogFormat     *string `json:"log_format"`
}

// parseJson overlays cfg with the file named by -c/-config. It panics on
// read or unmarshal errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath(os.Args[1:])
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

	set(&cfg.StorageDriver, jc.StorageDriver)
	set(&cfg.DatabaseDSN, jc.DatabaseDSN)
	set(&cfg.SessionKey, jc.SessionKey)
	set(&cfg.SnapshotKey, jc.SnapshotKey)
	set(&cfg.Locale, jc.Locale)
	set(&cfg.Verifier, jc.Verifier)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.LogFormat, jc.LogFormat)
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
