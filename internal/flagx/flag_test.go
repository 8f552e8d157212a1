package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{name: "separate value", args: []string{"-d", "postgres", "-l", "de"}, allowed: []string{"-d"}, want: []string{"-d", "postgres"}},
		{name: "equals form", args: []string{"-dsn=file:dash.db", "-v", "argon2"}, allowed: []string{"-dsn"}, want: []string{"-dsn=file:dash.db"}},
		{name: "unknown flags ignored", args: []string{"-x", "1", "--y=2", "positional"}, allowed: []string{"-d"}, want: []string{}},
		{name: "flag without value at the end", args: []string{"-l"}, allowed: []string{"-l"}, want: []string{"-l"}},
		{name: "next flag is not taken as value", args: []string{"-v", "-log-level", "debug"}, allowed: []string{"-v", "-log-level"}, want: []string{"-v", "-log-level", "debug"}},
		{name: "dash inside equals value", args: []string{"--config=--odd.json"}, allowed: []string{"--config"}, want: []string{"--config=--odd.json"}},
		{name: "order preserved", args: []string{"-d", "memory", "-c", "a.json", "-d", "sqlite"}, allowed: []string{"-d", "-c"}, want: []string{"-d", "memory", "-c", "a.json", "-d", "sqlite"}},
		{name: "empty args", args: []string{}, allowed: []string{"-d"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "short -c with value", args: []string{"-c", "/etc/rbacdash/short.json"}, want: "/etc/rbacdash/short.json"},
		{name: "long -config with value", args: []string{"-config", "/etc/rbacdash/long.json"}, want: "/etc/rbacdash/long.json"},
		{name: "equals form", args: []string{"--config=dash.json", "-d", "memory"}, want: "dash.json"},
		{name: "unknown flags are ignored", args: []string{"-d", "sqlite", "-l", "de"}, want: ""},
		{name: "last one wins", args: []string{"-c", "/path/1.json", "-config", "/path/2.json"}, want: "/path/2.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigPath(tt.args))
		})
	}
}
