// Package config declares the daemon's command-line surface. Values
// can also come from config files (JSON/YAML/TOML) and environment
// variables; flags take precedence.
package config

import (
	"github.com/alecthomas/kong"

	"github.com/open-sd/opensd/internal/cmd"
)

// LogConfig groups the logging flags.
type LogConfig struct {
	Level   string `short:"l" help:"Log level." enum:"verbose,debug,info,warn,error" default:"warn" env:"OPENSD_LOG_LEVEL"`
	File    string `help:"Write logs to this file in addition to the console." env:"OPENSD_LOG_FILE"`
	RawFile string `help:"Write a hex dump of every HID report to this file." env:"OPENSD_LOG_RAW_FILE"`
}

// CLI is the root command.
type CLI struct {
	Log LogConfig `embed:"" prefix:"log."`

	Config  kong.ConfigFlag  `help:"Load configuration from this file." env:"OPENSD_CONFIG"`
	Version kong.VersionFlag `short:"v" help:"Print version information and quit."`

	Run       cmd.Daemon    `cmd:"" default:"withargs" help:"Run the driver daemon (default)."`
	Install   cmd.Install   `cmd:"" help:"Install the systemd service and udev rules (needs root)."`
	Uninstall cmd.Uninstall `cmd:"" help:"Remove the systemd service and udev rules (needs root)."`
}
