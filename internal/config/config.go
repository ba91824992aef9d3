// Package config handles the parsing and validation of application configuration
// from command-line arguments and environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/scpsl-tools/slbind/internal/logger"
	"github.com/scpsl-tools/slbind/internal/vars"
)

// Config represents the complete application flags configuration.
type Config struct {
	Server   Server        `group:"Server Options" env-namespace:"SLBIND"`
	Bindings Bindings      `group:"Bindings Options" namespace:"bindings" env-namespace:"SLBIND_BINDINGS"`
	API      API           `group:"Status API Options" namespace:"api" env-namespace:"SLBIND_API"`
	Auth     Auth          `group:"Auth Options" namespace:"auth" env-namespace:"SLBIND_AUTH"`
	Logger   logger.Config `group:"Logger Options" namespace:"log" env-namespace:"SLBIND_LOG"`

	Version bool `short:"v" long:"version" description:"Print version and build info"`
}

// Server holds web server configuration.
type Server struct {
	Address     string `short:"l" long:"address" env:"LISTEN_ADDRESS" description:"Server listen address" default:":8080"`
	AuthToken   string `short:"t" long:"auth-token" env:"AUTH_TOKEN" description:"Webhook authentication token"`
	MaxBodySize int64  `long:"max-body-size" env:"MAX_BODY_SIZE" description:"Max body size for incoming requests" default:"4096"`
	TrustProxy  bool   `long:"trust-proxy" env:"TRUST_PROXY" description:"Trust X-Forwarded-For headers"`
}

// Bindings holds the per-group binding storage configuration.
type Bindings struct {
	Dir string `short:"d" long:"dir" env:"DIR" description:"Directory with per-group binding files" default:"bindings"`
}

// API holds SCP:SL status API configuration.
type API struct {
	URL     string        `long:"url" env:"URL" description:"SCP:SL server info endpoint" default:"https://api.scpslgame.com/serverinfo.php"`
	Timeout time.Duration `long:"timeout" env:"TIMEOUT" description:"Per-request query timeout" default:"15s"`
}

// Auth holds the group administrator whitelist.
type Auth struct {
	Admins []string `short:"a" long:"admin" env:"ADMINS" description:"User IDs allowed to manage bindings" env-delim:","`
}

// Parse reads the configuration from flags and environment variables.
// It terminates the application if the configuration is invalid or if the help flag is invoked.
func Parse() *Config {
	var cfg Config
	parser := flags.NewParser(&cfg, flags.Default)
	parser.NamespaceDelimiter = "-"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}

	if cfg.Version {
		vars.Print()
		os.Exit(0)
	}

	if cfg.Server.AuthToken == "" {
		fmt.Fprintln(os.Stderr,
			"Required flag `-t, --auth-token' or environment variable `SLBIND_AUTH_TOKEN` was not specified!")
		os.Exit(1)
	}

	return &cfg
}
