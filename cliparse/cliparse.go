package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port     int
	DataDir  string
	WebDir   string
	PortalIP string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("scavenged", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DataDir, "data", "", "Directory for persisted JSON documents")
	fs.StringVar(&cfg.WebDir, "web", "", "Directory of static portal pages")
	fs.StringVar(&cfg.PortalIP, "portal-ip", "", "Address the captive redirector points probes at")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8080 // default
		}
	}

	if cfg.DataDir == "" {
		cfg.DataDir = os.Getenv("DATA_DIR")
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}

	if cfg.WebDir == "" {
		cfg.WebDir = os.Getenv("WEB_DIR")
	}
	if cfg.WebDir == "" {
		cfg.WebDir = "web"
	}

	if cfg.PortalIP == "" {
		cfg.PortalIP = os.Getenv("PORTAL_IP")
	}
	if cfg.PortalIP == "" {
		cfg.PortalIP = "192.168.4.1"
	}

	return cfg, nil
}
