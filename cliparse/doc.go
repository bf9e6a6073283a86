// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8080)
  - DataDir: Directory for persisted JSON documents (default: data)
  - WebDir: Directory of static portal pages (default: web)
  - PortalIP: Address captive-portal probes are redirected to (default: 192.168.4.1)

# CLI Flags

	-p          Server port
	-data       Data directory
	-web        Static portal directory
	-portal-ip  Captive portal address

# Environment Variables

Flags fall back to environment variables:

	PORT      → -p
	DATA_DIR  → -data
	WEB_DIR   → -web
	PORTAL_IP → -portal-ip

CLI flags take precedence over environment variables. Every value has a
default, so the kiosk starts with no configuration at all.
*/
package cliparse
