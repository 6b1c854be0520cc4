// Package config manages user-level settings stored at ~/.ngtw/config.yaml.
// The settings supply defaults for flow options (version ranges, package
// manager, install skipping) that command-line flags override.
package config
