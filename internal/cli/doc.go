// Package cli defines the Cobra command tree for the ngtw CLI. Each file
// registers one top-level command (add, setup, remove, config, version) with
// the root command. Flow commands only assemble options and hand them to the
// engine; the flows themselves live in internal/tailwind.
package cli
