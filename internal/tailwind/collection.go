package tailwind

import (
	"github.com/ngtw-labs/ngtw/internal/engine"
)

// Flow names.
const (
	AddFlow    = "ng-add"
	SetupFlow  = "ng-add-setup"
	RemoveFlow = "ng-remove"
)

// Builder identifiers written to the build and serve targets.
const (
	CustomBrowserBuilder    = "@angular-builders/custom-webpack:browser"
	CustomDevServerBuilder  = "@angular-builders/custom-webpack:dev-server"
	DefaultBrowserBuilder   = "@angular-devkit/build-angular:browser"
	DefaultDevServerBuilder = "@angular-devkit/build-angular:dev-server"
)

// Package names declared in package.json.
const (
	CustomWebpackPackage = "@angular-builders/custom-webpack"
	TailwindPackage      = "tailwindcss"
)

// Provisioned paths, relative to the workspace root.
const (
	ProvisionDir      = "tailwind"
	WebpackConfigPath = "tailwind/tailwind.webpack.js"
	ConfigPath        = "tailwind/tailwind.config.js"
	styleBaseName     = "tailwind/tailwind"
)

// Register adds the add, setup, and remove flows to c.
func Register(c *engine.Collection) {
	c.Register(engine.Description{
		Name:    AddFlow,
		Summary: "Declare Tailwind dependencies and schedule install and setup",
		Flow:    Add,
	})
	c.Register(engine.Description{
		Name:    SetupFlow,
		Summary: "Wire Tailwind into angular.json and provision tailwind/",
		Flow:    Setup,
	})
	c.Register(engine.Description{
		Name:    RemoveFlow,
		Summary: "Remove the Tailwind integration",
		Flow:    Remove,
	})
}

// NewCollection returns a collection holding the Tailwind flows.
func NewCollection() *engine.Collection {
	c := engine.NewCollection()
	Register(c)
	return c
}
