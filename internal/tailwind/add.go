package tailwind

import (
	"errors"

	"github.com/ngtw-labs/ngtw/internal/dependencies"
	"github.com/ngtw-labs/ngtw/internal/engine"
	"github.com/ngtw-labs/ngtw/internal/tasks"
	"github.com/ngtw-labs/ngtw/internal/tree"
	"github.com/ngtw-labs/ngtw/internal/workspace"
)

// Add declares the Tailwind dev dependencies, then schedules a package install
// followed by the setup flow.
func Add(t *tree.Tree, c *engine.Context) error {
	// Fail on a broken angular.json before package.json is touched.
	ws, err := workspace.Load(t)
	if err != nil {
		return err
	}
	if _, _, err := resolveTargets(ws, c.Options.Project); err != nil {
		return err
	}

	pkg, err := loadPackageJSON(t)
	if err != nil {
		return err
	}

	opts := c.Options.WithDefaults()
	deps := []dependencies.Dependency{
		{Type: dependencies.Dev, Name: CustomWebpackPackage, Version: opts.CustomWebpackVersion, Overwrite: true},
		{Type: dependencies.Dev, Name: TailwindPackage, Version: opts.TailwindVersion, Overwrite: true},
	}
	for _, dep := range deps {
		if prev, ok := pkg.Get(dep.Name); ok && prev.Version != dep.Version {
			c.Log.Info().Str("name", dep.Name).Str("from", prev.Version).Str("to", dep.Version).Msg("Replacing dependency version")
		}
		changed, err := pkg.Add(dep)
		if err != nil {
			return err
		}
		if changed {
			c.Log.Info().Str("name", dep.Name).Str("version", dep.Version).Msg("Added dev dependency")
		} else {
			c.Log.Debug().Str("name", dep.Name).Msg("Dev dependency already declared")
		}
	}
	if err := pkg.Save(t); err != nil {
		return err
	}

	var after []tasks.ID
	if opts.SkipInstall {
		c.Log.Info().Msg("Skipping package install")
	} else {
		after = append(after, c.AddTask(tasks.NodePackageInstall{PackageManager: opts.PackageManager}))
	}
	c.AddTask(tasks.RunFlow{Flow: SetupFlow, Options: c.Options}, after...)
	return nil
}

func loadPackageJSON(t *tree.Tree) (*dependencies.Manifest, error) {
	pkg, err := dependencies.Load(t)
	if errors.Is(err, dependencies.ErrNotFound) {
		return nil, &workspace.ConfigurationError{Path: "package.json", Reason: "file not found"}
	}
	return pkg, err
}
