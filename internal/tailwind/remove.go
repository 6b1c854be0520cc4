package tailwind

import (
	"fmt"

	"github.com/ngtw-labs/ngtw/internal/engine"
	"github.com/ngtw-labs/ngtw/internal/tasks"
	"github.com/ngtw-labs/ngtw/internal/tree"
	"github.com/ngtw-labs/ngtw/internal/workspace"
)

// Remove takes the integration out again: dependencies, builders, injected
// options, the style reference, and tailwind/. Running it on a workspace
// without the integration changes nothing.
func Remove(t *tree.Tree, c *engine.Context) error {
	pkg, err := loadPackageJSON(t)
	if err != nil {
		return err
	}
	removed := false
	for _, name := range []string{CustomWebpackPackage, TailwindPackage} {
		if pkg.Remove(name) {
			removed = true
			c.Log.Info().Str("name", name).Msg("Removed dependency")
		}
	}
	if removed {
		if err := pkg.Save(t); err != nil {
			return err
		}
		opts := c.Options.WithDefaults()
		if opts.SkipInstall {
			c.Log.Info().Msg("Skipping package install")
		} else {
			c.AddTask(tasks.NodePackageInstall{PackageManager: opts.PackageManager})
		}
	}

	ws, err := workspace.Load(t)
	if err != nil {
		return err
	}
	_, tg, err := resolveTargets(ws, c.Options.Project)
	if err != nil {
		return err
	}
	if removeIntegration(tg, c) {
		if err := ws.Save(t); err != nil {
			return err
		}
	} else {
		c.Log.Debug().Msg("angular.json already clean")
	}

	if t.HasDir(ProvisionDir) {
		if err := t.Delete(ProvisionDir); err != nil {
			return fmt.Errorf("deleting %s: %w", ProvisionDir, err)
		}
		c.Log.Info().Str("dir", ProvisionDir).Msg("Deleted provisioned files")
	}
	return nil
}
