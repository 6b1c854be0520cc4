package tailwind

import (
	"github.com/ngtw-labs/ngtw/internal/engine"
	"github.com/ngtw-labs/ngtw/internal/tree"
	"github.com/ngtw-labs/ngtw/internal/workspace"
)

// Setup patches the build and serve targets of the resolved project and
// provisions tailwind/. It normally runs as a task after Add's install.
func Setup(t *tree.Tree, c *engine.Context) error {
	ws, err := workspace.Load(t)
	if err != nil {
		return err
	}
	project, tg, err := resolveTargets(ws, c.Options.Project)
	if err != nil {
		return err
	}

	ext := SelectStyleExtension(t, c.Options.StyleExtension)
	c.Log.Info().Str("project", project.Name).Str("styleExtension", string(ext)).Msg("Setting up Tailwind")

	applyIntegration(tg, ext, c)
	if err := ws.Save(t); err != nil {
		return err
	}

	_, err = Provision(t, ext, c.Options.Overwrite, c)
	return err
}
