package tailwind

import (
	"github.com/ngtw-labs/ngtw/internal/engine"
	"github.com/ngtw-labs/ngtw/internal/jsondoc"
	"github.com/ngtw-labs/ngtw/internal/options"
	"github.com/ngtw-labs/ngtw/internal/workspace"
)

const webpackMergeHint = "add the module.rules from " + WebpackConfigPath +
	" to the webpack config your customWebpackConfig points at"

// targets are the two architect entries the integration touches.
type targets struct {
	build *workspace.Target
	serve *workspace.Target
}

// resolveTargets finds the project and checks build and serve both exist
// before anything is mutated.
func resolveTargets(ws *workspace.Workspace, projectName string) (*workspace.Project, targets, error) {
	project, err := ws.ResolveProject(projectName)
	if err != nil {
		return nil, targets{}, err
	}
	build, err := project.Target("build")
	if err != nil {
		return nil, targets{}, err
	}
	serve, err := project.Target("serve")
	if err != nil {
		return nil, targets{}, err
	}
	return project, targets{build: build, serve: serve}, nil
}

// applyIntegration points build and serve at the custom-webpack builders and
// references the Tailwind style file from the build target.
func applyIntegration(tg targets, ext options.StyleExtension, c *engine.Context) {
	c.Log.Debug().Str("build", tg.build.Builder()).Str("serve", tg.serve.Builder()).Msg("Current builders")
	tg.build.SetBuilder(CustomBrowserBuilder)
	tg.serve.SetBuilder(CustomDevServerBuilder)
	c.Log.Info().Str("build", CustomBrowserBuilder).Str("serve", CustomDevServerBuilder).Msg("Switched builders")

	ensureWebpackConfig(tg.build, c)
	ensureWebpackConfig(tg.serve, c)

	stale := StylePath(otherExtension(ext))
	if n := removeStyles(tg.build.Options(), stale); n > 0 {
		c.Log.Info().Str("target", tg.build.Path).Str("style", stale).Msg("Dropped style reference for the other extension")
	}

	style := StylePath(ext)
	if addStyle(tg.build.Options(), style) {
		c.Log.Info().Str("target", tg.build.Path).Str("style", style).Msg("Added style reference")
	} else {
		c.Log.Debug().Str("style", style).Msg("Style reference already present")
	}
}

// removeIntegration restores the default builders and strips what
// applyIntegration injected. A customWebpackConfig pointing anywhere else
// belongs to the user and stays. It reports whether the manifest changed.
func removeIntegration(tg targets, c *engine.Context) bool {
	changed := false
	restore := map[*workspace.Target]string{
		tg.build: DefaultBrowserBuilder,
		tg.serve: DefaultDevServerBuilder,
	}
	for _, t := range []*workspace.Target{tg.build, tg.serve} {
		if t.Builder() == restore[t] {
			continue
		}
		t.SetBuilder(restore[t])
		changed = true
		c.Log.Info().Str("target", t.Path).Str("builder", restore[t]).Msg("Restored default builder")
	}

	for _, t := range []*workspace.Target{tg.build, tg.serve} {
		opts, ok := t.LookupOptions()
		if !ok {
			continue
		}
		existing, ok := opts.Get("customWebpackConfig")
		if !ok {
			continue
		}
		if webpackPath(existing) != WebpackConfigPath {
			c.Log.Info().Str("target", t.Path).Msg("Keeping user customWebpackConfig")
			continue
		}
		opts.Delete("customWebpackConfig")
		changed = true
		c.Log.Info().Str("target", t.Path).Msg("Removed customWebpackConfig")
	}

	if opts, ok := tg.build.LookupOptions(); ok {
		if n := removeStyles(opts, StylePath(options.CSS), StylePath(options.SCSS)); n > 0 {
			changed = true
			c.Log.Info().Str("target", tg.build.Path).Int("removed", n).Msg("Removed style reference")
		}
	}
	return changed
}

func ensureWebpackConfig(t *workspace.Target, c *engine.Context) {
	opts := t.Options()
	existing, ok := opts.Get("customWebpackConfig")
	if !ok {
		cfg := jsondoc.NewObject()
		cfg.Set("path", WebpackConfigPath)
		opts.Set("customWebpackConfig", cfg)
		c.Log.Info().Str("target", t.Path).Str("path", WebpackConfigPath).Msg("Set customWebpackConfig")
		return
	}
	if webpackPath(existing) == WebpackConfigPath {
		c.Log.Debug().Str("target", t.Path).Msg("customWebpackConfig already set")
		return
	}
	c.Warn("customWebpackConfig already set; merge the Tailwind webpack config manually", map[string]interface{}{
		"target":   t.Path,
		"existing": webpackPath(existing),
		"merge":    webpackMergeHint,
	})
}

// webpackPath extracts the configured path from a customWebpackConfig value.
func webpackPath(v interface{}) string {
	if obj, ok := v.(*jsondoc.Object); ok {
		p, _ := obj.String("path")
		return p
	}
	return ""
}

// styleInput returns the file a styles entry refers to. Entries are either
// plain strings or objects with an "input" key.
func styleInput(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case *jsondoc.Object:
		in, _ := val.String("input")
		return in
	default:
		return ""
	}
}

// addStyle appends style to options.styles unless already referenced.
func addStyle(opts *jsondoc.Object, style string) bool {
	var styles []interface{}
	if v, ok := opts.Get("styles"); ok {
		styles, _ = v.([]interface{})
	}
	for _, s := range styles {
		if styleInput(s) == style {
			return false
		}
	}
	opts.Set("styles", append(styles, style))
	return true
}

// removeStyles filters the given references out of options.styles and returns
// how many entries were dropped.
func removeStyles(opts *jsondoc.Object, refs ...string) int {
	v, ok := opts.Get("styles")
	if !ok {
		return 0
	}
	styles, ok := v.([]interface{})
	if !ok {
		return 0
	}

	drop := make(map[string]bool, len(refs))
	for _, r := range refs {
		drop[r] = true
	}
	kept := make([]interface{}, 0, len(styles))
	for _, s := range styles {
		if !drop[styleInput(s)] {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(styles) {
		return 0
	}
	opts.Set("styles", kept)
	return len(styles) - len(kept)
}
