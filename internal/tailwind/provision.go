package tailwind

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"github.com/ngtw-labs/ngtw/internal/engine"
	"github.com/ngtw-labs/ngtw/internal/options"
	"github.com/ngtw-labs/ngtw/internal/tree"
)

//go:embed files/*.tmpl
var templateFS embed.FS

const templatesDir = "files"

// templateData holds the placeholders available to provisioned templates.
type templateData struct {
	StyleExtension options.StyleExtension
	ConfigPath     string
}

// ProvisionResult lists what Provision did, as tree paths.
type ProvisionResult struct {
	Written []string
	Skipped []string
}

// Provision renders the embedded templates into tailwind/. Existing files are
// skipped unless overwrite is set. When ext is scss, tailwind/tailwind.css is
// renamed to tailwind/tailwind.scss afterwards.
func Provision(t *tree.Tree, ext options.StyleExtension, overwrite bool, c *engine.Context) (*ProvisionResult, error) {
	entries, err := fs.ReadDir(templateFS, templatesDir)
	if err != nil {
		return nil, fmt.Errorf("reading templates: %w", err)
	}

	data := templateData{StyleExtension: ext, ConfigPath: ConfigPath}
	result := &ProvisionResult{}
	created := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		outName := strings.TrimSuffix(entry.Name(), ".tmpl")
		dest := tree.Clean(path.Join(ProvisionDir, outName))

		if t.Exists(dest) && !overwrite {
			result.Skipped = append(result.Skipped, dest)
			c.Log.Info().Str("file", dest).Msg("Exists, skipping")
			continue
		}

		content, err := render(entry.Name(), data)
		if err != nil {
			return nil, err
		}
		if !t.Exists(dest) {
			created[dest] = true
		}
		if err := t.Write(dest, content); err != nil {
			return nil, fmt.Errorf("writing %s: %w", dest, err)
		}
		result.Written = append(result.Written, dest)
		c.Log.Info().Str("file", dest).Msg("Provisioned")
	}

	if ext == options.SCSS {
		if err := renameStyleFile(t, ext, overwrite, created, result, c); err != nil {
			return nil, err
		}
	}
	if err := retargetWebpackConfig(t, ext, result, c); err != nil {
		return nil, err
	}
	return result, nil
}

// retargetWebpackConfig re-renders a skipped webpack config that was generated
// for the other style extension and has not been edited since. An edited file
// is left alone.
func retargetWebpackConfig(t *tree.Tree, ext options.StyleExtension, result *ProvisionResult, c *engine.Context) error {
	dest := tree.Clean(WebpackConfigPath)
	if !hasPath(result.Skipped, dest) {
		return nil
	}
	current, err := t.Read(dest)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dest, err)
	}

	name := path.Base(WebpackConfigPath) + ".tmpl"
	stale, err := render(name, templateData{StyleExtension: otherExtension(ext), ConfigPath: ConfigPath})
	if err != nil {
		return err
	}
	if !bytes.Equal(current, stale) {
		return nil
	}

	fresh, err := render(name, templateData{StyleExtension: ext, ConfigPath: ConfigPath})
	if err != nil {
		return err
	}
	if err := t.Overwrite(dest, fresh); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	result.Skipped = removePath(result.Skipped, dest)
	result.Written = append(result.Written, dest)
	c.Log.Info().Str("file", dest).Str("styleExtension", string(ext)).Msg("Regenerated webpack config for the new style extension")
	return nil
}

// renameStyleFile moves the default tailwind.css to the selected extension.
func renameStyleFile(t *tree.Tree, ext options.StyleExtension, overwrite bool, created map[string]bool, result *ProvisionResult, c *engine.Context) error {
	from := tree.Clean(StylePath(options.CSS))
	to := tree.Clean(StylePath(ext))
	if !t.Exists(from) {
		return nil
	}

	if t.Exists(to) {
		if !overwrite {
			// Keep the user's file; drop the css copy only if this run wrote it.
			if created[from] {
				if err := t.Delete(from); err != nil {
					return fmt.Errorf("deleting %s: %w", from, err)
				}
				result.Written = removePath(result.Written, from)
			}
			result.Skipped = append(result.Skipped, to)
			return nil
		}
		if err := t.Delete(to); err != nil {
			return fmt.Errorf("deleting %s: %w", to, err)
		}
	}

	if err := t.Rename(from, to); err != nil {
		return fmt.Errorf("renaming %s: %w", from, err)
	}
	for i, p := range result.Written {
		if p == from {
			result.Written[i] = to
		}
	}
	c.Log.Info().Str("from", from).Str("to", to).Msg("Renamed style file")
	return nil
}

func render(name string, data templateData) ([]byte, error) {
	raw, err := fs.ReadFile(templateFS, path.Join(templatesDir, name))
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}
	tmpl, err := template.New(name).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func removePath(paths []string, p string) []string {
	out := paths[:0]
	for _, q := range paths {
		if q != p {
			out = append(out, q)
		}
	}
	return out
}

func hasPath(paths []string, p string) bool {
	for _, q := range paths {
		if q == p {
			return true
		}
	}
	return false
}
