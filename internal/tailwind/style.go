package tailwind

import (
	"github.com/ngtw-labs/ngtw/internal/options"
	"github.com/ngtw-labs/ngtw/internal/tree"
)

// Global style entry points checked when choosing the extension.
const (
	cssEntryPoint  = "/src/styles.css"
	scssEntryPoint = "/src/styles.scss"
)

// SelectStyleExtension decides the extension of the provisioned style file.
// An existing src/styles.css wins, then src/styles.scss, then the caller's
// preference, then css.
func SelectStyleExtension(t *tree.Tree, preferred options.StyleExtension) options.StyleExtension {
	switch {
	case t.Exists(cssEntryPoint):
		return options.CSS
	case t.Exists(scssEntryPoint):
		return options.SCSS
	case preferred != "":
		return preferred
	default:
		return options.CSS
	}
}

// StylePath returns the provisioned style file for ext, e.g. tailwind/tailwind.scss.
func StylePath(ext options.StyleExtension) string {
	return styleBaseName + "." + string(ext)
}

// otherExtension returns the extension ext replaces when a workspace switches.
func otherExtension(ext options.StyleExtension) options.StyleExtension {
	if ext == options.SCSS {
		return options.CSS
	}
	return options.SCSS
}
