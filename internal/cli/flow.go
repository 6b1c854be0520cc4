package cli

import (
	"fmt"

	"github.com/ngtw-labs/ngtw/internal/config"
	"github.com/ngtw-labs/ngtw/internal/engine"
	"github.com/ngtw-labs/ngtw/internal/logging"
	"github.com/ngtw-labs/ngtw/internal/options"
	"github.com/ngtw-labs/ngtw/internal/tailwind"
	"github.com/spf13/cobra"
)

// flowFlags are the option flags shared by add, setup, and remove.
type flowFlags struct {
	project              string
	tailwindVersion      string
	customWebpackVersion string
	styleExtension       string
	packageManager       string
	optionsFile          string
	overwrite            bool
	skipInstall          bool
	dryRun               bool
}

func (f *flowFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.project, "project", "p", "", "Project in angular.json (default: defaultProject, then the first project)")
	fl.StringVar(&f.tailwindVersion, "tailwind-version", "", "Version range for tailwindcss")
	fl.StringVar(&f.customWebpackVersion, "custom-webpack-version", "", "Version range for @angular-builders/custom-webpack")
	fl.StringVar(&f.styleExtension, "style-extension", "", "Extension of the Tailwind style file (css or scss)")
	fl.StringVar(&f.packageManager, "package-manager", "", "Package manager for the install step (npm, yarn, pnpm)")
	fl.StringVar(&f.optionsFile, "options-file", "", "YAML file with flow options")
	fl.BoolVar(&f.overwrite, "overwrite", false, "Overwrite existing files under tailwind/")
	fl.BoolVar(&f.skipInstall, "skip-install", false, "Do not run the package manager")
	fl.BoolVar(&f.dryRun, "dry-run", false, "Print the changes without writing them")
}

// options layers built-in defaults, user config, the options file, and the
// flags the user actually set, in that order. Each layer only overrides the
// keys it names.
func (f *flowFlags) options(cmd *cobra.Command) (options.Options, error) {
	opts := config.Options().WithDefaults()

	if f.optionsFile != "" {
		fromFile, err := options.LoadFile(f.optionsFile)
		if err != nil {
			return options.Options{}, err
		}
		opts = fromFile.Apply(opts)
	}

	return f.layer(cmd).Apply(opts), nil
}

// flagKeys maps flag names to the option keys they set.
var flagKeys = map[string]string{
	"project":                options.KeyProject,
	"tailwind-version":       options.KeyTailwindVersion,
	"custom-webpack-version": options.KeyCustomWebpackVersion,
	"style-extension":        options.KeyStyleExtension,
	"package-manager":        options.KeyPackageManager,
	"overwrite":              options.KeyOverwrite,
	"skip-install":           options.KeySkipInstall,
}

// layer turns the flags changed on cmd into an options layer.
func (f *flowFlags) layer(cmd *cobra.Command) options.Layer {
	values := options.Options{
		Project:              f.project,
		TailwindVersion:      f.tailwindVersion,
		CustomWebpackVersion: f.customWebpackVersion,
		StyleExtension:       options.StyleExtension(f.styleExtension),
		PackageManager:       f.packageManager,
		Overwrite:            f.overwrite,
		SkipInstall:          f.skipInstall,
	}
	var keys []string
	for flag, key := range flagKeys {
		if cmd.Flags().Changed(flag) {
			keys = append(keys, key)
		}
	}
	return options.NewLayer(values, keys...)
}

// runFlow executes the named flow against the workspace given by --dir and
// reports warnings on the command's output.
func runFlow(cmd *cobra.Command, name string, f *flowFlags) error {
	opts, err := f.options(cmd)
	if err != nil {
		return err
	}
	dir, err := workspaceDir()
	if err != nil {
		return err
	}

	log := logging.Component(newLogger(cmd), "tailwind")
	eng := engine.New(tailwind.NewCollection(), dir, log)
	eng.DryRun = f.dryRun
	eng.Out = cmd.OutOrStdout()

	if err := eng.RunFlow(cmd.Context(), name, opts); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if warnings := eng.Warnings(); len(warnings) > 0 {
		fmt.Fprintf(out, "\n%d warning(s) need manual attention:\n", len(warnings))
		for _, w := range warnings {
			fmt.Fprintf(out, "  - %s\n", w)
		}
	}
	if f.dryRun {
		fmt.Fprintln(out, "Dry run: no changes were written.")
	}
	return nil
}
