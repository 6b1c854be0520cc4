package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ngtw-labs/ngtw/internal/branding"
	"github.com/ngtw-labs/ngtw/internal/config"
	"github.com/ngtw-labs/ngtw/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbosity int
	quiet     bool
	workDir   string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` wires Tailwind CSS into an Angular workspace: it declares the
dev dependencies, switches the build and serve targets to the custom-webpack builders,
and provisions the Tailwind config files under tailwind/.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v debug, -vv trace)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log warnings and errors")
	rootCmd.PersistentFlags().StringVarP(&workDir, "dir", "C", ".", "Angular workspace root")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// newLogger builds the diagnostic logger for cmd from the persistent flags.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	return logging.Setup(cmd.ErrOrStderr(), verbosity, quiet)
}

// workspaceDir resolves --dir to an absolute path.
func workspaceDir() (string, error) {
	dir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving workspace directory %s: %w", workDir, err)
	}
	return dir, nil
}
