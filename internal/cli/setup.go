package cli

import (
	"github.com/ngtw-labs/ngtw/internal/tailwind"
	"github.com/spf13/cobra"
)

var setupFlags flowFlags

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Wire Tailwind into angular.json and provision tailwind/",
	Long: `Setup runs only the workspace half of add. Use it when the dependencies are
already installed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFlow(cmd, tailwind.SetupFlow, &setupFlags)
	},
}

func init() {
	setupFlags.register(setupCmd)
	rootCmd.AddCommand(setupCmd)
}
