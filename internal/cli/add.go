package cli

import (
	"github.com/ngtw-labs/ngtw/internal/tailwind"
	"github.com/spf13/cobra"
)

var addFlags flowFlags

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add Tailwind CSS to the workspace",
	Long: `Add declares tailwindcss and @angular-builders/custom-webpack as dev dependencies,
installs them, and then runs setup: the build and serve targets switch to the
custom-webpack builders, the Tailwind style file is added to the build styles,
and tailwind/ is provisioned.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFlow(cmd, tailwind.AddFlow, &addFlags)
	},
}

func init() {
	addFlags.register(addCmd)
	rootCmd.AddCommand(addCmd)
}
