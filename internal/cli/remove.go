package cli

import (
	"github.com/ngtw-labs/ngtw/internal/tailwind"
	"github.com/spf13/cobra"
)

var removeFlags flowFlags

var removeCmd = &cobra.Command{
	Use:     "remove",
	Aliases: []string{"rm"},
	Short:   "Remove the Tailwind integration",
	Long: `Remove drops the Tailwind dev dependencies, restores the default Angular builders,
strips the injected customWebpackConfig and style reference, and deletes tailwind/.
A customWebpackConfig pointing at another file is left in place.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFlow(cmd, tailwind.RemoveFlow, &removeFlags)
	},
}

func init() {
	removeFlags.register(removeCmd)
	rootCmd.AddCommand(removeCmd)
}
