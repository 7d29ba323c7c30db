package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/projstate/internal/version"
)

// RootCmd returns the projstate root command with every subcommand attached.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "projstate",
		Short:   "Save and load lightweight project state",
		Version: version.String(),
		Long: `projstate keeps a rolling session log, a task file and a project registry
under docs/project, archiving each file by date once it grows past its line ceiling.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			root, _ := cmd.Flags().GetString("root")
			verbose, _ := cmd.Flags().GetBool("verbose")
			noColor, _ := cmd.Flags().GetBool("no-color")
			Setup(root, verbose, noColor, cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().String("root", "", "Project root (default: nearest directory containing .git)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log diagnostics to stderr")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	rootCmd.AddCommand(SaveCmd())
	rootCmd.AddCommand(LoadCmd())
	rootCmd.AddCommand(HistoryCmd())
	rootCmd.AddCommand(ConfigCmd())

	return rootCmd
}
