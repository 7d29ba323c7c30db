package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/projstate/internal/wire"
)

// SaveCmd returns the save command
func SaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Snapshot project state into docs/project",
		Long: `Collect the git branch, working tree changes, recent commits and project
features, then update session-context.md, todo.json and projects.json.

Files over their line ceiling are copied into a dated archive slot first:
  docs/project/session-logs/session-context-YYYYMMDD-NN.md
  docs/project/todo-logs/todo-YYYYMMDD-NN.json
  docs/project/projects-logs/projects-YYYYMMDD-NN.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.SaveAdapter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer wire.Close()
			return adapter.Save(NewContext())
		},
	}
}
