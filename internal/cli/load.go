package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/projstate/internal/wire"
)

// LoadCmd returns the load command
func LoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Show the saved project state",
		Long:  "Show git information, project configuration, active tasks, the latest session entry and the last recorded save. Nothing is written.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.LoadAdapter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer wire.Close()
			return adapter.Load(NewContext())
		},
	}
}
