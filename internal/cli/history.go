package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/projstate/internal/wire"
)

const defaultHistoryLimit = 10

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded saves",
		Long:  "List saves recorded in .projstate/history.db, newest first (default 10).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			if limit <= 0 {
				limit = defaultHistoryLimit
			}

			adapter, err := wire.HistoryAdapter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer wire.Close()
			return adapter.List(NewContext(), limit)
		},
	}
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit, "Maximum number of saves to show")
	return cmd
}
