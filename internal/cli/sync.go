package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Generate reminders from vehicle, renewal and document dates",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := reminderSvc.Sync(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("created %d, updated %d, unchanged %d, skipped %d\n",
			res.Created, res.Updated, res.Unchanged, res.Skipped)
		return nil
	},
}
