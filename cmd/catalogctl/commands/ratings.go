package commands

import (
	"fmt"

	"catalog/internal/app"

	"github.com/spf13/cobra"
)

// reconcileRatingsCmd recomputes stored product ratings
var reconcileRatingsCmd = &cobra.Command{
	Use:   "reconcile-ratings",
	Short: "Recompute every product's stored rating",
	Long: `Recompute each product's rating from its active ratings, one product per transaction.
This is the same work the background job performs on its schedule.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			n, err := a.Reviews.RecomputeAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("reconciled %d products before failing: %w", n, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reconciled %d products\n", n)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(reconcileRatingsCmd)
}
