package commands

import (
	"fmt"

	"catalog/internal/app"
	"catalog/pkg/database"

	"github.com/spf13/cobra"
)

var printSchema bool

// migrateCmd applies the catalog schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the catalog schema",
	Long: `Create the catalog tables and indexes if they do not exist. The schema is idempotent
and safe to apply repeatedly.

Examples:
  catalogctl migrate --db postgres://localhost/catalog
  catalogctl migrate --print          # Print the DDL without connecting`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if printSchema {
			fmt.Fprint(cmd.OutOrStdout(), database.Schema())
			return nil
		}
		return withApp(cmd.Context(), func(a *app.App) error {
			if a.Pool == nil {
				return fmt.Errorf("migrate requires STORE_DRIVER=postgres")
			}
			if err := database.Migrate(cmd.Context(), a.Pool, a.Logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return nil
		})
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&printSchema, "print", false, "Print the schema instead of applying it")
	rootCmd.AddCommand(migrateCmd)
}
