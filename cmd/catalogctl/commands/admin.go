package commands

import (
	"errors"
	"fmt"
	"os"

	"catalog/internal/app"
	"catalog/internal/models"

	"github.com/spf13/cobra"
)

var (
	// create-admin flags
	adminUsername  string
	adminEmail     string
	adminFirstName string
	adminLastName  string
)

// createAdminCmd creates an administrator account
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	Long: `Create an administrator. The password is read from CATALOG_ADMIN_PASSWORD so it never
appears in shell history.

Examples:
  CATALOG_ADMIN_PASSWORD=... catalogctl create-admin --username root --email root@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := os.Getenv("CATALOG_ADMIN_PASSWORD")
		if password == "" {
			return errors.New("CATALOG_ADMIN_PASSWORD is required")
		}
		return withApp(cmd.Context(), func(a *app.App) error {
			user, err := a.Auth.CreateAdmin(cmd.Context(), models.RegisterInput{
				Username:  adminUsername,
				Email:     adminEmail,
				FirstName: adminFirstName,
				LastName:  adminLastName,
				Password:  password,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (id %d)\n", user.Username, user.ID)
			return nil
		})
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "Admin username")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email")
	createAdminCmd.Flags().StringVar(&adminFirstName, "first-name", "", "First name")
	createAdminCmd.Flags().StringVar(&adminLastName, "last-name", "", "Last name")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(createAdminCmd)
}
