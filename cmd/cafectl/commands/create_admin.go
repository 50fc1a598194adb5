package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/HSouheill/coffee_backend/models"
	"github.com/HSouheill/coffee_backend/repositories"
	"github.com/HSouheill/coffee_backend/services"
	"github.com/spf13/cobra"
)

var newAdmin models.CreateAdminRequest

// createAdminCmd seeds the first back-office account
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a back-office account",
	Long: `Create a back-office account, hashing the password the same way the API does.

Examples:
  cafectl create-admin                                  # admin / admin@coffeeshop.com / admin123
  cafectl create-admin -u barista --role editor -p s3cret --email barista@coffeeshop.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreateAdmin(cmd)
	},
}

func init() {
	rootCmd.AddCommand(createAdminCmd)

	createAdminCmd.Flags().StringVarP(&newAdmin.Username, "username", "u", "admin", "Username")
	createAdminCmd.Flags().StringVar(&newAdmin.Email, "email", "admin@coffeeshop.com", "Email address")
	createAdminCmd.Flags().StringVarP(&newAdmin.Password, "password", "p", "admin123", "Initial password")
	createAdminCmd.Flags().StringVar(&newAdmin.FirstName, "first-name", "Admin", "First name")
	createAdminCmd.Flags().StringVar(&newAdmin.LastName, "last-name", "User", "Last name")
	createAdminCmd.Flags().StringVar(&newAdmin.Role, "role", models.RoleAdmin, "Role: admin, manager or editor")
}

func runCreateAdmin(cmd *cobra.Command) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	logger := newLogger()
	defer logger.Sync()

	db, closeFn, err := connect(ctx, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	admins := services.NewAdminService(repositories.NewAdminRepository(db), logger)
	admin, err := admins.Create(ctx, newAdmin)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Admin user created successfully")
	fmt.Fprintf(out, "  Username: %s\n", admin.Username)
	fmt.Fprintf(out, "  Email:    %s\n", admin.Email)
	fmt.Fprintf(out, "  Role:     %s\n", admin.Role)
	if newAdmin.Password == "admin123" {
		fmt.Fprintln(out, "Change the default password after the first login.")
	}
	return nil
}
