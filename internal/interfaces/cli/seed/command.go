package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"warden/internal/application/bootstrap"
	"warden/internal/infrastructure/persistence/seeds"
	"warden/internal/interfaces/cli/container"
	"warden/internal/interfaces/cli/flags"
)

var (
	file          string
	adminEmail    string
	adminPassword string
	autoMigrate   bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the default roles, modules and permissions",
		Long: `Create every role, module, sub-module and permission named by the
taxonomy that the database does not have yet, grant all permissions to
the administrator role and create the administrator account. Running it
again changes nothing.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Taxonomy YAML file (default: built-in taxonomy)")
	cmd.Flags().StringVar(&adminEmail, "admin-email", "", "Administrator email (default: seed.admin_email)")
	cmd.Flags().StringVar(&adminPassword, "admin-password", "", "Administrator password (default: seed.admin_password)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations before seeding")

	return cmd
}

func loadTaxonomy() (*seeds.Taxonomy, error) {
	if file == "" {
		return seeds.Default()
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}
	return seeds.Parse(data)
}

func run(cmd *cobra.Command, args []string) error {
	tax, err := loadTaxonomy()
	if err != nil {
		return err
	}

	c, err := container.Open(flags.Env())
	if err != nil {
		return err
	}
	defer c.Close()

	log := c.Logger()

	if autoMigrate {
		manager, err := c.Migrations()
		if err != nil {
			return err
		}
		if err := manager.Migrate(c.DB()); err != nil {
			return err
		}
	}

	creds := bootstrap.AdminCredentials{
		Email:    c.Config().Seed.AdminEmail,
		Password: c.Config().Seed.AdminPassword,
	}
	if adminEmail != "" {
		creds.Email = adminEmail
	}
	if adminPassword != "" {
		creds.Password = adminPassword
	}

	result, err := c.Seeder.Run(context.Background(), tax, creds)
	if err != nil {
		log.Errorw("seeding failed", "error", err)
		return fmt.Errorf("seeding failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nSeed Result:\n")
	fmt.Fprintf(out, "  Roles created:        %d\n", result.RolesCreated)
	fmt.Fprintf(out, "  Modules created:      %d\n", result.ModulesCreated)
	fmt.Fprintf(out, "  Sub-modules created:  %d\n", result.SubModulesCreated)
	fmt.Fprintf(out, "  Permissions created:  %d\n", result.PermissionsCreated)
	fmt.Fprintf(out, "  Grants added:         %d\n", result.GrantsAdded)
	fmt.Fprintf(out, "  Admin created:        %t\n", result.AdminCreated)
	fmt.Fprintf(out, "  Admin role assigned:  %t\n", result.AdminRoleAssigned)

	return nil
}
