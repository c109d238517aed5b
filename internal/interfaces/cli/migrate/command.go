package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"warden/internal/interfaces/cli/container"
	"warden/internal/interfaces/cli/flags"
)

var steps int

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long: `Manage the database schema. Test and production environments apply the
embedded SQL scripts; other environments auto-migrate from the models.`,
	}

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the applied and pending migration scripts.`,
		RunE:  runStatus,
	}
}

func runUp(cmd *cobra.Command, args []string) error {
	c, err := container.Open(flags.Env())
	if err != nil {
		return err
	}
	defer c.Close()

	log := c.Logger()
	log.Infow("running up migrations", "environment", c.Config().App.Env)

	manager, err := c.Migrations()
	if err != nil {
		return err
	}

	if err := manager.Migrate(c.DB()); err != nil {
		return err
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	c, err := container.Open(flags.Env())
	if err != nil {
		return err
	}
	defer c.Close()

	log := c.Logger()
	log.Infow("running down migrations", "environment", c.Config().App.Env, "steps", steps)

	manager, err := c.Migrations()
	if err != nil {
		return err
	}

	if err := manager.Rollback(c.DB(), steps); err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	c, err := container.Open(flags.Env())
	if err != nil {
		return err
	}
	defer c.Close()

	manager, err := c.Migrations()
	if err != nil {
		return err
	}

	info := manager.GetStrategyInfo()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Environment: %s\n", c.Config().App.Env)
	fmt.Fprintf(out, "  Strategy:    %s (%s)\n", info["name"], info["description"])

	if err := manager.Status(c.DB()); err != nil {
		c.Logger().Errorw("failed to get migration status", "error", err)
		return fmt.Errorf("failed to get migration status: %w", err)
	}

	return nil
}
