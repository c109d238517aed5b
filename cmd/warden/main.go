package main

import (
	"os"

	"github.com/spf13/cobra"

	"warden/internal/interfaces/cli/access"
	"warden/internal/interfaces/cli/catalog"
	"warden/internal/interfaces/cli/flags"
	"warden/internal/interfaces/cli/migrate"
	"warden/internal/interfaces/cli/seed"
	"warden/internal/interfaces/cli/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "warden",
		Short:        "Warden - role based access control",
		Long:         `Warden manages modules, sub-modules, permissions, roles and users, and answers which permissions a user holds.`,
		SilenceUsage: true,
	}

	flags.Register(rootCmd)

	rootCmd.AddCommand(
		migrate.NewCommand(),
		seed.NewCommand(),
		access.NewCommand(),
		catalog.NewCommand(),
		version.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
