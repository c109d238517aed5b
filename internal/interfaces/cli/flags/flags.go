// Package flags holds the flags shared by every command.
package flags

import (
	"os"

	"github.com/spf13/cobra"

	"warden/internal/shared/constants"
)

var env string

// Register adds the persistent --env flag to the root command.
func Register(root *cobra.Command) {
	root.PersistentFlags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
}

// Env returns the selected environment. WARDEN_ENV wins over the flag.
func Env() string {
	if v := os.Getenv("WARDEN_ENV"); v != "" {
		return v
	}
	return env
}
