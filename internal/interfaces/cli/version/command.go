package version

import (
	"fmt"

	"github.com/spf13/cobra"

	buildVersion "warden/internal/shared/version"
)

func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "warden %s\n", buildVersion.String())
		},
	}
}
