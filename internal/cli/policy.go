package cli

import (
	"fmt"

	"github.com/ralt/drivermgr/internal/models"
	"github.com/spf13/cobra"
)

func newPolicyCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "policy <package> <version>",
		Short: "Compare a package version with the locally installed one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := opts.oracle().Probe(cmd.Context(), args[0], args[1])
			if err != nil {
				return &models.DriverError{Type: models.ErrPackageQuery, Device: args[0], Err: err}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", args[0], args[1], status)
			return nil
		},
	}
}
