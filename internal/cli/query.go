package cli

import (
	"fmt"

	"github.com/ralt/drivermgr/internal/driver"
	"github.com/ralt/drivermgr/internal/models"
	"github.com/spf13/cobra"
)

func newQueryCmd(opts *globalOptions) *cobra.Command {
	var df deviceFlags

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the lookup URL for a device",
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := df.device()
			if err != nil {
				return err
			}

			b, err := opts.builder()
			if err != nil {
				return err
			}

			url := b.Build(dev)
			if url == "" {
				return &models.DriverError{Type: models.ErrEmptyQuery, Device: dev.Label(), Err: driver.ErrEmptyQuery}
			}

			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	addDeviceFlags(cmd, &df)
	return cmd
}
