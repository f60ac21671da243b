package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ralt/drivermgr/internal/models"
	"github.com/spf13/cobra"
)

func newLookupCmd(opts *globalOptions) *cobra.Command {
	var df deviceFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Look up the best driver for a device",
		Long: `Queries the driver repository for a device, selects the best
candidate and reports whether it is installed, outdated or missing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := df.device()
			if err != nil {
				return err
			}

			svc, _, err := opts.service()
			if err != nil {
				return err
			}

			res, err := svc.Lookup(cmd.Context(), dev)
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(res)
			}
			printSelection(cmd.OutOrStdout(), dev, res)
			return nil
		},
	}

	addDeviceFlags(cmd, &df)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the selection as JSON")
	return cmd
}

func printSelection(w io.Writer, dev models.Device, res *models.SelectionResult) {
	if res == nil {
		fmt.Fprintf(w, "%s: no driver available\n", dev.Label())
		return
	}

	fmt.Fprintf(w, "Device:  %s\n", dev.Label())
	fmt.Fprintf(w, "Package: %s\n", res.Packages)
	fmt.Fprintf(w, "Version: %s\n", res.DebVersion)
	if res.Size != "" {
		fmt.Fprintf(w, "Size:    %s\n", res.Size)
	}
	fmt.Fprintf(w, "Status:  %s\n", res.Status)
}
