package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newInstallCmd(opts *globalOptions) *cobra.Command {
	var (
		df     deviceFlags
		sha256 string
		dryRun bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Look up and install the best driver for a device",
		Long: `Looks up the best driver for a device and installs it with apt-get.
Packages with a download URL are fetched into the cache directory,
checked against the selection and, when a keyring is configured,
verified against their detached signature first.`,
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
			if res == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: no driver available\n", dev.Label())
				return nil
			}
			if !res.Actionable() && !force {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s is %s\n", dev.Label(), res.Packages, res.DebVersion, res.Status)
				return nil
			}

			inst, err := opts.installer(sha256, dryRun)
			if err != nil {
				return err
			}

			path, err := inst.Install(cmd.Context(), res)
			if err != nil {
				return err
			}
			if path != "" {
				logrus.Debugf("Package file: %s", path)
			}

			verb := "installed"
			if dryRun {
				verb = "would install"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s %s\n", dev.Label(), verb, res.Packages, res.DebVersion)
			return nil
		},
	}

	addDeviceFlags(cmd, &df)
	cmd.Flags().StringVar(&sha256, "sha256", "", "Expected checksum of the downloaded package")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Download and verify without installing")
	cmd.Flags().BoolVar(&force, "force", false, "Install even when the driver is up to date")
	return cmd
}
