package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/ralt/drivermgr/internal/debpkg"
	"github.com/ralt/drivermgr/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newBackupsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backups",
		Short: "List or restore backed-up driver packages",
	}

	cmd.AddCommand(newBackupsListCmd(opts))
	cmd.AddCommand(newBackupsRestoreCmd(opts))
	return cmd
}

func newBackupsListCmd(opts *globalOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List backed-up packages with their installed versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = opts.cfg.BackupDir
			}

			pkgs, err := debpkg.ScanDir(cmd.Context(), dir)
			if err != nil {
				return &models.DriverError{Type: models.ErrFileOp, Err: err}
			}

			o := opts.oracle()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PACKAGE\tINSTALLED\tBACKUP\tFILE")
			for _, pkg := range pkgs {
				current, err := o.Installed(cmd.Context(), pkg.Control.Package)
				if err != nil {
					logrus.Warnf("Package query for %s failed: %v", pkg.Control.Package, err)
				}
				if current == "" {
					current = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", pkg.Control.Package, current, pkg.Control.Version, pkg.Path)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Backup directory (default from --backup-dir)")
	return cmd
}

func newBackupsRestoreCmd(opts *globalOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "restore <file.deb>",
		Short: "Reinstall a backed-up package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := opts.installer("", dryRun)
			if err != nil {
				return err
			}

			pkg, err := inst.Restore(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "restored %s %s\n", pkg.Control.Package, pkg.Control.Version)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate without installing")
	return cmd
}
