package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/ralt/drivermgr/internal/inventory"
	"github.com/ralt/drivermgr/internal/models"
	"github.com/ralt/drivermgr/internal/report"
	"github.com/ralt/drivermgr/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newScanCmd(opts *globalOptions) *cobra.Command {
	var (
		inventoryPath string
		outputPath    string
		format        string
		metricsPath   string
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Look up drivers for every device in an inventory",
		Long: `Reads a YAML device inventory, looks up drivers for all devices in
parallel and prints a summary. A report can be written as JSON or as
deb822 stanzas, compressed when the output ends in .gz or .zst.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := inventory.Load(inventoryPath)
			if err != nil {
				return &models.DriverError{Type: models.ErrFileOp, Err: err}
			}

			svc, b, err := opts.service()
			if err != nil {
				return err
			}

			logrus.Infof("Scanning %d devices with %d jobs", len(inv.Devices), opts.cfg.Jobs)
			reports, err := svc.Scan(cmd.Context(), inv.Devices, opts.cfg.Jobs)
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), reports)

			if outputPath != "" {
				r := report.New(b.Host(), reports)
				logrus.Debugf("Run ID: %s", r.RunID)
				if err := report.Write(outputPath, r, format); err != nil {
					return &models.DriverError{Type: models.ErrFileOp, Err: err}
				}
			}

			if metricsPath != "" {
				if err := prometheus.WriteToTextfile(metricsPath, prometheus.DefaultGatherer); err != nil {
					return &models.DriverError{
						Type: models.ErrFileOp,
						Err:  fmt.Errorf("failed to write metrics: %w", err),
					}
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&inventoryPath, "file", "f", "devices.yaml", "Device inventory file")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write a report to this path")
	cmd.Flags().StringVar(&format, "format", report.FormatJSON, "Report format (json, control)")
	cmd.Flags().StringVar(&metricsPath, "metrics-file", "", "Write Prometheus metrics in text format to this path")
	cmd.Flags().IntVarP(&opts.flags.Jobs, "jobs", "j", 4, "Lookups to run in parallel")
	cmd.Flags().Float64Var(&opts.flags.RequestRate, "request-rate", 0, "Maximum repository requests per second (0 for unlimited)")

	return cmd
}

func printSummary(w io.Writer, reports []models.DeviceReport) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DEVICE\tCLASS\tPACKAGE\tVERSION\tSTATUS")
	for _, r := range reports {
		pkg, version, status := "-", "-", string(r.Outcome)
		if r.Result != nil {
			pkg, version, status = r.Result.Packages, r.Result.DebVersion, r.Result.Status.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Device.Label(), r.Device.Class, pkg, version, status)
	}
	tw.Flush()

	pending := utils.ActionablePackages(reports)
	if len(pending) == 0 {
		fmt.Fprintln(w, "\nAll drivers are up to date")
		return
	}

	fmt.Fprintf(w, "\n%d packages can be installed or updated:\n", len(pending))
	for _, res := range pending {
		fmt.Fprintf(w, "  %s\n", utils.PackageIdentity(res))
	}
}
