package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"burialdesk/internal/apiclient"
	"burialdesk/internal/model"
	"burialdesk/internal/report"
	"burialdesk/internal/settings"
)

func newVerifyCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <id>",
		Short: "Accept a public submission into the records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := e.api.VerifyPublicRecord(cmd.Context(), args[0], apiclient.Verification{Status: model.StatusVerified})
			if err != nil {
				return err
			}
			if msg == "" {
				msg = "Record verified"
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func newRejectCmd(e *env) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject a public submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reason = strings.TrimSpace(reason)
			if reason == "" {
				return errors.New("please provide a reason for rejection")
			}
			msg, err := e.api.VerifyPublicRecord(cmd.Context(), args[0], apiclient.Verification{
				Status:          model.StatusRejected,
				RejectionReason: reason,
			})
			if err != nil {
				return err
			}
			if msg == "" {
				msg = "Record rejected"
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	cmd.Flags().StringVarP(&reason, "reason", "r", "", "Reason shown to the submitter")
	return cmd
}

func newExportCmd(e *env) *cobra.Command {
	var (
		kind, format, rng string
		gender, location  string
		out               string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export records to a spreadsheet",
		Long: `Export the filtered records to XLSX or CSV.

Ranges: all, last7days, last30days, last90days, thisyear.
The file name defaults to <type>-burial-report-<date>.<format>.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := report.ParseKind(kind)
			if err != nil {
				return err
			}
			r, err := report.ParseRange(rng)
			if err != nil {
				return err
			}
			format = strings.ToLower(format)
			if format != report.FormatXLSX && format != report.FormatCSV {
				return fmt.Errorf("%w: %q", report.ErrUnknownFormat, format)
			}

			prefs := settings.NewService(e.api, e.sessions, e.log).Reload(cmd.Context())
			rep, err := report.NewService(e.api, e.log).Build(cmd.Context(), k, report.Filter{
				Range:          r,
				Gender:         gender,
				BurialLocation: location,
			}, prefs.DateFormat)
			if err != nil {
				return err
			}

			if out == "" {
				out = rep.FileName(format)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := rep.Write(f, format); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", len(rep.Records), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", "detailed", "summary or detailed")
	cmd.Flags().StringVarP(&format, "format", "f", report.FormatXLSX, "xlsx or csv")
	cmd.Flags().StringVar(&rng, "range", string(report.RangeAll), "Date range preset")
	cmd.Flags().StringVar(&gender, "gender", "", "Only this gender")
	cmd.Flags().StringVar(&location, "location", "", "Only this burial location")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file")
	return cmd
}
