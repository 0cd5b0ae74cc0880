package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"burialdesk/internal/bootstrap"
	"burialdesk/internal/draft"
	"burialdesk/internal/intake"
	"burialdesk/internal/sequencer"
	"burialdesk/internal/settings"
	"burialdesk/internal/storage"
)

func (e *env) drafts() *draft.Store {
	return draft.New(e.state, draft.Options{
		Debounce:   e.cfg.Draft.Debounce,
		StatusHold: e.cfg.Draft.StatusHold,
	}, e.log)
}

func newNextNumberCmd(e *env) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "next-number",
		Short: "Preview the next record number",
		Long: `Preview the record number the next new record is expected to get.
The number is not reserved; the API assigns the final one on create.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seq := sequencer.New(e.api, e.log)
			var number string
			if year > 0 {
				number = seq.PreviewNext(cmd.Context(), year)
			} else {
				number = seq.PreviewNow(cmd.Context())
			}
			fmt.Fprintln(cmd.OutOrStdout(), number)
			return nil
		},
	}
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Calendar year (default current year)")
	return cmd
}

func newDraftCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Inspect or discard the stored form draft",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the stored draft as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, ok := e.drafts().Load(cmd.Context())
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No draft stored")
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(form)
		},
	}, &cobra.Command{
		Use:   "clear",
		Short: "Discard the stored draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.drafts().Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Draft cleared")
			return nil
		},
	})
	return cmd
}

// readFormFile loads field values from a JSON object. Numbers and booleans
// are accepted and rendered the way an operator would type them.
func readFormFile(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	values := make(map[string]string, len(doc))
	for k, v := range doc {
		switch t := v.(type) {
		case nil:
			values[k] = ""
		case string:
			values[k] = t
		case float64:
			values[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			values[k] = strconv.FormatBool(t)
		default:
			return nil, fmt.Errorf("field %s: unsupported value %v", k, v)
		}
	}
	return values, nil
}

func openAttachments(paths []string) ([]storage.File, func(), error) {
	var files []storage.File
	var closers []*os.File
	closeAll := func() {
		for _, f := range closers {
			_ = f.Close()
		}
	}

	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, f)
		info, err := f.Stat()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		files = append(files, storage.File{Name: filepath.Base(p), Size: info.Size(), Content: f})
	}
	return files, closeAll, nil
}

func newSubmitCmd(e *env) *cobra.Command {
	var (
		dataPath string
		attach   []string
		editID   string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Create or update a burial record",
		Long: `Submit a record from a JSON object of form fields.

Without --edit a new record is created on top of the stored draft, if any.
With --edit the record is loaded first and the given fields replace its values.
If the submission fails the entered values are kept as the draft.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			values, err := readFormFile(dataPath)
			if err != nil {
				return err
			}
			files, closeFiles, err := openAttachments(attach)
			if err != nil {
				return err
			}
			defer closeFiles()

			uploader, err := bootstrap.NewUploader(e.cfg, e.api, e.log)
			if err != nil {
				return err
			}
			prefs := settings.NewService(e.api, e.sessions, e.log)
			prefs.Reload(ctx)
			drafts := e.drafts()

			ctrl := intake.NewController(intake.Deps{
				Records:  e.api,
				Numbers:  sequencer.New(e.api, e.log),
				Drafts:   drafts,
				Settings: prefs,
				Uploader: uploader,
				Log:      e.log,
			})

			if editID != "" {
				if _, err := ctrl.OpenEdit(ctx, editID); err != nil {
					return err
				}
			} else if view := ctrl.OpenNew(ctx); view.Notice != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), view.Notice)
			}
			if err := ctrl.Apply(values); err != nil {
				return err
			}

			res, err := ctrl.Submit(ctx, files)
			if err != nil {
				if ferr := drafts.Flush(ctx); ferr != nil {
					e.log.Warn("draft not kept", zap.Error(ferr))
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "JSON file of form fields")
	cmd.Flags().StringArrayVarP(&attach, "attach", "a", nil, "Supporting document (repeatable)")
	cmd.Flags().StringVar(&editID, "edit", "", "ID of the record to update")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}
