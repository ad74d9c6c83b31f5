package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"remodelsite/internal/client"
	"remodelsite/internal/uploadqueue"
)

func (a *app) newUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <submission-id> <file>...",
		Short: "Upload files into a submission folder, one at a time",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			files := make([]uploadqueue.File, 0, len(args)-1)
			for _, path := range args[1:] {
				f, err := uploadqueue.FromPath(path)
				if err != nil {
					return err
				}
				files = append(files, f)
			}

			queue := uploadqueue.New(a.api(), id, uploadqueue.Options{Timeout: a.timeout(), Log: a.log})
			if err := queue.Refresh(cmd.Context()); err != nil {
				return err
			}
			queue.Enqueue(files...)
			if err := queue.Wait(cmd.Context()); err != nil {
				return err
			}

			failed := queue.Entries()
			for _, e := range failed {
				fmt.Fprintf(a.out, "FAILED  %s: %s\n", e.File.Name, e.Err)
			}
			if err := a.renderFiles(queue.RemoteFiles(), "table"); err != nil {
				return err
			}
			if len(failed) > 0 {
				return fmt.Errorf("%d of %d uploads failed", len(failed), len(files))
			}
			return nil
		},
	}
}

func (a *app) newFilesCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "files <submission-id>",
		Short: "List the files stored for a submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := a.api().ListFiles(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.renderFiles(files, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format (table, json)")
	return cmd
}

func (a *app) newRmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <submission-id> <file-name>",
		Short: "Delete one file from a submission folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, name := args[0], args[1]

			var confirm uploadqueue.Confirmer = uploadqueue.ConfirmFunc(func(context.Context, string) (bool, error) {
				return true, nil
			})
			if !yes {
				confirm = promptConfirmer{in: a.in, out: a.out}
			}

			queue := uploadqueue.New(a.api(), id, uploadqueue.Options{Log: a.log})
			err := queue.Delete(cmd.Context(), name, confirm)
			if errors.Is(err, uploadqueue.ErrDeleteCancelled) {
				fmt.Fprintln(a.out, "Cancelled.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted %s.\n", name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// promptConfirmer asks on the terminal. Anything but y or yes cancels.
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(_ context.Context, fileName string) (bool, error) {
	fmt.Fprintf(p.out, "Delete %s? [y/N]: ", fileName)
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (a *app) renderFiles(files []client.RemoteFile, output string) error {
	switch output {
	case "json":
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(files)
	case "table", "":
	default:
		return fmt.Errorf("unknown output format %q", output)
	}

	if len(files) == 0 {
		fmt.Fprintln(a.out, "No files.")
		return nil
	}

	table := tablewriter.NewWriter(a.out)
	table.Header("Name", "Size", "Modified", "URL")
	for _, f := range files {
		modified := "-"
		if !f.ModifiedAt.IsZero() {
			modified = humanize.Time(f.ModifiedAt)
		}
		if err := table.Append(f.Name, humanize.Bytes(uint64(max(f.Size, 0))), modified, f.URL); err != nil {
			return err
		}
	}
	return table.Render()
}
