package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobboard/internal/observability"
	"github.com/jonathan/jobboard/internal/types"
)

var uploadJSON bool

var uploadCmd = &cobra.Command{
	Use:   "upload FILE",
	Short: "Upload a PDF or Word document to the upload service",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

func init() {
	uploadCmd.Flags().BoolVar(&uploadJSON, "json", false, "Print the upload descriptor as JSON")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	path := args[0]
	if err := types.CheckUploadName(path); err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	client, err := newClient()
	if err != nil {
		return err
	}
	desc, err := client.UploadDocument(cmd.Context(), path, file)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	if settings.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintUpload(&desc)
	}

	out := cmd.OutOrStdout()
	if uploadJSON {
		return writeJSON(out, desc)
	}
	_, _ = fmt.Fprintln(out, desc.Message)
	_, _ = fmt.Fprintf(out, "File:  %s (%d bytes)\n", desc.Filename, desc.FileSize)
	_, _ = fmt.Fprintf(out, "Key:   %s\n", desc.StorageKey)
	if desc.URL != "" {
		_, _ = fmt.Fprintf(out, "URL:   %s\n", desc.URL)
	}
	return nil
}
