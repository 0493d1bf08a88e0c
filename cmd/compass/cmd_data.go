package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/arnold/compass/internal/services"
	"github.com/spf13/cobra"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		outDir string
		toFile bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data as JSON to stdout, or to a file with --out or --file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			if outDir == "" && !toFile {
				doc, err := a.backup.Export(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), doc)
				return nil
			}
			dir := outDir
			if dir == "" {
				dir = a.cfg.ExportDir
			}
			path, err := a.backup.ExportToFile(cmd.Context(), dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory to write the export file to")
	cmd.Flags().BoolVar(&toFile, "file", false, "write the export file to the configured export_dir")
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var merge bool
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import an export file, replacing the data it contains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			mode := services.ModeReplace
			if merge {
				mode = services.ModeMerge
			}
			result, err := opts.app.backup.Import(cmd.Context(), string(data), mode)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d item(s) across %d collection(s) (%s)\n", result.Items, len(result.Keys), result.Mode)
			return nil
		},
	}
	cmd.Flags().BoolVar(&merge, "merge", false, "merge collections by id instead of replacing them; settings are left untouched")
	return cmd
}

func newSizeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "size",
		Short: "Estimate how much data is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := opts.app.backup.DataSize(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d item(s), about %.2f KB\n", size.ItemCount, size.KB)
			return nil
		},
	}
}

func newClearCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "DANGER: delete all data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear all data without --yes")
			}
			if err := opts.app.backup.ClearAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All data cleared.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm that all data should be deleted")
	return cmd
}
