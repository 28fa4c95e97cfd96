package main

import (
	"fmt"
	"os"

	"feature-prioritizer/internal/dto"

	"github.com/spf13/cobra"
)

func newImportCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Append features from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fw, err := dto.ParseFrameworkParam(g.framework)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			session, closeFn, err := g.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := session.ImportCSV(cmd.Context(), string(data), fw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d features\n", n)
			return nil
		},
	}
}

func newExportCmd(g *globalFlags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the ranked collection as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := dto.ParseViewQuery(g.framework, "", "")
			if err != nil {
				return err
			}

			session, closeFn, err := g.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			filename, content, err := session.ExportCSV(cmd.Context(), q)
			if err != nil {
				return err
			}
			if out == "-" {
				fmt.Fprintln(cmd.OutOrStdout(), content)
				return nil
			}
			if out == "" {
				out = filename
			}
			if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path; '-' for stdout (default: dated filename)")
	return cmd
}

func newBackupCmd(g *globalFlags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Print or save the stored JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, closeFn, err := g.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			backup := session.ExportBackup(cmd.Context())
			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), backup)
				return nil
			}
			return os.WriteFile(out, []byte(backup), 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (default: stdout)")
	return cmd
}

func newRestoreCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <backup.json>",
		Short: "Replace the collection with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			session, closeFn, err := g.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := session.ImportBackup(cmd.Context(), string(data))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d features\n", n)
			return nil
		},
	}
}
