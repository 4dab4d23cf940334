package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/assistd/internal/app"
)

var (
	exportFormat string
	exportOutput string
	importFormat string
	resetYes     bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks, notes, budget and progress as one document",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := app.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		return withSession(cmd, func(s *session) error {
			var w io.Writer = cmd.OutOrStdout()
			if exportOutput != "" && exportOutput != "-" {
				f, err := os.Create(exportOutput)
				if err != nil {
					return fmt.Errorf("creating %s: %w", exportOutput, err)
				}
				defer f.Close()
				w = f
			}
			if err := s.app.Export(w, format); err != nil {
				return fmt.Errorf("exporting: %w", err)
			}
			if exportOutput != "" && exportOutput != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "exported to %s\n", exportOutput)
			}
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a document produced by export",
	Long: `Import a document produced by export. Tasks, notes and transactions are
replaced by the document's; points, streak and badges are merged and never
go down. An invalid document changes nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := importFormat
		if name == "" {
			name = strings.TrimPrefix(filepath.Ext(args[0]), ".")
		}
		format, err := app.ParseFormat(name)
		if err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		return withSession(cmd, func(s *session) error {
			if err := s.app.Import(f, format); err != nil {
				return fmt.Errorf("importing %s: %w", args[0], err)
			}
			p := s.app.Progress()
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d tasks, %d notes, %d transactions (points: %d, streak: %d)\n",
				p.TasksTotal, len(s.app.Notes("")), len(s.app.Budget().Transactions), p.Points, p.Streak)
			return nil
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all tasks, notes, budget entries, points and badges",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("reset removes everything including badges; pass --yes to confirm")
		}
		return withSession(cmd, func(s *session) error {
			s.app.Clear()
			fmt.Fprintln(cmd.OutOrStdout(), "all data cleared")
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format: json or yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "input format: json or yaml (default: from file extension)")
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm the reset")
	rootCmd.AddCommand(exportCmd, importCmd, resetCmd)
}
