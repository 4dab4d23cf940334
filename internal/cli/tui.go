package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/assistd/internal/scheduler"
	"github.com/sandeepkv93/assistd/internal/update"
	"github.com/sandeepkv93/assistd/internal/voice"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive assistant (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func runTUI(cmd *cobra.Command) error {
	return withSession(cmd, func(s *session) error {
		alerts := scheduler.NewEngine(16, nil)
		alerts.Start()
		defer alerts.Stop()

		ch := voice.NewChannel(s.app, s.cfg.Voice.WakePhrases...)
		model := update.NewModelWithScheduler(s.app, ch, alerts)
		program := tea.NewProgram(model, tea.WithContext(cmd.Context()), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("assistd tui failed: %w", err)
		}
		return nil
	})
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
