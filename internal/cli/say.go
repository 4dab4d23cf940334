package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/assistd/internal/voice"
)

var sayCmd = &cobra.Command{
	Use:   "say <command...>",
	Short: "Send one typed command to the assistant",
	Long: `Send a typed command to the assistant and print its reply.

Examples:
  assistd say add task buy milk due tomorrow
  assistd say complete task buy milk
  assistd say spent 12.50 for lunch`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *session) error {
			fmt.Fprintln(cmd.OutOrStdout(), s.app.Handle(strings.Join(args, " ")))
			return nil
		})
	},
}

var hearStdin bool

var hearCmd = &cobra.Command{
	Use:   "hear [transcript...]",
	Short: "Feed a speech transcript through the wake-phrase gate",
	Long: `Feed speech transcripts to the assistant. A transcript only reaches the
command interpreter when it starts with a wake phrase such as "hey jarvis".

With --stdin every input line is treated as one transcript, so the output
of a speech-to-text tool can be piped straight in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !hearStdin && len(args) == 0 {
			return fmt.Errorf("provide a transcript or use --stdin")
		}
		return withSession(cmd, func(s *session) error {
			ch := voice.NewChannel(s.app, s.cfg.Voice.WakePhrases...)
			if !hearStdin {
				printHeard(cmd, ch, strings.Join(args, " "))
				return nil
			}
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				if strings.TrimSpace(scanner.Text()) == "" {
					continue
				}
				printHeard(cmd, ch, scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading transcripts: %w", err)
			}
			return nil
		})
	},
}

func printHeard(cmd *cobra.Command, ch *voice.Channel, transcript string) {
	reply, activated := ch.Hear(transcript)
	switch {
	case !activated:
		fmt.Fprintln(cmd.OutOrStdout(), "(ignored: no wake phrase)")
	case reply == "":
		fmt.Fprintln(cmd.OutOrStdout(), "(listening)")
	default:
		fmt.Fprintln(cmd.OutOrStdout(), reply)
	}
}

func init() {
	hearCmd.Flags().BoolVar(&hearStdin, "stdin", false, "read one transcript per line from stdin")
	rootCmd.AddCommand(sayCmd, hearCmd)
}
