package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgrude/ccstatus/internal/gitstatus"
	"github.com/mgrude/ccstatus/internal/input"
	"github.com/mgrude/ccstatus/internal/statusline"
	"github.com/mgrude/ccstatus/internal/theme"
	"github.com/mgrude/ccstatus/internal/tickets"
)

var lineCmd = &cobra.Command{
	Use:   "line",
	Short: "Render the status line from a JSON payload on stdin",
	RunE:  runLine,
}

func init() {
	rootCmd.AddCommand(lineCmd)
}

func runLine(cmd *cobra.Command, args []string) error {
	// The host interprets ANSI even though stdout is a pipe, so color is
	// forced rather than tty-detected.
	if noColor {
		theme.Plain()
	} else {
		theme.ForceANSI()
	}

	payload, err := input.Decode(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), statusline.Render(collect(payload)))
	return nil
}

// collect assembles the render data. Every collaborator is best-effort:
// a failure only leaves its field zero, which omits the section.
func collect(payload *input.Payload) *statusline.Data {
	d := &statusline.Data{
		Cfg:     cfg,
		Now:     time.Now(),
		Payload: payload,
	}
	workDir := payload.WorkDir()

	if cfg.ShowHostname {
		d.Hostname, _ = os.Hostname()
	}
	if cfg.ShowGit && workDir != "" {
		d.Git = (&gitstatus.Collector{WorkDir: workDir}).Collect()
	}
	if cfg.ShowTickets && workDir != "" {
		collector := &tickets.Collector{WorkDir: workDir, Command: cfg.TicketsCommand}
		if counts, ok := collector.Collect(); ok {
			d.Tickets = &counts
		}
	}
	if cfg.ShowUsage {
		if snap, err := usageSource().Load(false); err == nil {
			d.Usage = snap
		}
	}
	return d
}
