package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/mgrude/ccstatus/internal/dashboard"
	"github.com/mgrude/ccstatus/internal/livedash"
)

var liveDashboard bool

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show usage quotas as labeled progress-bar panels",
	RunE: func(cmd *cobra.Command, args []string) error {
		source := usageSource()

		if liveDashboard {
			if !term.IsTerminal(os.Stdout.Fd()) {
				return errors.New("--live needs a terminal")
			}
			return livedash.Run(source)
		}

		// A failed load just means an empty snapshot; Render decides
		// whether anything is displayable.
		snap, _ := source.Load(false)

		out, err := dashboard.Render(snap, time.Now())
		if err != nil {
			// The one user-visible failure: nothing at all to show.
			return errors.New("no usage percentages available")
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	dashboardCmd.Flags().BoolVar(&liveDashboard, "live", false, "refresh continuously in the terminal")
	rootCmd.AddCommand(dashboardCmd)
}
