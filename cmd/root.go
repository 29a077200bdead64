package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mgrude/ccstatus/internal/config"
	"github.com/mgrude/ccstatus/internal/usage"
)

// cfg holds the resolved configuration, populated in PersistentPreRunE.
var cfg config.Config

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "ccstatus",
	Short: "Status line and usage dashboard for coding-assistant sessions",
	Long: `ccstatus renders a one-line, color-coded session summary from a JSON
payload on stdin, plus a usage dashboard with quota progress bars.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		return err
	},
	// Running the bare binary is status-line mode: the host pipes the
	// session payload to stdin and prints whatever comes back.
	RunE: runLine,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI colors")
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// usageSource builds the snapshot source from the resolved configuration.
func usageSource() *usage.Source {
	return &usage.Source{
		CacheDir: cfg.CacheDir,
		Command:  cfg.UsageCommand,
	}
}
