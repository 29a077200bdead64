package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var forceFetch bool

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Print the usage snapshot JSON, fetching if the cache is stale",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := usageSource().Load(forceFetch)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	usageCmd.Flags().BoolVarP(&forceFetch, "force", "f", false, "bypass the snapshot cache")
	rootCmd.AddCommand(usageCmd)
}
