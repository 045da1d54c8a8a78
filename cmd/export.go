package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export settings, statistics and history as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		data, err := e.store.Export(cmd.Context())
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}

		var w io.Writer = cmd.OutOrStdout()
		if output != "" && output != "-" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		if w != cmd.OutOrStdout() {
			fmt.Fprintf(os.Stderr, "Exported to %s\n", output)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
}
