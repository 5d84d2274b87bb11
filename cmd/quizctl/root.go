package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// version is set via -ldflags at build time.
var version = "(devel)"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "quizctl",
		Short:         "Repair and generate classroom quizzes from the terminal",
		SilenceUsage:  true,
	}
	root.PersistentFlags().String("format", "json", "Output format: json or yaml")
	root.PersistentFlags().String("locale", "", "Explanation language: tr or en (defaults to tr)")

	root.AddCommand(newRepairCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "quizctl", version)
		},
	})
	return root
}

// writeResult prints v in the format chosen with --format.
func writeResult(cmd *cobra.Command, w io.Writer, v any) error {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
