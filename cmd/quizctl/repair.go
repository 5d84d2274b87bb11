package main

import (
	"fmt"
	"io"
	"os"

	"edu-quiz/internal/quizrepair"

	"github.com/spf13/cobra"
)

func newRepairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repair [file]",
		Short: "Parse raw model output and fix arithmetic answers",
		Long: "Reads raw generated text from a file, or from stdin when no file is given,\n" +
			"extracts the quiz JSON, repairs arithmetic questions and prints the result.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			locale, _ := cmd.Flags().GetString("locale")
			v := quizrepair.NewResponseValidator(quizrepair.WithLocale(quizrepair.Locale(locale)))

			result, err := v.ParseAndRepair(raw)
			if err != nil {
				return err
			}
			return writeResult(cmd, cmd.OutOrStdout(), result)
		},
	}
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(b), nil
}
