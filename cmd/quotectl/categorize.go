package main

import (
	"bufio"
	"encoding/json"
	"fmt"

	"quote-service/internal/memory"

	"github.com/spf13/cobra"
)

var categorizeCmd = &cobra.Command{
	Use:   "categorize [fact...]",
	Short: "Categorize memory facts and print the resulting context",
	Long: `Build the memory context the chat assistant would receive for the given
facts. Facts are read from the arguments, or one per line from stdin when no
argument is given.`,
	RunE: runCategorize,
}

func init() {
	rootCmd.AddCommand(categorizeCmd)
}

func runCategorize(cmd *cobra.Command, args []string) error {
	facts := args
	if len(facts) == 0 {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			facts = append(facts, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read facts: %w", err)
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(memory.BuildContext(facts))
}
