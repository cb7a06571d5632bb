package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search keys, falling back to values",
	Long: `Search matches the query case-insensitively against keys. Only when no key
matches are the values searched instead. Every matched key is then shown for
each document that has it. An empty query shows everything.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		engine, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}

		view := engine.Search(query)
		if strings.TrimSpace(query) != "" && view.Len() == 0 && !searchJSON {
			fmt.Printf("No keys or values match %q.\n", query)
			return nil
		}
		return writeView(os.Stdout, engine.Documents().Names(), view, searchJSON)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
}
