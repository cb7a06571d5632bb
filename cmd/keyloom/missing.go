package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var missingJSON bool

var missingCmd = &cobra.Command{
	Use:   "missing",
	Short: "List the keys each document lacks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}

		gaps := engine.Missing()
		if missingJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(gaps)
		}

		if len(gaps) == 0 {
			fmt.Println("All documents have the same keys.")
			return nil
		}
		for _, name := range engine.Documents().Names() {
			keys, ok := gaps[name]
			if !ok {
				continue
			}
			fmt.Printf("%s %s\n", titleStyle.Render(name), faintStyle.Render(fmt.Sprintf("(%d missing)", len(keys))))
			fmt.Printf("  %s\n", strings.Join(keys, "\n  "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(missingCmd)
	missingCmd.Flags().BoolVar(&missingJSON, "json", false, "Output in JSON format")
}
