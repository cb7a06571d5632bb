package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addValues []string

var addCmd = &cobra.Command{
	Use:   "add [key]",
	Short: "Add a key to the documents",
	Long: `Add a new key. The key must not exist in any loaded document. Each document
receives the key only if it is given a non-empty value, either with
--value document=value or interactively.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		values, err := parseValues(addValues)
		if err != nil {
			return err
		}

		engine, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}

		if len(values) == 0 {
			if !interactive() {
				return fmt.Errorf("no values given: use --value document=value")
			}
			values, err = promptValues(fmt.Sprintf("Values for new key %q", key), engine.Documents().Names(), nil)
			if err != nil {
				return err
			}
		}

		if err := engine.AddKey(key, values); err != nil {
			return err
		}
		if len(engine.Values(key)) == 0 {
			fmt.Printf("No document received '%s': every value was empty.\n", key)
			return nil
		}
		if err := save(cmd.Context(), engine, fmt.Sprintf("add %s", key)); err != nil {
			return err
		}

		fmt.Printf("Key '%s' added.\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringArrayVar(&addValues, "value", nil, "Value for a document, as document=value (repeatable)")
	addSaveFlags(addCmd)
}
