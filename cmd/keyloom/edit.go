package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var editValues []string

var editCmd = &cobra.Command{
	Use:   "edit [key]",
	Short: "Edit the value of a key per document",
	Long: `Edit sets the value of a key independently in each named document. A document
that lacked the key receives it. Without --value, a form prefilled with the
current values is shown and only the documents whose value changed are updated.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		values, err := parseValues(editValues)
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
			current := engine.Values(key)
			answers, err := promptValues(fmt.Sprintf("Values for %q", key), engine.Documents().Names(), current)
			if err != nil {
				return err
			}
			values = changedValues(current, answers)
			if len(values) == 0 {
				fmt.Println("Nothing changed.")
				return nil
			}
		}

		if err := engine.EditValues(key, values); err != nil {
			return err
		}
		if err := save(cmd.Context(), engine, fmt.Sprintf("edit %s", key)); err != nil {
			return err
		}

		fmt.Printf("Key '%s' updated in %d document(s).\n", key, len(values))
		return nil
	},
}

// changedValues keeps the answers that differ from the current values.
// A document without the key counts as changed only for a non-empty answer.
func changedValues(current, answers map[string]string) map[string]string {
	out := make(map[string]string)
	for name, answer := range answers {
		old, had := current[name]
		if had && old == answer {
			continue
		}
		if !had && answer == "" {
			continue
		}
		out[name] = answer
	}
	return out
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringArrayVar(&editValues, "value", nil, "New value for a document, as document=value (repeatable)")
	addSaveFlags(editCmd)
}
