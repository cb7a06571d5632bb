package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/keyloom/pkg/core"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete [key]",
	Short: "Delete a key from every document",
	Long:  `Delete removes the key from every document that has it and saves the documents.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var session core.Session
		session.Select(args[0])
		key, _ := session.Selected()

		engine, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}

		if !deleteYes {
			if !interactive() {
				return fmt.Errorf("refusing to delete without confirmation: pass --yes")
			}
			ok, err := confirm(fmt.Sprintf("Are you sure you want to delete '%s' across all files?", key))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Aborted.")
				return nil
			}
		}

		touched := engine.DeleteSelected(&session)
		if len(touched) == 0 {
			fmt.Printf("Key '%s' not found in any document.\n", key)
			return nil
		}
		if err := save(cmd.Context(), engine, fmt.Sprintf("delete %s", key)); err != nil {
			return err
		}

		fmt.Printf("Key '%s' deleted from %s.\n", key, strings.Join(touched, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
	addSaveFlags(deleteCmd)
}
