package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/keyloom"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of keyloom",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("keyloom version %s\n", strings.TrimSpace(keyloom.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
