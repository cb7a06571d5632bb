package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aretw0/keyloom/internal/platform"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a .keyloom.yaml in the current directory",
	Long: `Init records the documents to edit (from --file) and the current formatting
settings in .keyloom.yaml, so later commands need no flags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		out := viper.New()
		out.Set("files", files)
		out.Set("indent", settings.Indent)
		out.Set("strict", settings.Strict)
		out.Set("versioning", settings.Versioning)

		path := filepath.Join(cwd, platform.ConfigName+".yaml")
		if initForce {
			err = out.WriteConfigAs(path)
		} else {
			err = out.SafeWriteConfigAs(path)
		}
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing configuration")
}
