package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"focus/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .focus/config.toml for this project",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot()
		if err != nil {
			return err
		}

		existing := filepath.Join(config.ConfigDir(root), "config.toml")
		if _, err := os.Stat(existing); err == nil && !initForce {
			fmt.Printf("%s already exists (use --force to overwrite)\n", existing)
			return nil
		}

		path, err := config.WriteDefault(root)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}
