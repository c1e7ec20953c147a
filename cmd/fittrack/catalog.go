// ABOUTME: CLI commands for the exercise catalog.
// ABOUTME: Lists exercises by body part and adds custom ones.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the exercise catalog",
}

var catalogListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises by body part",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		for _, cat := range fitApp.Catalog.Categories() {
			bold.Fprintln(out, cat.Name)
			for _, e := range cat.Entries {
				fmt.Fprintf(out, "  %s\n", e.Name)
			}
		}
		return nil
	},
}

var catalogAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a custom exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := fitApp.Catalog.AddCustom(args[0])
		if err != nil {
			return err
		}
		color.Green("✓ Added %s to %s", entry.Name, entry.Category)
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogListCmd, catalogAddCmd)
	rootCmd.AddCommand(catalogCmd)
}
